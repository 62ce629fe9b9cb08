package npz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/arloliu/npyz/compress"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/internal/hash"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/npy"
	"github.com/arloliu/npyz/section"
)

// Reader reads arrays from an NPZ archive.
type Reader struct {
	zr      *zip.Reader
	closer  io.Closer
	names   []string
	entries map[string]*zip.File
}

// Open opens the NPZ archive at path. The Reader must be closed.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r, err := NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f

	return r, nil
}

// NewReader reads an NPZ archive of the given size from ra.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArchive, err)
	}
	compress.RegisterZipDecompressors(zr)

	r := &Reader{
		zr:      zr,
		names:   make([]string, 0, len(zr.File)),
		entries: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		// members without the .npy extension keep their full name
		name := strings.TrimSuffix(f.Name, EntryExt)
		if _, dup := r.entries[name]; dup {
			continue
		}
		r.names = append(r.names, name)
		r.entries[name] = f
	}

	return r, nil
}

// Names returns the array names in archive order.
func (r *Reader) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of arrays in the archive.
func (r *Reader) Len() int {
	return len(r.names)
}

func (r *Reader) entry(name string) (*zip.File, error) {
	f, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrArrayNotFound, name)
	}

	return f, nil
}

// Array decodes the array called name.
func (r *Reader) Array(name string) (*ndarray.Array, error) {
	f, err := r.entry(name)
	if err != nil {
		return nil, err
	}

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	a, err := npy.Decode(bufio.NewReader(rc))
	if err != nil {
		return nil, fmt.Errorf("array %q: %w", name, err)
	}

	return a, nil
}

// Header decodes only the NPY header of the array called name.
func (r *Reader) Header(name string) (*section.Header, error) {
	f, err := r.entry(name)
	if err != nil {
		return nil, err
	}

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return section.ReadHeader(bufio.NewReader(rc))
}

// Stat returns the statistics of the entry holding name. The checksum is
// computed by reading the whole entry.
func (r *Reader) Stat(name string) (EntryStats, error) {
	f, err := r.entry(name)
	if err != nil {
		return EntryStats{}, err
	}

	rc, err := f.Open()
	if err != nil {
		return EntryStats{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return EntryStats{}, fmt.Errorf("array %q: %w", name, err)
	}

	st := entryStats(&f.FileHeader, nameOrigin(name), hash.Sum(data))
	st.Array = name

	return st, nil
}

// nameOrigin infers the origin of name from its form.
func nameOrigin(name string) Origin {
	idx, ok := strings.CutPrefix(name, PositionalPrefix)
	if !ok {
		return Keyword
	}
	if i, err := strconv.Atoi(idx); err != nil || i < 0 || strconv.Itoa(i) != idx {
		return Keyword
	}

	return Positional
}

// ReadAll decodes every array into an ArraySet in archive order.
func (r *Reader) ReadAll() (*ArraySet, error) {
	set := NewArraySet()
	for _, name := range r.names {
		a, err := r.Array(name)
		if err != nil {
			return nil, err
		}
		if _, err := set.Set(name, a); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// Close releases the file opened by Open. It is a no-op for readers created
// with NewReader.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	err := r.closer.Close()
	r.closer = nil

	return err
}
