package npz

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/arloliu/npyz/compress"
	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/internal/hash"
	"github.com/arloliu/npyz/internal/options"
	"github.com/arloliu/npyz/internal/pool"
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/npy"
	"github.com/arloliu/npyz/sink"
)

// EntryExt is the extension of every archive member.
const EntryExt = ".npy"

// EntryStats describes one archive entry.
type EntryStats struct {
	// Array is the array name; Entry is the member name ("<Array>.npy").
	Array string
	Entry string

	// Origin is how the array name was supplied. Archives do not record it:
	// Reader.Stat reports Positional for names of the form arr_<i> and
	// Keyword for all others.
	Origin Origin

	// Method is the ZIP compression method of the entry.
	Method uint16

	compress.CompressionStats

	// CRC32 is the ZIP checksum of the uncompressed entry.
	CRC32 uint32

	// Checksum is the xxHash64 of the encoded NPY bytes.
	Checksum uint64
}

// Report summarizes an archive write.
type Report struct {
	Destination string
	Entries     []EntryStats

	// Overridden lists keyword names that replaced positional arrays.
	Overridden []string
}

// OriginalSize returns the total size of the encoded entries.
func (r *Report) OriginalSize() int64 {
	var n int64
	for _, e := range r.Entries {
		n += e.OriginalSize
	}

	return n
}

// CompressedSize returns the total stored size of the entries.
func (r *Report) CompressedSize() int64 {
	var n int64
	for _, e := range r.Entries {
		n += e.CompressedSize
	}

	return n
}

// Writer writes ArraySets as NPZ archives.
//
// A Writer holds no per-archive state and is safe for concurrent use on
// different destinations.
type Writer struct {
	*WriterConfig
	enc *npy.Encoder
}

// NewWriter creates a Writer with the given options.
func NewWriter(opts ...WriterOption) (*Writer, error) {
	config := NewWriterConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	enc, err := npy.NewEncoder(config.encOpts...)
	if err != nil {
		return nil, err
	}

	return &Writer{WriterConfig: config, enc: enc}, nil
}

// WriteSet writes set as an NPZ archive to out.
//
// The archive is finalized on every path. When an array fails to encode, the
// entries written before it remain in the archive and the encoding error is
// returned. Failures of out wrap errs.ErrDestination.
func (w *Writer) WriteSet(out io.Writer, set *ArraySet) (*Report, error) {
	return w.writeSet(context.Background(), "stream", out, set)
}

// WriteFile writes set as an NPZ archive to the file at path, creating it or
// truncating an existing file. No extension is appended to path.
func (w *Writer) WriteFile(path string, set *ArraySet) (*Report, error) {
	ctx := context.Background()

	f, err := os.Create(path)
	if err != nil {
		err = errs.Destination(path, err)
		w.logger.LogArchive(ctx, path, 0, err)

		return nil, err
	}

	report, err := w.writeSet(ctx, path, f, set)
	if cerr := f.Close(); cerr != nil {
		err = errors.Join(err, errs.Destination(path, cerr))
	}

	return report, err
}

// WriteTo writes set as an NPZ archive into the object called name created by s.
func (w *Writer) WriteTo(ctx context.Context, s sink.Sink, name string, set *ArraySet) (*Report, error) {
	wc, err := s.Create(ctx, name)
	if err != nil {
		err = errs.Destination(name, err)
		w.logger.LogArchive(ctx, name, 0, err)

		return nil, err
	}

	report, err := w.writeSet(ctx, name, wc, set)
	if cerr := wc.Close(); cerr != nil {
		err = errors.Join(err, errs.Destination(name, cerr))
	}

	return report, err
}

func (w *Writer) writeSet(ctx context.Context, dest string, out io.Writer, set *ArraySet) (*Report, error) {
	if set == nil {
		set = NewArraySet()
	}

	report := &Report{Destination: dest, Overridden: set.Overridden()}
	for _, name := range report.Overridden {
		w.logger.LogOverride(ctx, name)
	}
	if set.Len() == 0 {
		w.logger.LogEmptyArchive(ctx, dest)
	}

	method, err := compress.ZipMethod(w.Method())
	if err != nil {
		return nil, err
	}

	bw := bufio.NewWriterSize(out, pool.EntryBufferDefaultSize)
	zw := zip.NewWriter(bw)
	compress.RegisterZipCompressors(zw, w.level)

	headers := make([]*zip.FileHeader, 0, set.Len())
	checksums := make([]uint64, 0, set.Len())
	origins := make([]Origin, 0, set.Len())

	var writeErr error
	for name, a := range set.All() {
		fh := &zip.FileHeader{
			Name:     name + EntryExt,
			Method:   method,
			Modified: w.modTime,
		}

		sum, err := w.writeEntry(zw, dest, fh, a)
		if err != nil {
			w.logger.LogEntry(ctx, fh.Name, 0, err)
			if !errors.Is(err, errs.ErrDestination) {
				err = fmt.Errorf("array %q: %w", name, err)
			}
			writeErr = err

			break
		}

		origin, _ := set.Origin(name)
		headers = append(headers, fh)
		checksums = append(checksums, sum)
		origins = append(origins, origin)
	}

	// Close fills in the sizes and CRC of the last entry header.
	closeErr := zw.Close()
	if closeErr == nil {
		closeErr = bw.Flush()
	}
	if closeErr != nil {
		writeErr = errors.Join(writeErr, errs.Destination(dest, closeErr))
	}

	for i, fh := range headers {
		report.Entries = append(report.Entries, entryStats(fh, origins[i], checksums[i]))
		w.logger.LogEntry(ctx, fh.Name, int(fh.UncompressedSize64), nil)
	}
	w.logger.LogArchive(ctx, dest, len(report.Entries), writeErr)

	return report, writeErr
}

// writeEntry encodes a into a pooled buffer and copies it into a new entry.
func (w *Writer) writeEntry(zw *zip.Writer, dest string, fh *zip.FileHeader, a *ndarray.Array) (uint64, error) {
	size, err := w.enc.Size(a)
	if err != nil {
		return 0, err
	}

	buf := pool.GetEntryBuffer()
	defer pool.PutEntryBuffer(buf)

	buf.Grow(size)
	if err := w.enc.Encode(buf, a); err != nil {
		return 0, err
	}

	fw, err := zw.CreateHeader(fh)
	if err != nil {
		return 0, errs.Destination(dest, err)
	}
	if _, err := buf.WriteTo(fw); err != nil {
		return 0, errs.Destination(dest, err)
	}

	return hash.Sum(buf.Bytes()), nil
}

func entryStats(fh *zip.FileHeader, origin Origin, checksum uint64) EntryStats {
	algo, _ := compress.MethodType(fh.Method)

	return EntryStats{
		Array:  strings.TrimSuffix(fh.Name, EntryExt),
		Entry:  fh.Name,
		Origin: origin,
		Method: fh.Method,
		CompressionStats: compress.CompressionStats{
			Algorithm:      algo,
			OriginalSize:   int64(fh.UncompressedSize64),
			CompressedSize: int64(fh.CompressedSize64),
		},
		CRC32:    fh.CRC32,
		Checksum: checksum,
	}
}

// WriteFile writes arrays as an NPZ archive to path. Entries are ordered by name.
func WriteFile(path string, arrays map[string]*ndarray.Array, opts ...WriterOption) error {
	set, err := SetFromMap(arrays)
	if err != nil {
		return err
	}

	w, err := NewWriter(opts...)
	if err != nil {
		return err
	}

	_, err = w.WriteFile(path, set)

	return err
}

// WriteFileArgs writes positional and keyword arrays as an NPZ archive to
// path. Names are resolved by Merge.
func WriteFileArgs(path string, positional []*ndarray.Array, named map[string]*ndarray.Array, opts ...WriterOption) error {
	set, err := Merge(positional, named)
	if err != nil {
		return err
	}

	w, err := NewWriter(opts...)
	if err != nil {
		return err
	}

	_, err = w.WriteFile(path, set)

	return err
}

// WriteTo writes set as an NPZ archive into the object called name created by s.
func WriteTo(ctx context.Context, s sink.Sink, name string, set *ArraySet, opts ...WriterOption) (*Report, error) {
	w, err := NewWriter(opts...)
	if err != nil {
		return nil, err
	}

	return w.WriteTo(ctx, s, name, set)
}
