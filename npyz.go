// Package npyz writes NumPy NPY array files and NPZ archives.
//
// An NPY file holds one n-dimensional array: a small text header describing
// the element type, the memory order and the shape, followed by the raw
// element bytes. An NPZ file is a ZIP archive of NPY files, one entry per
// named array.
//
// # Basic Usage
//
// Writing a single array:
//
//	a, _ := ndarray.FromSlice([]int{2, 3}, []float64{1, 4, 2, 5, 3, 6})
//	err := npyz.WriteArray("matrix.npy", a)
//
// Writing an archive from named arrays:
//
//	err := npyz.WriteArchive("data.npz", map[string]*ndarray.Array{
//	    "weights": w,
//	    "bias":    b,
//	}, true, compress.LevelDefault)
//
// Writing an archive from positional and keyword arrays. Positional arrays are
// named arr_0, arr_1, ...; a keyword array with the same name wins:
//
//	err := npyz.WriteArchiveArgs("data.npz", []*ndarray.Array{a, b}, false, 0,
//	    map[string]*ndarray.Array{"y": c})
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For decoding, remote
// destinations and fine-grained options use the npy, npz and sink packages
// directly.
package npyz

import (
	"github.com/arloliu/npyz/ndarray"
	"github.com/arloliu/npyz/npy"
	"github.com/arloliu/npyz/npz"
)

// WriteArray writes a as an NPY file at dest in the host byte order. An
// existing file is truncated and no extension is appended.
func WriteArray(dest string, a *ndarray.Array) error {
	return npy.WriteFile(dest, a)
}

// WriteArchive writes arrays as an NPZ archive at dest, one entry per name in
// lexicographic order. When compressed is true entries are DEFLATE compressed
// at level, which must lie in -2 (Huffman only) through 9, with
// compress.LevelDefault (-1) selecting the default; any other level fails
// with errs.ErrInvalidCompression before dest is created. When compressed is
// false level is ignored.
//
// An empty mapping produces a valid empty archive and logs a warning.
func WriteArchive(dest string, arrays map[string]*ndarray.Array, compressed bool, level int) error {
	return npz.WriteFile(dest, arrays, archiveOptions(compressed, level)...)
}

// WriteArchiveArgs writes positional and keyword arrays as an NPZ archive at
// dest. See npz.Merge for how names are resolved. compressed and level follow
// WriteArchive, including the rejection of out-of-range levels.
func WriteArchiveArgs(dest string, positional []*ndarray.Array, compressed bool, level int, named map[string]*ndarray.Array) error {
	return npz.WriteFileArgs(dest, positional, named, archiveOptions(compressed, level)...)
}

func archiveOptions(compressed bool, level int) []npz.WriterOption {
	if !compressed {
		return []npz.WriterOption{npz.WithCompression(false)}
	}

	return []npz.WriterOption{npz.WithCompression(true), npz.WithCompressionLevel(level)}
}
