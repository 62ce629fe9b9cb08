// Package npz packs named arrays into NPZ archives and reads them back.
//
// An NPZ archive is a ZIP file whose members are complete NPY files named
// "<key>.npy". Each array is encoded into an isolated pooled buffer first and
// then streamed into its own archive entry, so a failure while encoding one
// array never corrupts an entry that was already finalized. The archive is
// always finalized, also when a write fails partway; entries written before
// the failure remain readable.
//
// Names are resolved by Merge: positional arrays are called arr_0, arr_1, ...
// in order and keyword arrays are applied afterwards, replacing a positional
// array of the same name.
//
//	err := npz.WriteFileArgs("out.npz",
//	    []*ndarray.Array{a, b},
//	    map[string]*ndarray.Array{"y": c},
//	    npz.WithCompression(true),
//	)
//
// Entries are stored uncompressed by default. WithCompression enables DEFLATE
// (readable everywhere); WithCompressionMethod(format.CompressionZstd) selects
// ZIP method 93, which needs a reader that supports it. Reader registers it.
package npz
