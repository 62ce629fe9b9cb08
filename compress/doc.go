// Package compress provides the compression layers used when writing and
// reading NPY and NPZ files.
//
// Two integration points are offered:
//
//   - Stream codecs wrap an io.Writer or io.Reader so that a whole .npy file
//     can be stored compressed (zstd, s2, lz4 frame or raw DEFLATE). See
//     NewWriter and NewReader.
//   - ZIP method helpers map a format.CompressionType to the ZIP method used
//     for NPZ entries and register the matching compressors on a
//     github.com/klauspost/compress/zip Writer or Reader. Store and Deflate are
//     readable by every NPZ consumer; Zstd (method 93) requires a reader that
//     understands it.
//
// # Levels
//
// Every codec accepts a level. LevelDefault selects the codec's own default.
// Other values are interpreted per codec:
//
//	Codec    | Accepted levels
//	---------|------------------------------------------
//	None     | ignored
//	Deflate  | -2 (Huffman only) .. 9
//	Zstd     | 1 .. 22 (mapped onto the encoder speed tiers)
//	S2       | 1 (fast), 2 (better), 3 (best)
//	LZ4      | 1 .. 9
//
// # Zstd backends
//
// The pure Go encoder from github.com/klauspost/compress/zstd is used by
// default. Building with the "gozstd" tag and cgo enabled switches the
// stream codec to github.com/valyala/gozstd.
package compress
