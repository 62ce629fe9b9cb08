// Package npy encodes single arrays to the NPY binary format and decodes them
// back.
//
// Encoded files always declare fortran_order True: the payload is the array's
// column-major element sequence exactly as held by ndarray.Array, so no
// transpose is needed. The header is padded so that the data starts on a
// 64-byte boundary.
//
// Basic usage:
//
//	a, _ := ndarray.FromSlice([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
//	if err := npy.WriteFile("x.npy", a); err != nil {
//	    return err
//	}
//
//	back, err := npy.ReadFile("x.npy")
//
// The output byte order defaults to the host order and can be forced with
// WithLittleEndian or WithBigEndian. WithStreamCompression wraps the whole file
// in a compression stream; such files must be read with
// WithStreamDecompression.
package npy
