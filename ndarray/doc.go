// Package ndarray defines Array, the column-major array value encoded by the
// npy and npz packages.
//
// An Array is a shape, an element type and a flat byte payload in column-major
// (Fortran) order: the first dimension varies fastest. Arrays built from typed
// Go slices are zero-copy views over the slice, so the slice must not be
// modified while an encode call that uses the Array is running:
//
//	// 2x3 matrix, column by column: [[1, 3, 5], [2, 4, 6]]
//	a, err := ndarray.FromSlice([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
//
//	s := ndarray.Scalar(int32(7))   // shape ()
//
// Data held in row-major order can be converted with FromRowMajor, which
// copies and reorders the payload.
package ndarray
