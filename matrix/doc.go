// Package matrix provides the dense square-matrix storage consumed by the
// determinant kernels of detlog.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix backed by one contiguous slice, with
//     bounds-checked At/Set and deep Clone.
//   - Release, the ownership hand-off used by in-place factorizations: after
//     Release the Dense rejects every access with ErrReleased, so a
//     half-factored buffer can never be mistaken for the original input.
//   - A small set of validators (ValidateNotNil, ValidateSquare,
//     ValidateFinite) and kernels (Mul, Scale, SwapRows) used by loaders and
//     property tests.
//
// All failures are reported through the sentinel errors in errors.go and
// matched with errors.Is.
package matrix
