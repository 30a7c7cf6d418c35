// Package lu implements in-place LU factorization with partial pivoting for
// dense square matrices.
//
// What & Why:
//
//	Factorize takes ownership of a *matrix.Dense (via Dense.Release) and
//	overwrites its buffer with the combined factors of P·A = L·U: strictly
//	below the diagonal sit the multipliers of the unit-lower L, on and above
//	the diagonal sits U. The row interchanges are recorded in a PivotRecord
//	using the 1-based LAPACK ipiv convention, so the permutation parity can
//	be read off without rebuilding P.
//
// Pivoting:
//
//	At stage k the row with the largest |A[r][k]|, r ≥ k, becomes the pivot.
//	Ties resolve to the lowest row index, which makes the factorization
//	reproducible bit-for-bit. An all-zero pivot column stops the elimination
//	and marks the factorization Singular; this is a result, not an error.
//
// Errors:
//
//	ErrAllocation is the only failure of a well-formed call. Precondition
//	violations (nil, released or non-square input) surface as wrapped
//	matrix sentinels.
//
// Complexity:
//
//	O(n³) time, in-place storage, O(n) for the pivot record.
package lu
