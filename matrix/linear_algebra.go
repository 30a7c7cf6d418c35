// SPDX-License-Identifier: MIT
// Package matrix provides the handful of dense kernels the determinant
// pipeline and its property checks rely on: multiplication (P·A = L·U
// reconstruction), scalar scaling, and row swaps (pivoting and permutation
// builders).
//
// Notes:
//   - All kernels validate through validators.go and wrap failures via matrixErrorf.
//   - Inputs are never mutated except by SwapRows, which is in-place by contract.

package matrix

import "fmt"

// ZeroSum is the initial sum value for dot products and accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul      = "Mul"
	opScale    = "Scale"
	opSwapRows = "SwapRows"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// validateOperand is the NotNil → Live sequence shared by every kernel here.
func validateOperand(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}

	return ValidateLive(m)
}

// Mul performs standard matrix multiplication C = A × B into a fresh Dense.
//
// Implementation:
//   - Stage 1: validate both operands and a.Cols == b.Rows.
//   - Stage 2: *Dense×*Dense uses an i-k-j flat loop; otherwise At/Set fallback.
//
// Errors: ErrNilMatrix, ErrReleased, ErrDimensionMismatch.
// Complexity: Time O(r·k·c), Space O(r·c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := validateOperand(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := validateOperand(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}

	// Allocate result Dense
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int // loop iterators
		av, bv, current float64
	)
	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}
			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			res.data[i*bCols+j] = current
		}
	}

	return res, nil
}

// Scale returns a new Dense whose elements are alpha * m[i,j].
// The original matrix is never mutated.
// Errors: ErrNilMatrix, ErrReleased.
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := validateOperand(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	// Fast-path for Dense → Dense
	if dm, ok := m.(*Dense); ok {
		for idx, v := range dm.data {
			res.data[idx] = v * alpha
		}
		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*cols+j] = v * alpha
		}
	}

	return res, nil
}

// SwapRows exchanges rows i and j of m in place. i == j is a no-op.
// Errors: ErrNilMatrix, ErrReleased, ErrIndexOutOfBounds.
// Complexity: O(c).
func SwapRows(m *Dense, i, j int) error {
	if m == nil {
		return matrixErrorf(opSwapRows, ErrNilMatrix)
	}
	if m.released {
		return matrixErrorf(opSwapRows, ErrReleased)
	}
	if i < 0 || i >= m.r || j < 0 || j >= m.r {
		return matrixErrorf(opSwapRows, fmt.Errorf("rows %d,%d: %w", i, j, ErrIndexOutOfBounds))
	}
	SwapFlatRows(m.data, m.c, i, j)

	return nil
}

// SwapFlatRows exchanges rows i and j of a row-major buffer with cols
// columns. It is the kernel behind SwapRows, exported for in-place
// factorizations that work on a released buffer. Indices are not checked;
// i == j is a no-op.
// Complexity: O(cols).
func SwapFlatRows(data []float64, cols, i, j int) {
	if i == j {
		return
	}
	ri, rj := data[i*cols:(i+1)*cols], data[j*cols:(j+1)*cols]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}
