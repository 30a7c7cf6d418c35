// SPDX-License-Identifier: MIT

package lu

import (
	"fmt"
	"math"

	"github.com/katalvlaran/detlog/matrix"
)

// ZeroPivot is the sentinel magnitude that marks a singular stage.
const ZeroPivot = 0.0

// Factorization is the in-place result of Factorize.
//
// Storage is the released row-major buffer of the input: entries strictly
// below the diagonal are L multipliers (unit diagonal implied), entries on
// and above the diagonal are U. When Singular is true the elimination stopped
// at Stage; rows and columns from Stage on hold the unreduced trailing block.
type Factorization struct {
	n      int
	data   []float64
	pivots PivotRecord

	// Singular reports that an all-zero pivot column was met.
	Singular bool
	// Stage is the first singular stage, or -1.
	Stage int
}

// Factorize computes P·A = L·U in place with partial pivoting.
//
// Implementation:
//   - Stage 1: validate m (non-nil, live, square); allocate the pivot record.
//   - Stage 2: take ownership of the buffer via Release.
//   - Stage 3: for k = 0..n-1 pick the largest |A[r][k]| (lowest r on ties),
//     swap it into row k, store multipliers in column k and update the
//     trailing block. An all-zero column stops with Singular = true.
//
// Behavior highlights:
//   - m is unusable afterwards (ErrReleased), unless an error is returned.
//   - Singularity is data, not an error.
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrNonSquare (wrapped, from matrix).
//   - ErrAllocation when the pivot record cannot be obtained.
//
// Complexity:
//   - Time O(n³), extra space O(n).
func Factorize(m *matrix.Dense) (*Factorization, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, luErrorf(opFactorize, err)
	}
	if err := matrix.ValidateLive(m); err != nil {
		return nil, luErrorf(opFactorize, err)
	}
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, luErrorf(opFactorize, err)
	}

	pivots, err := allocPivots(m.Rows())
	if err != nil {
		return nil, luErrorf(opFactorize, err)
	}

	data, n, _, err := m.Release()
	if err != nil {
		return nil, luErrorf(opFactorize, err)
	}

	f := &Factorization{n: n, data: data, pivots: pivots, Stage: -1}
	f.eliminate()

	return f, nil
}

// FactorizeCopy factorizes a private copy of m, leaving m readable.
// Costs one extra O(n²) buffer. Errors as Factorize.
func FactorizeCopy(m matrix.Matrix) (*Factorization, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, luErrorf(opFactorize, err)
	}
	if err := matrix.ValidateLive(m); err != nil {
		return nil, luErrorf(opFactorize, err)
	}
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, luErrorf(opFactorize, err)
	}

	if src, ok := m.(*matrix.Dense); ok {
		return Factorize(src.Clone().(*matrix.Dense))
	}

	// Any other implementation is read once into a fresh row-major buffer.
	n := m.Rows()
	data := make([]float64, n*n)
	var (
		v   float64
		err error
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, luErrorf(opFactorize, err)
			}
			data[i*n+j] = v
		}
	}
	d, err := matrix.NewDenseData(n, n, data)
	if err != nil {
		return nil, luErrorf(opFactorize, err)
	}

	return Factorize(d)
}

// eliminate runs Gaussian elimination with partial pivoting over f.data.
func (f *Factorization) eliminate() {
	n, a := f.n, f.data
	var (
		i, j, k, p    int
		maxAbs, v     float64
		pivot, factor float64
	)
	for k = 0; k < n; k++ {
		// Pivot search: strict '>' keeps the lowest row among equal magnitudes.
		p, maxAbs = k, math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a[i*n+k]); v > maxAbs {
				p, maxAbs = i, v
			}
		}
		if maxAbs == ZeroPivot {
			f.Singular, f.Stage = true, k
			for i = k; i < n; i++ {
				f.pivots[i] = i + 1
			}
			return
		}

		// Row interchange (whole rows, so earlier multipliers follow their row).
		f.pivots[k] = p + 1
		matrix.SwapFlatRows(a, n, k, p)

		// Elimination below the pivot.
		pivot = a[k*n+k]
		rowK := a[k*n+k+1 : (k+1)*n]
		for i = k + 1; i < n; i++ {
			factor = a[i*n+k] / pivot
			a[i*n+k] = factor
			if factor == 0 {
				continue
			}
			rowI := a[i*n+k+1 : (i+1)*n]
			for j, v = range rowK {
				rowI[j] -= factor * v
			}
		}
	}
}

// N returns the dimension of the factorized matrix.
func (f *Factorization) N() int { return f.n }

// At reads the combined L/U storage at (i, j).
func (f *Factorization) At(i, j int) (float64, error) {
	if i < 0 || i >= f.n || j < 0 || j >= f.n {
		return 0, fmt.Errorf("Factorization.At(%d,%d): %w", i, j, matrix.ErrIndexOutOfBounds)
	}

	return f.data[i*f.n+j], nil
}

// Pivots returns a copy of the pivot record.
func (f *Factorization) Pivots() PivotRecord {
	out := make(PivotRecord, len(f.pivots))
	copy(out, f.pivots)

	return out
}

// Swaps is the number of row interchanges performed.
func (f *Factorization) Swaps() int { return f.pivots.Swaps() }

// Diag returns the diagonal of U.
// Complexity: O(n).
func (f *Factorization) Diag() []float64 {
	d := make([]float64, f.n)
	for i := range d {
		d[i] = f.data[i*f.n+i]
	}

	return d
}

// Permutation returns the row order of P·A (see PivotRecord.Permutation).
func (f *Factorization) Permutation() []int { return f.pivots.Permutation() }

// reduced is the number of columns that hold genuine L multipliers.
func (f *Factorization) reduced() int {
	if f.Singular {
		return f.Stage
	}

	return f.n
}

// L materializes the unit-lower factor as a fresh Dense.
// For a singular factorization only the first Stage columns carry multipliers.
// Complexity: O(n²).
func (f *Factorization) L() *matrix.Dense {
	n, r := f.n, f.reduced()
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < i && j < r; j++ {
			out[i*n+j] = f.data[i*n+j]
		}
		out[i*n+i] = 1
	}
	m, _ := matrix.NewDenseData(n, n, out)

	return m
}

// U materializes the upper factor as a fresh Dense. For a singular
// factorization the trailing block from Stage on is copied whole, so that
// P·A = L·U still holds.
// Complexity: O(n²).
func (f *Factorization) U() *matrix.Dense {
	n, r := f.n, f.reduced()
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		start := i
		if i >= r {
			start = r
		}
		copy(out[i*n+start:(i+1)*n], f.data[i*n+start:(i+1)*n])
	}
	m, _ := matrix.NewDenseData(n, n, out)

	return m
}

// Reconstruct rebuilds A = Pᵀ·L·U from the factors: the product L·U has
// the rows of P·A, and replaying the pivot record backwards restores the
// input order. Used to measure the backward error of a factorization.
// Complexity: O(n³).
func (f *Factorization) Reconstruct() (*matrix.Dense, error) {
	prod, err := matrix.Mul(f.L(), f.U())
	if err != nil {
		return nil, luErrorf("Reconstruct", err)
	}
	for k := f.n - 1; k >= 0; k-- {
		if err = matrix.SwapRows(prod, k, f.pivots[k]-1); err != nil {
			return nil, luErrorf("Reconstruct", err)
		}
	}

	return prod, nil
}
