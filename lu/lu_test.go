// Package lu_test contains unit tests for the pivoted in-place LU factorizer.
package lu_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/detlog/lu"
	"github.com/katalvlaran/detlog/matrix"
	"github.com/stretchr/testify/require"
)

// mustDense builds a Dense from literal rows or fails the test.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseRows(rows)
	require.NoError(t, err)

	return m
}

// randomDense fills an n×n Dense with uniform values in [-1, 1).
func randomDense(t testing.TB, n int, seed uint64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.NoError(t, m.Set(i, j, 2*rng.Float64()-1))
		}
	}

	return m
}

// permuteRows returns P·A for the row order perm.
func permuteRows(t *testing.T, a matrix.Matrix, perm []int) *matrix.Dense {
	t.Helper()
	n := a.Rows()
	out, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i, src := range perm {
		for j := 0; j < n; j++ {
			v, err := a.At(src, j)
			require.NoError(t, err)
			require.NoError(t, out.Set(i, j, v))
		}
	}

	return out
}

// requireReconstruction checks P·A ≈ L·U entry by entry.
func requireReconstruction(t *testing.T, orig matrix.Matrix, f *lu.Factorization, delta float64) {
	t.Helper()
	pa := permuteRows(t, orig, f.Permutation())
	prod, err := matrix.Mul(f.L(), f.U())
	require.NoError(t, err)
	n := f.N()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want, _ := pa.At(i, j)
			got, _ := prod.At(i, j)
			require.InDeltaf(t, want, got, delta, "P·A vs L·U at (%d,%d)", i, j)
		}
	}
}

func TestFactorize_Errors(t *testing.T) {
	_, err := lu.Factorize(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	ns, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = lu.Factorize(ns)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	require.False(t, ns.Released()) // rejected input stays usable

	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	_, err = lu.Factorize(m)
	require.NoError(t, err)
	_, err = lu.Factorize(m) // second hand-off of the same buffer
	require.ErrorIs(t, err, matrix.ErrReleased)
}

// TestFactorize_ConsumesInput verifies the ownership transfer.
func TestFactorize_ConsumesInput(t *testing.T) {
	m := mustDense(t, [][]float64{{4, 3}, {6, 3}})
	_, err := lu.Factorize(m)
	require.NoError(t, err)

	require.True(t, m.Released())
	require.Zero(t, m.Rows())
	_, err = m.At(0, 0)
	require.ErrorIs(t, err, matrix.ErrReleased)
	require.ErrorIs(t, m.Set(0, 0, 1), matrix.ErrReleased)
}

// TestFactorize_Known2x2 checks the exact in-place layout for a small case.
// A = [[4,3],[6,3]] pivots on row 1 (|6| > |4|): U = [[6,3],[0,1]], L21 = 2/3.
func TestFactorize_Known2x2(t *testing.T) {
	f, err := lu.Factorize(mustDense(t, [][]float64{{4, 3}, {6, 3}}))
	require.NoError(t, err)

	require.False(t, f.Singular)
	require.Equal(t, -1, f.Stage)
	require.Equal(t, lu.PivotRecord{2, 2}, f.Pivots())
	require.Equal(t, 1, f.Swaps())

	u00, _ := f.At(0, 0)
	u01, _ := f.At(0, 1)
	l10, _ := f.At(1, 0)
	u11, _ := f.At(1, 1)
	require.Equal(t, 6.0, u00)
	require.Equal(t, 3.0, u01)
	require.InDelta(t, 2.0/3.0, l10, 1e-15)
	require.InDelta(t, 1.0, u11, 1e-15)
	require.Equal(t, []int{1, 0}, f.Permutation())

	_, err = f.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

// TestFactorize_TieBreakLowestRow pins the deterministic tie-break.
func TestFactorize_TieBreakLowestRow(t *testing.T) {
	// Column 0 magnitudes: 1, 3, -3 → rows 1 and 2 tie; row 1 must win.
	f, err := lu.Factorize(mustDense(t, [][]float64{
		{1, 0, 0},
		{3, 1, 0},
		{-3, 0, 1},
	}))
	require.NoError(t, err)
	require.Equal(t, 2, f.Pivots()[0])

	// No swap when the diagonal already ties with a lower row.
	f, err = lu.Factorize(mustDense(t, [][]float64{{2, 1}, {-2, 1}}))
	require.NoError(t, err)
	require.Equal(t, lu.PivotRecord{1, 2}, f.Pivots())
	require.Zero(t, f.Swaps())
}

// TestFactorize_Identity leaves the buffer unchanged and records no swaps.
func TestFactorize_Identity(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		id, err := matrix.Identity(n)
		require.NoError(t, err)
		f, err := lu.Factorize(id)
		require.NoError(t, err)
		require.False(t, f.Singular)
		require.Zero(t, f.Swaps())
		for _, d := range f.Diag() {
			require.Equal(t, 1.0, d)
		}
	}
}

// TestFactorize_Singular stops at the first zero pivot column.
func TestFactorize_Singular(t *testing.T) {
	// Two identical rows: the last stage meets an all-zero column.
	orig := mustDense(t, [][]float64{
		{1, 2, 3},
		{1, 2, 3},
		{4, 5, 7},
	})
	keep := orig.Clone()
	f, err := lu.Factorize(orig)
	require.NoError(t, err)
	require.True(t, f.Singular)
	require.GreaterOrEqual(t, f.Stage, 1)
	require.Len(t, f.Pivots(), 3)
	requireReconstruction(t, keep, f, 1e-12)

	// A zero first column is singular at stage 0.
	f, err = lu.Factorize(mustDense(t, [][]float64{{0, 1}, {0, 2}}))
	require.NoError(t, err)
	require.True(t, f.Singular)
	require.Equal(t, 0, f.Stage)
	require.Equal(t, lu.PivotRecord{1, 2}, f.Pivots())

	// 1×1 zero.
	f, err = lu.Factorize(mustDense(t, [][]float64{{0}}))
	require.NoError(t, err)
	require.True(t, f.Singular)
}

// TestFactorize_Reconstruction checks P·A = L·U on random inputs of several sizes.
func TestFactorize_Reconstruction(t *testing.T) {
	for _, n := range []int{1, 2, 3, 8, 33} {
		a := randomDense(t, n, uint64(n))
		keep := a.Clone()
		f, err := lu.Factorize(a)
		require.NoError(t, err)
		require.False(t, f.Singular)
		requireReconstruction(t, keep, f, 1e-12*float64(n))

		// Partial pivoting bounds every multiplier by 1.
		l := f.L()
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				v, _ := l.At(i, j)
				require.LessOrEqual(t, math.Abs(v), 1.0)
			}
		}
	}
}

// TestFactorizeCopy keeps the caller's matrix readable.
func TestFactorizeCopy(t *testing.T) {
	m := mustDense(t, [][]float64{{0, 1}, {1, 0}})
	f, err := lu.FactorizeCopy(m)
	require.NoError(t, err)
	require.False(t, m.Released())
	require.Equal(t, 1, f.Swaps())

	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	_, err = lu.FactorizeCopy(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestAllocPivots_Failure covers the fatal allocation path.
func TestAllocPivots_Failure(t *testing.T) {
	_, err := lu.AllocPivots(-1)
	require.ErrorIs(t, err, lu.ErrAllocation)

	_, err = lu.AllocPivots(math.MaxInt)
	require.ErrorIs(t, err, lu.ErrAllocation)

	p, err := lu.AllocPivots(4)
	require.NoError(t, err)
	require.Len(t, p, 4)
}

func TestPivotRecord(t *testing.T) {
	p := lu.PivotRecord{3, 2, 3}
	require.Equal(t, 1, p.Swaps())
	require.Equal(t, -1, p.Sign())
	require.Equal(t, []int{2, 1, 0}, p.Permutation())

	p = lu.PivotRecord{2, 3, 3}
	require.Equal(t, 2, p.Swaps())
	require.Equal(t, 1, p.Sign())
	require.Equal(t, []int{1, 2, 0}, p.Permutation())
}

// sliceMatrix is a minimal non-Dense Matrix. It counts Clone calls and can
// be told to fail reads.
type sliceMatrix struct {
	rows    [][]float64
	clones  int
	failAtR int
}

func (s *sliceMatrix) Rows() int { return len(s.rows) }
func (s *sliceMatrix) Cols() int { return len(s.rows[0]) }
func (s *sliceMatrix) At(i, j int) (float64, error) {
	if i == s.failAtR {
		return 0, matrix.ErrIndexOutOfBounds
	}
	return s.rows[i][j], nil
}
func (s *sliceMatrix) Set(i, j int, v float64) error {
	s.rows[i][j] = v
	return nil
}
func (s *sliceMatrix) Clone() matrix.Matrix {
	s.clones++
	return &sliceMatrix{rows: s.rows, failAtR: s.failAtR}
}

// TestFactorizeCopy_Generic reads a non-Dense input once, without cloning it,
// and surfaces read failures.
func TestFactorizeCopy_Generic(t *testing.T) {
	src := &sliceMatrix{rows: [][]float64{{4, 3}, {6, 3}}, failAtR: -1}
	f, err := lu.FactorizeCopy(src)
	require.NoError(t, err)
	require.Zero(t, src.clones)
	require.Equal(t, lu.PivotRecord{2, 2}, f.Pivots())
	require.Equal(t, [][]float64{{4, 3}, {6, 3}}, src.rows)

	bad := &sliceMatrix{rows: [][]float64{{1, 2}, {3, 4}}, failAtR: 1}
	_, err = lu.FactorizeCopy(bad)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

// TestReconstruct rebuilds the input from its factors, swaps included.
func TestReconstruct(t *testing.T) {
	for _, n := range []int{1, 4, 19} {
		a := randomDense(t, n, 100+uint64(n))
		keep := a.Clone()
		f, err := lu.Factorize(a)
		require.NoError(t, err)

		got, err := f.Reconstruct()
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				want, _ := keep.At(i, j)
				v, _ := got.At(i, j)
				require.InDeltaf(t, want, v, 1e-12*float64(n), "(%d,%d)", i, j)
			}
		}
	}

	// Singular input: the unreduced trailing block still reconstructs.
	keep := mustDense(t, [][]float64{{1, 2}, {2, 4}})
	f, err := lu.FactorizeCopy(keep)
	require.NoError(t, err)
	require.True(t, f.Singular)
	got, err := f.Reconstruct()
	require.NoError(t, err)
	require.Equal(t, keep.String(), got.String())
}
