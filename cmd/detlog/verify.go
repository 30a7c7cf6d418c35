package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/detlog/logdet"
	"github.com/katalvlaran/detlog/lu"
	"github.com/katalvlaran/detlog/matrix"
	"gonum.org/v1/gonum/mat"
)

// verifyRelTol bounds the accepted log|det| disagreement, relative to
// max(1, |log|det||).
const verifyRelTol = 1e-8

var errVerifyMismatch = errors.New("detlog: result disagrees with gonum")

// gonumRef is an independent copy of the input for gonum's LU.
type gonumRef struct {
	a *mat.Dense
}

func newGonumRef(m matrix.Matrix) (*gonumRef, error) {
	n := m.Rows()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("verify: %w", err)
			}
			data[i*n+j] = v
		}
	}

	return &gonumRef{a: mat.NewDense(n, n, data)}, nil
}

// compare returns gonum's log form and whether it agrees with lf.
func (g *gonumRef) compare(lf logdet.LogForm) (logdet.LogForm, float64, bool) {
	logAbs, sign := mat.LogDet(g.a)
	want := logdet.LogForm{Sign: int(sign), LogAbs: logAbs}
	if math.IsInf(logAbs, -1) || sign == 0 {
		want = logdet.Zero
	}

	if want.IsZero() || lf.IsZero() {
		return want, 0, want.IsZero() == lf.IsZero()
	}
	diff := math.Abs(want.LogAbs - lf.LogAbs)
	ok := want.Sign == lf.Sign && diff <= verifyRelTol*math.Max(1, math.Abs(want.LogAbs))

	return want, diff, ok
}

// residual is max|A − Pᵀ·L·U| relative to max|A| (absolute for a zero A).
func (g *gonumRef) residual(f *lu.Factorization) (float64, error) {
	rec, err := f.Reconstruct()
	if err != nil {
		return 0, fmt.Errorf("verify: %w", err)
	}
	n, _ := g.a.Dims()
	var maxDiff, maxA float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err := rec.At(i, j)
			if err != nil {
				return 0, fmt.Errorf("verify: %w", err)
			}
			a := g.a.At(i, j)
			maxDiff = math.Max(maxDiff, math.Abs(a-v))
			maxA = math.Max(maxA, math.Abs(a))
		}
	}
	if maxA == 0 {
		return maxDiff, nil
	}

	return maxDiff / maxA, nil
}

// report prints the gonum cross-check and the reconstruction residual of f,
// and returns errVerifyMismatch when the log forms disagree.
func (g *gonumRef) report(out io.Writer, lf logdet.LogForm, f *lu.Factorization) error {
	res, err := g.residual(f)
	if err != nil {
		return err
	}
	want, diff, ok := g.compare(lf)
	fmt.Fprintf(out, "gonum sign  = %d\n", want.Sign)
	fmt.Fprintf(out, "gonum log   = %.17g\n", want.LogAbs)
	fmt.Fprintf(out, "residual    = %.3g\n", res)
	if !ok {
		fmt.Fprintf(out, "verify      = MISMATCH (|Δlog| = %.3g)\n", diff)
		return fmt.Errorf("%w: sign %d vs %d, |Δlog| = %.3g", errVerifyMismatch, lf.Sign, want.Sign, diff)
	}
	fmt.Fprintf(out, "verify      = ok (|Δlog| = %.3g)\n", diff)

	return nil
}
