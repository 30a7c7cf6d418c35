// SPDX-License-Identifier: MIT
// Package logdet derives the determinant of a square matrix in log form,
// sign(det A) and log|det A|, from a pivoted LU factorization.
//
// Purpose:
//   - Keep every intermediate value in range: the product of n pivots can
//     overflow or underflow float64 long before det A leaves the
//     representable range, the sum of their logarithms cannot.
//   - Report a singular matrix as the zero form {0, -Inf}, never as an error.
//
// Notes:
//   - A LogForm is never turned back into a raw float64 here; use package
//     scinote to render it.

package logdet

import (
	"fmt"
	"math"

	"github.com/katalvlaran/detlog/lu"
	"github.com/katalvlaran/detlog/matrix"
)

// LogForm is a determinant represented as Sign·exp(LogAbs).
// Sign == 0 if and only if LogAbs == -Inf (the determinant is exactly zero).
type LogForm struct {
	Sign   int
	LogAbs float64
}

// Zero is the canonical form of a zero determinant.
var Zero = LogForm{Sign: 0, LogAbs: math.Inf(-1)}

// IsZero reports whether the form encodes an exactly zero determinant.
func (lf LogForm) IsZero() bool {
	return lf.Sign == 0 || math.IsInf(lf.LogAbs, -1)
}

// String renders the pair as "sign=<s> log|det|=<l>".
func (lf LogForm) String() string {
	return fmt.Sprintf("sign=%d log|det|=%.17g", lf.Sign, lf.LogAbs)
}

// Scale returns the log form of det(c·A) for an n×n matrix A whose
// determinant is lf: log|det| grows by n·log|c| and the sign picks up
// sign(c)^n. c == 0 yields Zero.
// Complexity: O(1).
func (lf LogForm) Scale(n int, c float64) LogForm {
	if lf.IsZero() || c == 0 {
		return Zero
	}
	sign := lf.Sign
	if c < 0 && n%2 == 1 {
		sign = -sign
	}

	return LogForm{Sign: sign, LogAbs: lf.LogAbs + float64(n)*math.Log(math.Abs(c))}
}

// FromParts accumulates the log form from the diagonal of U and the pivot
// record of a completed factorization.
//
// Implementation:
//   - Stage 1: permutation sign, flipped once per pivots[i] != i+1.
//   - Stage 2: for each u_ii, short-circuit to Zero on u_ii == 0; otherwise
//     fold sign(u_ii) into the sign and add log|u_ii|.
//
// Complexity: O(n).
func FromParts(diag []float64, pivots lu.PivotRecord) LogForm {
	sign := pivots.Sign()
	logAbs := 0.0
	for _, u := range diag {
		if u == 0 {
			return Zero
		}
		if u < 0 {
			sign = -sign
		}
		logAbs += math.Log(math.Abs(u))
	}

	return LogForm{Sign: sign, LogAbs: logAbs}
}

// FromFactorization is FromParts over f, returning Zero for a factorization
// that stopped on a singular stage.
func FromFactorization(f *lu.Factorization) LogForm {
	if f == nil || f.Singular {
		return Zero
	}

	return FromParts(f.Diag(), f.Pivots())
}

// Of factorizes m in place and returns its log form. m is consumed (see
// lu.Factorize); errors are those of lu.Factorize.
func Of(m *matrix.Dense) (LogForm, error) {
	f, err := lu.Factorize(m)
	if err != nil {
		return Zero, fmt.Errorf("logdet.Of: %w", err)
	}

	return FromFactorization(f), nil
}

// OfCopy is Of on a private copy; m stays readable.
func OfCopy(m matrix.Matrix) (LogForm, error) {
	f, err := lu.FactorizeCopy(m)
	if err != nil {
		return Zero, fmt.Errorf("logdet.OfCopy: %w", err)
	}

	return FromFactorization(f), nil
}
