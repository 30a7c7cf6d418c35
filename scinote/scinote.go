// SPDX-License-Identifier: MIT

package scinote

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/detlog/logdet"
)

// ln10Lo is ln(10) − float64(ln(10)); e·ln10 is evaluated as a fused
// multiply-add on math.Ln10 plus this correction, which keeps the reduced
// argument accurate to a few ulps for any decimal exponent.
const ln10Lo = -2.1707562233822494e-16

// Value is a decimal scientific-notation pair Mantissa·10^Exponent.
// Mantissa is 0 (zero determinant) or has magnitude in [1, 10).
type Value struct {
	Mantissa float64
	Exponent int
}

// FromLogForm converts Sign·exp(LogAbs) into a Value without evaluating
// exp(LogAbs).
//
// Implementation:
//   - Stage 1: zero form → Value{0, 0}.
//   - Stage 2: e = floor(LogAbs / ln10).
//   - Stage 3: mantissa = exp(LogAbs − e·ln10), which equals 10^f with
//     f = LogAbs/ln10 − e in [0, 1); renormalize if rounding pushed it to 10
//     or below 1.
//
// Non-finite LogAbs (+Inf, NaN) can only come from non-finite input and is
// passed through as an Inf/NaN mantissa with exponent 0.
// Complexity: O(1).
func FromLogForm(lf logdet.LogForm) Value {
	if lf.IsZero() {
		return Value{}
	}
	if math.IsNaN(lf.LogAbs) || math.IsInf(lf.LogAbs, 1) {
		return Value{Mantissa: float64(lf.Sign) * lf.LogAbs}
	}

	e := math.Floor(lf.LogAbs / math.Ln10)
	r := math.FMA(-e, math.Ln10, lf.LogAbs) - e*ln10Lo
	mant := math.Exp(r)
	switch {
	case mant >= 10:
		mant /= 10
		e++
	case mant < 1:
		mant *= 10
		e--
	}
	if lf.Sign < 0 {
		mant = -mant
	}

	return Value{Mantissa: mant, Exponent: int(e)}
}

// IsZero reports whether v is the canonical zero.
func (v Value) IsZero() bool { return v.Mantissa == 0 }

// Format renders v as [-]d.ddd…e±XX.
//
// Behavior highlights:
//   - Precision mantissa decimals (DefaultPrecision unless WithPrecision).
//   - Exponent always signed, at least two digits.
//   - A mantissa that rounds up to 10 at the requested precision is shown
//     as 1.000… with the exponent incremented.
func (v Value) Format(opts ...Option) string {
	o := gatherOptions(opts...)
	if math.IsNaN(v.Mantissa) || math.IsInf(v.Mantissa, 0) {
		return strconv.FormatFloat(v.Mantissa, 'g', -1, 64)
	}

	sep := byte('e')
	if o.upperE {
		sep = 'E'
	}

	abs, exp := math.Abs(v.Mantissa), v.Exponent
	digits := strconv.FormatFloat(abs, 'f', o.precision, 64)
	if abs != 0 && strings.HasPrefix(digits, "10") {
		abs /= 10
		exp++
		digits = strconv.FormatFloat(abs, 'f', o.precision, 64)
	}

	var sb strings.Builder
	if v.Mantissa < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(digits)
	sb.WriteByte(sep)
	fmt.Fprintf(&sb, "%+03d", exp)

	return sb.String()
}

// String renders v with default options.
func (v Value) String() string { return v.Format() }

// Format is FromLogForm followed by Value.Format.
func Format(lf logdet.LogForm, opts ...Option) string {
	return FromLogForm(lf).Format(opts...)
}
