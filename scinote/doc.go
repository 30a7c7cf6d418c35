// Package scinote renders a log-form determinant in decimal scientific
// notation.
//
// The input is the pair (sign, log|det|) produced by package logdet; the raw
// determinant may lie far outside float64 range, so it is never rebuilt.
// Instead the decimal exponent is taken as floor(log|det| / ln 10) and only
// the fractional remainder is exponentiated, giving a mantissa in [1, 10).
//
//	scinote.Format(logdet.LogForm{Sign: -1, LogAbs: 1e4})
//	// -8.80681822566292…e+4342
//
// A zero determinant renders as the canonical 0.000000000000000e+00.
package scinote
