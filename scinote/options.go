// SPDX-License-Identifier: MIT

package scinote

// ---------- Defaults ----------

const (
	// DefaultPrecision is the number of mantissa digits after the decimal point.
	DefaultPrecision = 15

	// MaxPrecision is the largest precision that still carries float64 information.
	MaxPrecision = 17
)

const panicPrecisionInvalid = "scinote: WithPrecision: precision must be in [0, 17]"

// Option mutates rendering options.
// Constructors panic only on nonsensical values (programmer error).
type Option func(*options)

type options struct {
	precision int  // mantissa decimals
	upperE    bool // 'E' instead of 'e'
}

// WithPrecision sets the number of mantissa digits after the decimal point.
// Panics if p is outside [0, MaxPrecision].
func WithPrecision(p int) Option {
	if p < 0 || p > MaxPrecision {
		panic(panicPrecisionInvalid)
	}

	return func(o *options) { o.precision = p }
}

// WithUpperE renders the exponent separator as 'E'.
func WithUpperE() Option {
	return func(o *options) { o.upperE = true }
}

// gatherOptions applies setters on top of the defaults (last writer wins).
func gatherOptions(opts ...Option) options {
	o := options{precision: DefaultPrecision}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
