// SPDX-License-Identifier: MIT

package csvmatrix

const (
	// DefaultDelimiter separates fields within a row.
	DefaultDelimiter = ','

	// DefaultMaxDim of 0 disables the dimension limit.
	DefaultMaxDim = 0
)

const panicMaxDimInvalid = "csvmatrix: WithMaxDim: limit must be >= 0"

// Option mutates loader options.
type Option func(*options)

type options struct {
	delimiter rune
	maxDim    int
}

// WithDelimiter sets the field separator (e.g. ';' or '\t').
func WithDelimiter(d rune) Option {
	return func(o *options) { o.delimiter = d }
}

// WithMaxDim rejects matrices with more than limit rows or columns.
// 0 disables the check. Panics on a negative limit.
func WithMaxDim(limit int) Option {
	if limit < 0 {
		panic(panicMaxDimInvalid)
	}

	return func(o *options) { o.maxDim = limit }
}

func gatherOptions(opts ...Option) options {
	o := options{delimiter: DefaultDelimiter, maxDim: DefaultMaxDim}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
