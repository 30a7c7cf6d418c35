// SPDX-License-Identifier: MIT

package csvmatrix

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when the input holds no non-blank rows.
	ErrEmpty = errors.New("csvmatrix: no rows")

	// ErrNotRectangular is returned when a row's field count differs from the first row's.
	ErrNotRectangular = errors.New("csvmatrix: matrix is not rectangular")

	// ErrNotSquare is returned when the row count differs from the column count.
	ErrNotSquare = errors.New("csvmatrix: matrix is not square")

	// ErrNonNumeric is returned for a field that does not parse as a float.
	ErrNonNumeric = errors.New("csvmatrix: non-numeric entry")

	// ErrNonFinite is returned for a field that parses as NaN or ±Inf.
	ErrNonFinite = errors.New("csvmatrix: non-finite entry")

	// ErrTooLarge is returned when the dimension exceeds the configured MaxDim.
	ErrTooLarge = errors.New("csvmatrix: matrix exceeds dimension limit")
)

// positionErrorf attaches a 1-based line/field position to err.
func positionErrorf(line, field int, err error, detail string) error {
	if detail == "" {
		return fmt.Errorf("line %d field %d: %w", line, field, err)
	}

	return fmt.Errorf("line %d field %d: %w: %s", line, field, err, detail)
}
