// SPDX-License-Identifier: MIT

package lu

import (
	"errors"
	"fmt"
)

// ErrAllocation is returned when the pivot record cannot be allocated.
// It is fatal for the call: nothing has been factorized and the input
// Dense is left untouched (not released).
var ErrAllocation = errors.New("lu: allocation failed")

// opFactorize tags every error surfaced by Factorize/FactorizeCopy.
const opFactorize = "LU"

// luErrorf wraps err with an operation tag, preserving it for errors.Is.
// Use only when err != nil.
func luErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
