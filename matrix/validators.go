// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating shape/nil/finiteness checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//  - ValidateFinite is O(r*c); everything else is O(1).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including a typed
// nil *Dense stored in the interface.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateLive rejects a Dense whose buffer was already released.
// Non-Dense implementations are always live.
// Complexity: O(1).
func ValidateLive(m Matrix) error {
	if d, ok := m.(*Dense); ok && d.released {
		return validatorErrorf("ValidateLive", ErrReleased)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols) and non-empty.
//
// Implementation: assumes m is not nil (caller must ensure).
// Errors: ErrNonSquare if not square, ErrInvalidDimensions if 0×0.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}
	if m.Rows() == 0 {
		return validatorErrorf("ValidateSquare", ErrInvalidDimensions)
	}

	return nil
}

// ValidateFinite scans every entry and rejects NaN or ±Inf.
// The first offending position is reported in the error.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	// Fast path over the flat slice.
	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", idx/d.c, idx%d.c), ErrNaNInf)
			}
		}
		return nil
	}

	// Fallback: generic interface loop
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateSquareFinite runs the composite check a determinant kernel needs:
// NotNil → Live → Square → Finite.
// Complexity: O(n²).
func ValidateSquareFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if err := ValidateLive(m); err != nil {
		return err
	}
	if err := ValidateSquare(m); err != nil {
		return err
	}

	return ValidateFinite(m)
}
