// SPDX-License-Identifier: MIT

package lu

import "fmt"

// PivotRecord holds, for each elimination stage i, the 1-based index of the
// row that was swapped into position i (i+1 when no swap happened).
type PivotRecord []int

// allocPivots obtains a pivot record of length n, turning a refused
// allocation into ErrAllocation instead of a crash. Runtime out-of-memory
// aborts cannot be intercepted; oversized or negative lengths can.
func allocPivots(n int) (p PivotRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("pivot record of %d: %v: %w", n, r, ErrAllocation)
		}
	}()
	if n < 0 {
		return nil, fmt.Errorf("pivot record of %d: %w", n, ErrAllocation)
	}

	return make(PivotRecord, n), nil
}

// Swaps counts the stages whose pivot row differs from the stage row.
// Complexity: O(n).
func (p PivotRecord) Swaps() int {
	swaps := 0
	for i, row := range p {
		if row != i+1 {
			swaps++
		}
	}

	return swaps
}

// Sign is the permutation sign, (-1)^Swaps.
func (p PivotRecord) Sign() int {
	if p.Swaps()%2 == 1 {
		return -1
	}

	return 1
}

// Permutation expands the record into the final row order: row i of P·A is
// row Permutation()[i] of A (0-based).
// Complexity: O(n).
func (p PivotRecord) Permutation() []int {
	perm := make([]int, len(p))
	for i := range perm {
		perm[i] = i
	}
	for k, row := range p {
		j := row - 1
		perm[k], perm[j] = perm[j], perm[k]
	}

	return perm
}
