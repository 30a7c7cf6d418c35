// Package matrix provides core linear algebra primitives for array-based computations.
// Dense is a concrete, row-major implementation of the Matrix interface,
// storing elements in a flat slice for performance and cache friendliness.
package matrix

import (
	"fmt"
	"strings"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
// A Dense whose buffer was handed off by Release has released == true and
// r == c == 0; it is permanently unusable.
type Dense struct {
	r, c     int       // number of rows and columns
	data     []float64 // flat backing storage, length == r*c
	released bool      // set once by Release
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or ErrInvalidDimensions.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Allocate flat slice
	data := make([]float64, rows*cols)

	// Return initialized Dense
	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseData wraps an existing row-major slice without copying it.
// The Dense takes ownership of data; the caller must not retain it.
// Returns ErrInvalidDimensions for non-positive shapes and
// ErrDimensionMismatch when len(data) != rows*cols.
// Complexity: O(1).
func NewDenseData(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseData: len %d for %dx%d: %w", len(data), rows, cols, ErrDimensionMismatch)
	}

	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseRows copies a slice of equal-length rows into a fresh Dense.
// Stage 1 (Validate): non-empty input, every row the same non-zero length.
// Stage 2 (Execute): copy row by row into the flat buffer.
// Complexity: O(r*c) time and memory.
func NewDenseRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	m, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("NewDenseRows: row %d has %d entries, want %d: %w", i, len(row), c, ErrDimensionMismatch)
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// Identity returns the n×n identity matrix.
// Complexity: O(n²) memory, O(n) writes.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1.0
	}

	return m, nil
}

// Rows returns the number of rows in the matrix (0 once released).
// Complexity: O(1).
func (m *Dense) Rows() int {
	return m.r // return stored row count
}

// Cols returns the number of columns in the matrix (0 once released).
// Complexity: O(1).
func (m *Dense) Cols() int {
	return m.c // return stored column count
}

// Released reports whether the buffer has been handed off via Release.
func (m *Dense) Released() bool {
	return m.released
}

// indexOf computes the flat index for (row, col) or returns an error.
// Stage 1 (Validate): refuse released buffers, then check 0 ≤ row < r and 0 ≤ col < c.
// Stage 2 (Execute): compute and return linear index.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if m.released {
		return 0, denseErrorf(method, row, col, ErrReleased)
	}
	// Validate row index
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}
	// Validate column index
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	// Compute flat offset
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Stage 1 (Validate): bounds check via indexOf.
// Stage 2 (Execute): read from data slice.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	// Compute flat index or error
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	// Return stored value
	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Stage 1 (Validate): bounds check via indexOf.
// Stage 2 (Execute): write into data slice.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	// Compute flat index or error
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	// Assign value
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Cloning a released Dense yields another released Dense.
// Complexity: O(r*c) time and memory for copy.
func (m *Dense) Clone() Matrix {
	if m.released {
		return &Dense{released: true}
	}
	// Allocate new slice for data copy
	copyData := make([]float64, len(m.data))
	// Copy all elements into new slice
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// Release hands the backing buffer to the caller and ends this Dense's life
// as a readable matrix. The returned slice is row-major with the returned
// shape; afterwards every At/Set on m reports ErrReleased and Rows/Cols are 0.
// Releasing twice reports ErrReleased.
// Complexity: O(1); no copy is made.
func (m *Dense) Release() (data []float64, rows, cols int, err error) {
	if m.released {
		return nil, 0, 0, fmt.Errorf("Dense.Release: %w", ErrReleased)
	}
	data, rows, cols = m.data, m.r, m.c
	m.data, m.r, m.c, m.released = nil, 0, 0, true

	return data, rows, cols, nil
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c) for string construction.
func (m *Dense) String() string {
	if m.released {
		return "<released>"
	}
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ { // iterate over rows
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				sb.WriteString(", ") // separate values with comma
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
