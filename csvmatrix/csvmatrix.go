// SPDX-License-Identifier: MIT
// Package csvmatrix loads and writes square matrices as delimited text, one
// row per line.
//
// Purpose:
//   - Hand the determinant kernels a *matrix.Dense that already satisfies
//     their preconditions: rectangular, square, every entry finite.
//   - Produce test inputs: Write serializes any matrix, Random builds one
//     with uniform [0, 1) entries.
//
// Input format:
//   - Blank (or whitespace-only) lines are skipped; fields are trimmed.
//   - No header row; quoting follows encoding/csv rules.

package csvmatrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/detlog/matrix"
	"gonum.org/v1/gonum/stat/distuv"
)

// Load parses a square matrix from r.
//
// Implementation:
//   - Stage 1: read records with encoding/csv, skipping blank lines.
//   - Stage 2: parse each trimmed field as a float64; enforce rectangular
//     rows and the optional MaxDim as rows arrive. The buffer grows by
//     append, so memory tracks the input actually read.
//   - Stage 3: require rows == cols, pack into a row-major Dense and run
//     matrix.ValidateSquareFinite over it (NaN/±Inf → ErrNonFinite).
//
// Errors: ErrEmpty, ErrNotRectangular, ErrNotSquare, ErrNonNumeric,
// ErrNonFinite, ErrTooLarge (wrapped with position), or the reader's error.
// Complexity: O(n²) time and memory.
func Load(r io.Reader, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.FieldsPerRecord = -1 // ragged rows get a typed error below
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		data  []float64
		rows  int
		cols  = -1
		line  int
		field string
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvmatrix: %w", err)
		}
		line, _ = cr.FieldPos(0)
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		if cols < 0 {
			cols = len(record)
			if o.maxDim > 0 && cols > o.maxDim {
				return nil, positionErrorf(line, cols, ErrTooLarge, fmt.Sprintf("%d columns, limit %d", cols, o.maxDim))
			}
			// One row of capacity: the row count is unknown until EOF, and a
			// single wide line must not reserve cols² entries.
			data = make([]float64, 0, cols)
		}
		if len(record) != cols {
			return nil, positionErrorf(line, len(record), ErrNotRectangular,
				fmt.Sprintf("first row has %d entries, this row has %d", cols, len(record)))
		}
		rows++
		if rows > cols {
			return nil, positionErrorf(line, 1, ErrNotSquare, fmt.Sprintf("more than %d rows", cols))
		}

		for j := range record {
			field = strings.TrimSpace(record[j])
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, positionErrorf(line, j+1, ErrNonNumeric, strconv.Quote(field))
			}
			data = append(data, v)
		}
	}

	if rows == 0 {
		return nil, ErrEmpty
	}
	if rows != cols {
		return nil, fmt.Errorf("%w: %d x %d", ErrNotSquare, rows, cols)
	}

	m, err := matrix.NewDenseData(rows, cols, data)
	if err != nil {
		return nil, err
	}
	if err := matrix.ValidateSquareFinite(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNonFinite, err)
	}

	return m, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string, opts ...Option) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvmatrix: %w", err)
	}
	defer f.Close()

	m, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Write serializes m to w, one row per line, using the shortest
// round-trip representation of every value.
// Errors: ErrNilMatrix/ErrReleased from matrix, or the writer's error.
func Write(w io.Writer, m matrix.Matrix, opts ...Option) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("csvmatrix.Write: %w", err)
	}
	if err := matrix.ValidateLive(m); err != nil {
		return fmt.Errorf("csvmatrix.Write: %w", err)
	}
	o := gatherOptions(opts...)

	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter
	record := make([]string, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := range record {
			v, err := m.At(i, j)
			if err != nil {
				return fmt.Errorf("csvmatrix.Write: %w", err)
			}
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csvmatrix.Write: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// Random returns an n×n Dense with entries drawn from Uniform[0, 1),
// reproducible for a given seed.
// Errors: matrix.ErrInvalidDimensions for n <= 0.
// Complexity: O(n²).
func Random(n int, seed uint64) (*matrix.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("csvmatrix.Random: %w", matrix.ErrInvalidDimensions)
	}
	dist := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewPCG(seed, seed^0xda3e39cb94b95bdb)}
	data := make([]float64, n*n)
	for i := range data {
		data[i] = dist.Rand()
	}

	return matrix.NewDenseData(n, n, data)
}
