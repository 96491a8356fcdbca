package matrixio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrInvalidDimensions indicates a non-positive NPaps or NRevs, or a Flows
// slice whose length does not equal NPaps*NRevs.
var ErrInvalidDimensions = errors.New("matrixio: dimensions must be > 0 and match len(Flows)")

// ErrIndexOutOfBounds indicates an out-of-range paper or reviewer index.
var ErrIndexOutOfBounds = errors.New("matrixio: index out of bounds")

// matrixErrorf wraps an underlying error with Matrix method context,
// matching matrix.Dense's denseErrorf convention.
func matrixErrorf(method string, paper, reviewer int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, paper, reviewer, err)
}

// Matrix is the row-major, paper-major flows buffer bvnround.Round expects:
// Flows[p*NRevs+r] is the fractional (or, post-round, integral) assignment
// of reviewer r to paper p, both 0-indexed.
type Matrix struct {
	NPaps int       `json:"npaps"`
	NRevs int       `json:"nrevs"`
	Flows []float64 `json:"flows"`
}

// NewMatrix allocates an npaps x nrevs Matrix initialized to zero.
// Stage 1 (Validate): ensure both dimensions are positive.
// Stage 2 (Prepare): allocate the flat backing slice.
func NewMatrix(npaps, nrevs int) (*Matrix, error) {
	if npaps <= 0 || nrevs <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Matrix{NPaps: npaps, NRevs: nrevs, Flows: make([]float64, npaps*nrevs)}, nil
}

func (m *Matrix) indexOf(method string, paper, reviewer int) (int, error) {
	if paper < 0 || paper >= m.NPaps {
		return 0, matrixErrorf(method, paper, reviewer, ErrIndexOutOfBounds)
	}
	if reviewer < 0 || reviewer >= m.NRevs {
		return 0, matrixErrorf(method, paper, reviewer, ErrIndexOutOfBounds)
	}
	return paper*m.NRevs + reviewer, nil
}

// At retrieves the fractional or integral value assigned to (paper, reviewer).
func (m *Matrix) At(paper, reviewer int) (float64, error) {
	idx, err := m.indexOf("At", paper, reviewer)
	if err != nil {
		return 0, err
	}
	return m.Flows[idx], nil
}

// Set assigns v at (paper, reviewer).
func (m *Matrix) Set(paper, reviewer int, v float64) error {
	idx, err := m.indexOf("Set", paper, reviewer)
	if err != nil {
		return err
	}
	m.Flows[idx] = v
	return nil
}

// validate checks that NPaps, NRevs, and len(Flows) are mutually consistent.
func (m *Matrix) validate() error {
	if m.NPaps <= 0 || m.NRevs <= 0 || len(m.Flows) != m.NPaps*m.NRevs {
		return ErrInvalidDimensions
	}
	return nil
}

// ReadDense decodes a JSON document {"npaps":..,"nrevs":..,"flows":[...]}
// into a Matrix ready for bvnround.Round.
func ReadDense(r io.Reader) (*Matrix, error) {
	var m Matrix
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("matrixio: decode dense: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// WriteDense encodes m as the inverse of ReadDense.
func WriteDense(w io.Writer, m *Matrix) error {
	if err := m.validate(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("matrixio: encode dense: %w", err)
	}
	return nil
}

// ReadSubsets decodes a JSON array of strictly positive institution labels.
func ReadSubsets(r io.Reader) ([]int, error) {
	var subsets []int
	if err := json.NewDecoder(r).Decode(&subsets); err != nil {
		return nil, fmt.Errorf("matrixio: decode subsets: %w", err)
	}
	return subsets, nil
}

// WriteSubsets encodes subsets as the inverse of ReadSubsets.
func WriteSubsets(w io.Writer, subsets []int) error {
	if err := json.NewEncoder(w).Encode(subsets); err != nil {
		return fmt.Errorf("matrixio: encode subsets: %w", err)
	}
	return nil
}

// ReadDenseCSV decodes a CSV document, one row per paper and one column per
// reviewer, into a Matrix. This is the flat file format a reviewer might
// hand-edit in a spreadsheet before invoking the CLI driver.
func ReadDenseCSV(r io.Reader) (*Matrix, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("matrixio: decode dense csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrInvalidDimensions
	}

	npaps, nrevs := len(rows), len(rows[0])
	m, err := NewMatrix(npaps, nrevs)
	if err != nil {
		return nil, err
	}

	for p, row := range rows {
		if len(row) != nrevs {
			return nil, fmt.Errorf("matrixio: row %d has %d columns, want %d: %w", p, len(row), nrevs, ErrInvalidDimensions)
		}
		for r, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("matrixio: parse cell (%d,%d): %w", p, r, err)
			}
			if err := m.Set(p, r, v); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// WriteDenseCSV encodes m as the inverse of ReadDenseCSV.
func WriteDenseCSV(w io.Writer, m *Matrix) error {
	if err := m.validate(); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	for p := 0; p < m.NPaps; p++ {
		row := make([]string, m.NRevs)
		for r := 0; r < m.NRevs; r++ {
			v, err := m.At(p, r)
			if err != nil {
				return err
			}
			row[r] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("matrixio: write dense csv row %d: %w", p, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
