package matrixio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revpap/bvnround/matrixio"
)

func TestNewMatrixValidation(t *testing.T) {
	_, err := matrixio.NewMatrix(0, 2)
	require.ErrorIs(t, err, matrixio.ErrInvalidDimensions)

	m, err := matrixio.NewMatrix(2, 3)
	require.NoError(t, err)
	require.Equal(t, 6, len(m.Flows))
}

func TestMatrixAtSetBounds(t *testing.T) {
	m, err := matrixio.NewMatrix(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(0, 1, 0.5))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0.5, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrixio.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(0, -1, 1), matrixio.ErrIndexOutOfBounds)
}

func TestDenseJSONRoundTrip(t *testing.T) {
	m := &matrixio.Matrix{NPaps: 1, NRevs: 2, Flows: []float64{0.3, 0.7}}

	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteDense(&buf, m))

	got, err := matrixio.ReadDense(&buf)
	require.NoError(t, err)
	require.Equal(t, m.NPaps, got.NPaps)
	require.Equal(t, m.NRevs, got.NRevs)
	require.Equal(t, m.Flows, got.Flows)
}

func TestReadDenseRejectsShapeMismatch(t *testing.T) {
	r := strings.NewReader(`{"npaps":2,"nrevs":2,"flows":[0.5]}`)
	_, err := matrixio.ReadDense(r)
	require.ErrorIs(t, err, matrixio.ErrInvalidDimensions)
}

func TestSubsetsJSONRoundTrip(t *testing.T) {
	subsets := []int{1, 1, 2, 2}

	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteSubsets(&buf, subsets))

	got, err := matrixio.ReadSubsets(&buf)
	require.NoError(t, err)
	require.Equal(t, subsets, got)
}

func TestDenseCSVRoundTrip(t *testing.T) {
	m := &matrixio.Matrix{NPaps: 2, NRevs: 2, Flows: []float64{0.5, 0.5, 1, 0}}

	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteDenseCSV(&buf, m))

	got, err := matrixio.ReadDenseCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, m.NPaps, got.NPaps)
	require.Equal(t, m.NRevs, got.NRevs)
	require.Equal(t, m.Flows, got.Flows)
}

func TestReadDenseCSVRejectsRaggedRows(t *testing.T) {
	r := strings.NewReader("0.5,0.5\n1\n")
	_, err := matrixio.ReadDenseCSV(r)
	require.Error(t, err)
}
