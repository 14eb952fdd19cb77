package celllist

import (
	"math"
	"testing"

	"github.com/hupe1980/celllist/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBuild(t *testing.T) {
	pts, err := FromRows([][]float64{{0, 0}, {0.005, 0}, {0.5, 0.5}})
	require.NoError(t, err)

	s, err := Build(pts, 0.01)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Dim())
	assert.Equal(t, 0.01, s.Radius())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.NumCells())
	assert.Equal(t, []int{0, 1}, s.Cell(Coord{0, 0}))
	assert.Equal(t, []int{2}, s.Cell(CellOf([]float64{0.5, 0.5}, 0.01)))
	assert.Nil(t, s.Cell(Coord{7, 7}))
	assert.Nil(t, s.Cell(Coord{0}))
}

func TestBuild_Empty(t *testing.T) {
	s, err := Build(mustFlat(t, nil, 3), 0.5)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Dim())
	assert.Zero(t, s.Len())
	assert.Zero(t, s.NumCells())
	assert.Empty(t, s.NearNeighbors())
}

func TestBuild_InvalidArgument(t *testing.T) {
	pts := mustFlat(t, []float64{0, 0, 1, 1}, 2)

	tests := []struct {
		name   string
		points Points
		r      float64
		opts   []Option
	}{
		{"zero radius", pts, 0, nil},
		{"negative radius", pts, -0.01, nil},
		{"NaN radius", pts, math.NaN(), nil},
		{"infinite radius", pts, math.Inf(1), nil},
		{"nil points", nil, 1, nil},
		{"zero dimension", emptyPoints(0), 1, nil},
		{"negative offset", pts, 1, []Option{WithIndexOffset(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(tt.points, tt.r, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, s)
		})
	}
}

func TestFromRows(t *testing.T) {
	_, err := FromRows(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromRows([][]float64{{}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	f, err := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	n, d := f.Dims()
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, d)
	assert.Equal(t, 4.0, f.At(1, 1))
	assert.Equal(t, []float64{5, 6}, f.Row(2))
}

func TestFromFlat(t *testing.T) {
	_, err := FromFlat([]float64{1, 2, 3}, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromFlat(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	f, err := FromFlat(nil, 4)
	require.NoError(t, err)
	n, d := f.Dims()
	assert.Zero(t, n)
	assert.Equal(t, 4, d)
}

func TestBuild_GonumMatrix(t *testing.T) {
	rng := testutil.NewRNG(3)
	data := rng.UniformPoints(200, 3)

	fromMat, err := Build(mat.NewDense(200, 3, data), 0.1)
	require.NoError(t, err)
	fromFlat := mustBuild(t, data, 3, 0.1)

	assert.Equal(t, cellSets(fromFlat), cellSets(fromMat))
}

// Every index lands in exactly one cell, the one its coordinates select.
func TestBuild_AssignsEachIndexOnce(t *testing.T) {
	rng := testutil.NewRNG(11)
	const n, d, r = 500, 3, 0.07
	data := rng.UniformRangePoints(n, d, -1, 1)
	s := mustBuild(t, data, d, r)

	require.Equal(t, n, s.Len())
	owner := make(map[int]struct{}, n)
	for c, idx := range s.Cells() {
		for _, i := range idx {
			_, dup := owner[i]
			require.False(t, dup, "index %d stored twice", i)
			owner[i] = struct{}{}
			assert.Equal(t, c, CellOf(data[i*d:(i+1)*d], r))
		}
	}
	assert.Len(t, owner, n)
}

func TestBuild_InsertionOrderIsDeterministic(t *testing.T) {
	data := []float64{0.1, 0.9, 0.2, 0.3, 0.95, 0.15}
	s := mustBuild(t, data, 1, 1)

	require.Equal(t, 1, s.NumCells())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, s.Cell(Coord{0}))

	again := mustBuild(t, data, 1, 1)
	assert.Equal(t, s.NearNeighbors(), again.NearNeighbors())
}

func TestBuild_IndexOffset(t *testing.T) {
	s := mustBuild(t, []float64{0, 0, 5, 5}, 2, 1, WithIndexOffset(10))

	assert.Equal(t, []int{10}, s.Cell(Coord{0, 0}))
	assert.Equal(t, []int{11}, s.Cell(Coord{5, 5}))
}

// Non-finite coordinates end up in boundary cells and leave finite cells alone.
func TestBuild_NonFiniteIsolated(t *testing.T) {
	data := []float64{
		0.5, 0.5,
		math.NaN(), 0.5,
		0.6, 0.5,
		math.Inf(-1), math.Inf(1),
	}
	s := mustBuild(t, data, 2, 1)

	assert.Equal(t, []int{0, 2}, s.Cell(Coord{0, 0}))
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []Pair{{0, 2}}, s.NearNeighbors())
}

func TestNew(t *testing.T) {
	s, err := New(2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Dim())
	assert.Zero(t, s.NumCells())

	_, err = New(0, 0.5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(2, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStore_Stats(t *testing.T) {
	s := mustBuild(t, []float64{0.1, 0.2, 0.3, 1.5, 2.5}, 1, 1)

	st := s.Stats()
	assert.Equal(t, Stats{
		Dimension:   1,
		Radius:      1,
		Points:      5,
		Cells:       3,
		MaxPerCell:  3,
		MeanPerCell: 5.0 / 3.0,
	}, st)
}

func TestStore_CellsStopsEarly(t *testing.T) {
	s := mustBuild(t, []float64{0, 10, 20, 30}, 1, 1)

	visited := 0
	for range s.Cells() {
		visited++
		if visited == 2 {
			break
		}
	}
	assert.Equal(t, 2, visited)
}
