package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellOf(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		r    float64
		want Coord
	}{
		{"origin", []float64{0, 0}, 0.01, Coord{0, 0}},
		{"inside first cell", []float64{0.005, 0.0099}, 0.01, Coord{0, 0}},
		{"negative floors down", []float64{-0.001, -1.5}, 1, Coord{-1, -2}},
		{"boundary belongs to upper cell", []float64{2, 3}, 1, Coord{2, 3}},
		{"one dimension", []float64{7.9}, 2, Coord{3}},
		{"four dimensions", []float64{0.5, 1.5, 2.5, -0.5}, 1, Coord{0, 1, 2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellOf(nil, tt.x, tt.r))
		})
	}
}

func TestCellOf_ReusesBuffer(t *testing.T) {
	buf := make(Coord, 0, 3)
	got := CellOf(buf, []float64{1, 2, 3}, 1)
	require.Len(t, got, 3)
	assert.Same(t, &buf[:1][0], &got[0])
}

func TestCellOf_NonFinite(t *testing.T) {
	got := CellOf(nil, []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300}, 1e-300)
	assert.Equal(t, Coord{MaxCoord, MaxCoord, -MaxCoord, MaxCoord}, got)

	// Stepping off the clamped boundary must not wrap around.
	key := AppendNeighborKey(nil, got, Coord{1, 1, -1, 1})
	assert.NotEqual(t, Key(Coord{-MaxCoord, -MaxCoord, MaxCoord, -MaxCoord}), string(key))
}

func TestKey(t *testing.T) {
	a := Key(Coord{1, -2, 3})
	b := Key(Coord{1, -2, 3})
	c := Key(Coord{1, -2, 4})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 24)
	assert.NotEqual(t, Key(Coord{0, 1}), Key(Coord{1, 0}))
}

func TestAppendNeighborKey(t *testing.T) {
	c := Coord{4, -7}
	off := Coord{1, -1}
	assert.Equal(t, Key(Coord{5, -8}), string(AppendNeighborKey(nil, c, off)))
}

func TestCoord_CloneEqual(t *testing.T) {
	c := Coord{1, 2}
	d := c.Clone()
	d[0] = 9

	assert.Equal(t, int64(1), c[0])
	assert.False(t, c.Equal(d))
	assert.True(t, c.Equal(Coord{1, 2}))
	assert.False(t, c.Equal(Coord{1, 2, 0}))
	assert.Nil(t, Coord(nil).Clone())
}
