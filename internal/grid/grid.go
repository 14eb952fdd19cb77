package grid

import (
	"encoding/binary"
	"math"
)

// MaxCoord bounds the magnitude of every Coord component.
//
// Components are clamped into [-MaxCoord, MaxCoord] so that adding a stencil
// offset can never overflow int64. Non-finite inputs land on the boundary.
const MaxCoord = math.MaxInt64 / 4

// Coord identifies a grid cell by its integer position along each axis.
type Coord []int64

// Clone returns a copy of c.
func (c Coord) Clone() Coord {
	if c == nil {
		return nil
	}
	out := make(Coord, len(c))
	copy(out, c)
	return out
}

// Equal reports whether c and o name the same cell.
func (c Coord) Equal(o Coord) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// CellOf writes the cell containing x into dst and returns it.
// dst is reallocated if it is too short; pass nil to allocate.
func CellOf(dst Coord, x []float64, r float64) Coord {
	if cap(dst) < len(x) {
		dst = make(Coord, len(x))
	}
	dst = dst[:len(x)]
	for i, v := range x {
		dst[i] = floorDiv(v, r)
	}
	return dst
}

func floorDiv(v, r float64) int64 {
	f := math.Floor(v / r)
	switch {
	case math.IsNaN(f):
		return MaxCoord
	case f >= MaxCoord:
		return MaxCoord
	case f <= -MaxCoord:
		return -MaxCoord
	}
	return int64(f)
}

// AppendKey appends the map key of c to dst.
//
// The key is the little-endian encoding of every component, so two Coords of
// the same dimension share a key iff they are equal.
func AppendKey(dst []byte, c Coord) []byte {
	for _, v := range c {
		dst = binary.LittleEndian.AppendUint64(dst, uint64(v))
	}
	return dst
}

// Key returns the map key of c.
func Key(c Coord) string {
	return string(AppendKey(make([]byte, 0, 8*len(c)), c))
}

// AppendNeighborKey appends the key of c+off to dst.
func AppendNeighborKey(dst []byte, c, off Coord) []byte {
	for i, v := range c {
		dst = binary.LittleEndian.AppendUint64(dst, uint64(v+off[i]))
	}
	return dst
}
