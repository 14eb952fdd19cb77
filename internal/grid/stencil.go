package grid

// StencilSize returns the number of offsets HalfStencil(d) yields: (3^d - 1) / 2.
func StencilSize(d int) int {
	total := 1
	for range d {
		total *= 3
	}
	return (total - 1) / 2
}

// HalfStencil returns the canonical half of the non-zero offsets in {-1,0,1}^d.
//
// An offset is canonical when its first non-zero component is +1. For every
// non-zero offset o exactly one of o and -o is canonical, so visiting c+o for
// every occupied c and canonical o reaches each unordered pair of adjacent
// cells once.
//
// Offsets are returned in lexicographic order.
func HalfStencil(d int) []Coord {
	if d <= 0 {
		return nil
	}
	out := make([]Coord, 0, StencilSize(d))
	cur := make(Coord, d)
	for i := range cur {
		cur[i] = -1
	}
	for {
		if canonical(cur) {
			out = append(out, cur.Clone())
		}
		// Odometer increment over {-1,0,1}^d, last axis fastest.
		i := d - 1
		for i >= 0 && cur[i] == 1 {
			cur[i] = -1
			i--
		}
		if i < 0 {
			return out
		}
		cur[i]++
	}
}

func canonical(off Coord) bool {
	for _, v := range off {
		if v != 0 {
			return v > 0
		}
	}
	return false
}
