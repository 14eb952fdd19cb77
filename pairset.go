package celllist

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// PairSet is an order-insensitive set of pairs backed by a 64-bit Roaring
// bitmap. A pair {i, j} is stored as (min<<32 | max), so indices must fit in
// 32 bits.
//
// PairSet is useful for deduplicating candidate pairs from several queries or
// comparing the output of NearNeighbors and PNearNeighbors regardless of order.
// It is not safe for concurrent mutation.
type PairSet struct {
	rb *roaring64.Bitmap
}

// NewPairSet returns a set holding pairs.
func NewPairSet(pairs []Pair) (*PairSet, error) {
	ps := &PairSet{rb: roaring64.New()}
	for _, p := range pairs {
		if err := ps.Add(p.I, p.J); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

func encodePair(i, j int) (uint64, error) {
	if i < 0 || j < 0 || uint64(i) > math.MaxUint32 || uint64(j) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: pair (%d, %d) does not fit in 32-bit indices", ErrInvalidArgument, i, j)
	}
	p := makePair(i, j)
	return uint64(p.I)<<32 | uint64(p.J), nil
}

// Add inserts the unordered pair {i, j}.
func (ps *PairSet) Add(i, j int) error {
	v, err := encodePair(i, j)
	if err != nil {
		return err
	}
	ps.rb.Add(v)
	return nil
}

// Contains reports whether the unordered pair {i, j} is in the set.
func (ps *PairSet) Contains(i, j int) bool {
	v, err := encodePair(i, j)
	if err != nil {
		return false
	}
	return ps.rb.Contains(v)
}

// Len returns the number of distinct pairs.
func (ps *PairSet) Len() int {
	return int(ps.rb.GetCardinality())
}

// Equal reports whether ps and o hold the same pairs.
func (ps *PairSet) Equal(o *PairSet) bool {
	return ps.rb.Equals(o.rb)
}

// Difference returns the pairs in ps that are not in o.
func (ps *PairSet) Difference(o *PairSet) *PairSet {
	return &PairSet{rb: roaring64.AndNot(ps.rb, o.rb)}
}

// Pairs returns the pairs in ascending (I, J) order.
func (ps *PairSet) Pairs() []Pair {
	vals := ps.rb.ToArray()
	out := make([]Pair, len(vals))
	for k, v := range vals {
		out[k] = Pair{I: int(v >> 32), J: int(v & math.MaxUint32)}
	}
	return out
}
