package celllist

import (
	"iter"
	"slices"

	"github.com/hupe1980/celllist/internal/grid"
)

// Coord identifies a grid cell: the elementwise floor of a point's
// coordinates divided by the cell size.
type Coord = grid.Coord

// CellOf returns the cell containing x for cell size r.
//
// Non-finite coordinates map to a boundary cell; such points only ever share
// a cell with other non-finite or extreme points.
func CellOf(x []float64, r float64) Coord {
	return grid.CellOf(nil, x, r)
}

// Store is a cell list: a mapping from occupied grid cells to the indices of
// the points inside them.
//
// The dimension and cell size are fixed when the store is created. A store
// returned by Build, BuildParallel, Merge or ReadStore is never mutated
// afterwards, so any number of goroutines may query it concurrently.
type Store struct {
	dim    int
	radius float64
	n      int

	cells map[string]*cell
	// order lists cells in first-insertion order. It fixes the iteration
	// order of queries so serial results are deterministic.
	order []*cell

	opts options
}

type cell struct {
	key     string
	coord   grid.Coord
	indices []int
}

// New returns an empty store of dimension d and cell size r.
func New(d int, r float64, opts ...Option) (*Store, error) {
	o := applyOptions(opts)
	if _, _, err := validate(emptyPoints(d), r, o.indexOffset); err != nil {
		return nil, err
	}
	return newStore(d, r, o), nil
}

func newStore(d int, r float64, o options) *Store {
	return &Store{
		dim:    d,
		radius: r,
		cells:  make(map[string]*cell),
		opts:   o,
	}
}

// Dim returns the dimensionality of the store.
func (s *Store) Dim() int { return s.dim }

// Radius returns the cell size the store was built with.
func (s *Store) Radius() float64 { return s.radius }

// Len returns the number of point indices held by the store.
func (s *Store) Len() int { return s.n }

// NumCells returns the number of occupied cells.
func (s *Store) NumCells() int { return len(s.order) }

// Cell returns a copy of the indices stored in cell c, or nil if c is empty.
func (s *Store) Cell(c Coord) []int {
	if len(c) != s.dim {
		return nil
	}
	cl, ok := s.cells[grid.Key(c)]
	if !ok {
		return nil
	}
	return slices.Clone(cl.indices)
}

// Cells iterates over the occupied cells in store order.
// The yielded slices belong to the store and must not be modified.
func (s *Store) Cells() iter.Seq2[Coord, []int] {
	return func(yield func(Coord, []int) bool) {
		for _, c := range s.order {
			if !yield(c.coord, c.indices) {
				return
			}
		}
	}
}

// Stats summarizes the occupancy of a store.
type Stats struct {
	Dimension   int
	Radius      float64
	Points      int
	Cells       int
	MaxPerCell  int
	MeanPerCell float64
}

// Stats returns occupancy statistics.
func (s *Store) Stats() Stats {
	st := Stats{
		Dimension: s.dim,
		Radius:    s.radius,
		Points:    s.n,
		Cells:     len(s.order),
	}
	for _, c := range s.order {
		st.MaxPerCell = max(st.MaxPerCell, len(c.indices))
	}
	if st.Cells > 0 {
		st.MeanPerCell = float64(st.Points) / float64(st.Cells)
	}
	return st
}

// insert appends idx to the cell at coord, creating the cell if needed.
// keyBuf is scratch space; the possibly grown buffer is returned.
func (s *Store) insert(keyBuf []byte, coord grid.Coord, idx int) []byte {
	keyBuf = grid.AppendKey(keyBuf[:0], coord)
	c, ok := s.cells[string(keyBuf)]
	if !ok {
		c = &cell{key: string(keyBuf), coord: coord.Clone()}
		s.cells[c.key] = c
		s.order = append(s.order, c)
	}
	c.indices = append(c.indices, idx)
	s.n++
	return keyBuf
}

// absorb appends every cell list of src to s. src is left untouched.
func (s *Store) absorb(src *Store) {
	for _, sc := range src.order {
		c, ok := s.cells[sc.key]
		if !ok {
			c = &cell{key: sc.key, coord: sc.coord}
			s.cells[c.key] = c
			s.order = append(s.order, c)
		}
		c.indices = append(c.indices, sc.indices...)
	}
	s.n += src.n
}

// clone returns a deep copy of s's cell lists.
func (s *Store) clone() *Store {
	out := &Store{
		dim:    s.dim,
		radius: s.radius,
		n:      s.n,
		cells:  make(map[string]*cell, len(s.cells)),
		order:  make([]*cell, 0, len(s.order)),
		opts:   s.opts,
	}
	for _, c := range s.order {
		cc := &cell{key: c.key, coord: c.coord, indices: slices.Clone(c.indices)}
		out.cells[cc.key] = cc
		out.order = append(out.order, cc)
	}
	return out
}

type emptyPoints int

func (e emptyPoints) Dims() (int, int)  { return 0, int(e) }
func (emptyPoints) At(int, int) float64 { panic("celllist: At on empty point set") }
