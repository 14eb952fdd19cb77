package celllist

import (
	"math"
)

// Points is a read-only n×d view of point coordinates.
//
// Row i holds the coordinates of the point with index i. *mat.Dense from
// gonum.org/v1/gonum/mat satisfies Points directly. BuildParallel reads from
// several goroutines at once, so implementations must allow concurrent At
// calls; the library never writes through a Points value and does not retain
// it after a build returns.
type Points interface {
	Dims() (n, d int)
	At(i, j int) float64
}

// Flat is a Points backed by a row-major []float64.
type Flat struct {
	data []float64
	dim  int
}

// FromFlat wraps row-major data with d coordinates per point.
//
// FromFlat(nil, d) is the empty point set of dimension d.
func FromFlat(data []float64, d int) (*Flat, error) {
	if d < 1 {
		return nil, invalidArgument("dimension must be positive, got %d", d)
	}
	if len(data)%d != 0 {
		return nil, invalidArgument("data length %d is not a multiple of dimension %d", len(data), d)
	}
	return &Flat{data: data, dim: d}, nil
}

// FromRows copies rows into a Flat. Every row must have the same, non-zero
// length. An empty rows slice is rejected because its dimension is unknown;
// use FromFlat(nil, d) instead.
func FromRows(rows [][]float64) (*Flat, error) {
	if len(rows) == 0 {
		return nil, invalidArgument("cannot infer dimension from zero rows")
	}
	d := len(rows[0])
	if d == 0 {
		return nil, invalidArgument("dimension must be positive, got 0")
	}
	data := make([]float64, 0, len(rows)*d)
	for i, row := range rows {
		if len(row) != d {
			return nil, invalidArgument("row %d has %d coordinates, expected %d", i, len(row), d)
		}
		data = append(data, row...)
	}
	return &Flat{data: data, dim: d}, nil
}

// Dims implements Points.
func (f *Flat) Dims() (n, d int) {
	return len(f.data) / f.dim, f.dim
}

// At implements Points.
func (f *Flat) At(i, j int) float64 {
	return f.data[i*f.dim+j]
}

// Row returns the coordinates of point i. The slice aliases f.
func (f *Flat) Row(i int) []float64 {
	return f.data[i*f.dim : (i+1)*f.dim]
}

// validate checks the build preconditions and returns the point set shape.
func validate(points Points, r float64, offset int) (n, d int, err error) {
	if points == nil {
		return 0, 0, invalidArgument("points must not be nil")
	}
	if !(r > 0) || math.IsInf(r, 1) {
		return 0, 0, invalidArgument("radius must be positive and finite, got %v", r)
	}
	if offset < 0 {
		return 0, 0, invalidArgument("index offset must not be negative, got %d", offset)
	}
	n, d = points.Dims()
	if d < 1 {
		return 0, 0, invalidArgument("dimension must be positive, got %d", d)
	}
	if n < 0 {
		return 0, 0, invalidArgument("point count must not be negative, got %d", n)
	}
	return n, d, nil
}

// readRow copies the coordinates of point i into dst.
func readRow(dst []float64, points Points, i int) []float64 {
	if f, ok := points.(*Flat); ok {
		return append(dst[:0], f.Row(i)...)
	}
	for j := range dst {
		dst[j] = points.At(i, j)
	}
	return dst
}
