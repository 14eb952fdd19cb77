// Package grid maps points onto a uniform hypercubic grid.
//
// A cell is identified by a Coord, the elementwise floor of the point
// coordinates divided by the cell side. Coords are turned into map keys with
// AppendKey so that sparse point clouds only pay for occupied cells.
//
// HalfStencil enumerates the neighbor offsets that must be visited from a
// cell so that every unordered pair of adjacent cells is seen exactly once.
package grid
