// Package celllist finds candidate near-neighbor pairs among points in
// d-dimensional Euclidean space using a uniform grid ("linked cells").
//
// Space is cut into hypercubes of side r. Two points closer than r always lie
// in the same cell or in adjacent cells, so checking only those cells turns an
// O(n²) all-pairs scan into O(n) work for near-uniform densities.
//
// # Quick Start
//
//	pts, _ := celllist.FromRows([][]float64{{0, 0}, {0.005, 0}, {0.5, 0.5}})
//	s, _ := celllist.Build(pts, 0.01)
//	for _, p := range s.NearNeighbors() {
//	    fmt.Println(p.I, p.J) // 0 1
//	}
//
// A *mat.Dense from gonum can be passed wherever Points is expected.
//
// # Parallelism
//
// BuildParallel splits the points into contiguous blocks, builds a private
// store per worker and merges them pairwise. PNearNeighbors splits the
// occupied cells across workers that read the shared store. Both produce the
// same pair set as their serial counterparts; only ordering differs.
//
//	s, _ := celllist.BuildParallel(ctx, pts, r, 0)  // 0 = GOMAXPROCS
//	pairs, _ := s.PNearNeighbors(ctx, 0)
//
// # Candidate Semantics
//
// The pair list is a superset of the pairs within distance r. Points in
// diagonally adjacent cells can be up to 2·r·sqrt(d) apart; callers that need
// exact neighbors filter by distance themselves.
//
// # Merging
//
// Merge combines two stores of equal dimension by concatenating their cell
// lists. Use WithIndexOffset to give independently built batches disjoint
// index ranges before merging them.
//
// # Snapshots
//
// A built store can be serialized with WriteTo and restored with ReadStore.
// Bodies may be compressed with LZ4 or Zstandard and are protected by a
// CRC32-C checksum.
package celllist
