// Package testutil provides testing utilities for celllist.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point clouds and computing the
// exact set of pairs within a radius by brute force.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	data := rng.UniformPoints(100, 2)          // row-major, uniform [0, 1)
//	data = rng.ClusteredPoints(1000, 3, 5, 0.01)
//
// # Ground Truth
//
//	pairs := testutil.BruteForcePairs(data, 2, 0.01)
package testutil
