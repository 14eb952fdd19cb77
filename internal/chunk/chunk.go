// Package chunk splits index ranges into balanced contiguous blocks for
// fork-join workers.
package chunk

// Range is the half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.End - r.Start }

// Split partitions [0, n) into at most parts contiguous ranges whose lengths
// differ by at most one. Empty ranges are never returned, so the result has
// min(n, parts) elements. parts < 1 is treated as 1.
func Split(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	size, rem := n/parts, n%parts
	out := make([]Range, parts)
	start := 0
	for i := range out {
		end := start + size
		if i < rem {
			end++
		}
		out[i] = Range{Start: start, End: end}
		start = end
	}
	return out
}
