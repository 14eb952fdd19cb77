// Package compress implements the block compression used by store snapshots.
//
// A block is framed as [uncompressedSize uint32][compressedSize uint32][data].
// compressedSize == 0 marks a block stored verbatim, which is also what
// Encode falls back to when compression does not pay off.
package compress
