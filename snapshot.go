package celllist

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"math"

	"github.com/hupe1980/celllist/internal/compress"
	"github.com/hupe1980/celllist/internal/grid"
)

// Compression selects how a snapshot body is compressed.
type Compression uint8

const (
	// CompressionNone stores the body verbatim.
	CompressionNone = Compression(compress.None)
	// CompressionLZ4 favors encode/decode speed.
	CompressionLZ4 = Compression(compress.LZ4)
	// CompressionZSTD favors size.
	CompressionZSTD = Compression(compress.ZSTD)
)

func (c Compression) String() string { return compress.Type(c).String() }

// Snapshot layout (little endian):
//
//	magic "CLST" | version u8 | compression u8 | reserved u16 | dim u32 |
//	radius f64 | points u64 | cells u64 | blockLen u64 | block | crc32c u32
//
// The block is a compress frame holding, per cell in store order, d zigzag
// varint coordinates, a uvarint count and count uvarint indices. The CRC
// covers everything before it.
const (
	snapshotVersion    = 1
	snapshotHeaderSize = 44
	snapshotTrailer    = 4
)

var (
	snapshotMagic = [4]byte{'C', 'L', 'S', 'T'}
	crc32cTable   = crc32.MakeTable(crc32.Castagnoli)
)

func crc32cChecksum(b []byte) uint32 {
	return crc32.Checksum(b, crc32cTable)
}

// WriteTo writes a snapshot of s to w. It implements io.WriterTo.
// The body is compressed as configured by WithCompression.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	ctx := context.Background()
	buf, err := s.encodeSnapshot()
	if err != nil {
		s.opts.logger.LogSnapshot(ctx, "write", 0, err)
		return 0, err
	}
	n, err := w.Write(buf)
	s.opts.logger.LogSnapshot(ctx, "write", int64(n), err)
	return int64(n), err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Store) MarshalBinary() ([]byte, error) {
	return s.encodeSnapshot()
}

func (s *Store) encodeSnapshot() ([]byte, error) {
	if uint64(s.dim) > math.MaxUint32 {
		return nil, invalidArgument("dimension %d does not fit a snapshot", s.dim)
	}

	body := make([]byte, 0, len(s.order)*(s.dim+1)*2+s.n*3)
	for _, c := range s.order {
		for _, v := range c.coord {
			body = binary.AppendVarint(body, v)
		}
		body = binary.AppendUvarint(body, uint64(len(c.indices)))
		for _, idx := range c.indices {
			body = binary.AppendUvarint(body, uint64(idx))
		}
	}

	block, err := compress.Encode(body, compress.Type(s.opts.compression))
	if err != nil {
		return nil, err
	}

	out := make([]byte, snapshotHeaderSize, snapshotHeaderSize+len(block)+snapshotTrailer)
	copy(out[0:4], snapshotMagic[:])
	out[4] = snapshotVersion
	out[5] = byte(s.opts.compression)
	binary.LittleEndian.PutUint32(out[8:], uint32(s.dim))
	binary.LittleEndian.PutUint64(out[12:], math.Float64bits(s.radius))
	binary.LittleEndian.PutUint64(out[20:], uint64(s.n))
	binary.LittleEndian.PutUint64(out[28:], uint64(len(s.order)))
	binary.LittleEndian.PutUint64(out[36:], uint64(len(block)))
	out = append(out, block...)
	out = binary.LittleEndian.AppendUint32(out, crc32cChecksum(out))
	return out, nil
}

// ReadStore reads a snapshot written by (*Store).WriteTo.
//
// The returned store uses opts for logging, metrics and future snapshots.
// Any inconsistency in the input is reported as ErrCorrupt. Indices repeated
// across cells, as produced by merging overlapping stores, are preserved.
func ReadStore(r io.Reader, opts ...Option) (*Store, error) {
	ctx := context.Background()
	o := applyOptions(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		o.logger.LogSnapshot(ctx, "read", int64(len(data)), err)
		return nil, err
	}
	s, err := decodeSnapshot(data, o)
	o.logger.LogSnapshot(ctx, "read", int64(len(data)), err)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UnmarshalStore decodes a snapshot produced by MarshalBinary.
func UnmarshalStore(data []byte, opts ...Option) (*Store, error) {
	return ReadStore(bytes.NewReader(data), opts...)
}

func decodeSnapshot(data []byte, o options) (*Store, error) {
	if len(data) < snapshotHeaderSize+snapshotTrailer {
		return nil, corrupt("%d bytes is shorter than the header", len(data))
	}
	if !bytes.Equal(data[0:4], snapshotMagic[:]) {
		return nil, corrupt("bad magic %q", data[0:4])
	}
	if data[4] != snapshotVersion {
		return nil, corrupt("unsupported version %d", data[4])
	}

	payload, trailer := data[:len(data)-snapshotTrailer], data[len(data)-snapshotTrailer:]
	if got, want := crc32cChecksum(payload), binary.LittleEndian.Uint32(trailer); got != want {
		return nil, corrupt("checksum mismatch: got %08x, want %08x", got, want)
	}

	comp := compress.Type(data[5])
	if !comp.Valid() {
		return nil, corrupt("unknown compression %d", data[5])
	}
	dim := binary.LittleEndian.Uint32(data[8:])
	radius := math.Float64frombits(binary.LittleEndian.Uint64(data[12:]))
	points := binary.LittleEndian.Uint64(data[20:])
	cells := binary.LittleEndian.Uint64(data[28:])
	blockLen := binary.LittleEndian.Uint64(data[36:])

	if dim == 0 || uint64(dim) > math.MaxInt32 {
		return nil, corrupt("invalid dimension %d", dim)
	}
	if !(radius > 0) || math.IsInf(radius, 1) {
		return nil, corrupt("invalid radius %v", radius)
	}
	if blockLen != uint64(len(payload)-snapshotHeaderSize) {
		return nil, corrupt("block length %d does not match %d payload bytes", blockLen, len(payload)-snapshotHeaderSize)
	}
	if cells > points || points > math.MaxInt {
		return nil, corrupt("inconsistent counts: %d cells for %d points", cells, points)
	}

	body, err := compress.Decode(payload[snapshotHeaderSize:], comp)
	if err != nil {
		if errors.Is(err, compress.ErrCorrupt) {
			return nil, corrupt("%v", err)
		}
		return nil, err
	}

	s := newStore(int(dim), radius, o)
	d := s.dim
	coord := make(grid.Coord, d)
	keyBuf := make([]byte, 0, 8*d)

	for c := uint64(0); c < cells; c++ {
		for j := range coord {
			v, n := binary.Varint(body)
			if n <= 0 || v > grid.MaxCoord || v < -grid.MaxCoord {
				return nil, corrupt("cell %d: bad coordinate", c)
			}
			coord[j] = v
			body = body[n:]
		}
		count, n := binary.Uvarint(body)
		if n <= 0 || count == 0 || count > points {
			return nil, corrupt("cell %d: bad index count", c)
		}
		body = body[n:]

		keyBuf = grid.AppendKey(keyBuf[:0], coord)
		if _, dup := s.cells[string(keyBuf)]; dup {
			return nil, corrupt("cell %d: duplicate coordinate %v", c, coord)
		}
		for k := uint64(0); k < count; k++ {
			idx, n := binary.Uvarint(body)
			if n <= 0 || idx > math.MaxInt {
				return nil, corrupt("cell %d: bad index", c)
			}
			body = body[n:]
			keyBuf = s.insert(keyBuf, coord, int(idx))
		}
	}

	if len(body) != 0 {
		return nil, corrupt("%d trailing body bytes", len(body))
	}
	if uint64(s.n) != points {
		return nil, corrupt("found %d indices, header says %d", s.n, points)
	}
	return s, nil
}
