package huffman

import (
	"bytes"
	"encoding/binary"

	"github.com/esimov/tambour"
	"github.com/pkg/errors"
)

// Container layout:
//
//	"HC" version:u8 streams:u8
//	per stream: symbols:uvarint lengths:[128]u8 size:uvarint payload:[size]u8
//
// The 256 code lengths are packed two per byte, even symbols in the high
// nibble.
const (
	magic    = "HC"
	version  = 1
	alphabet = 256
	tableLen = alphabet / 2
)

// MaxStreams is the largest number of streams a container can hold.
const MaxStreams = 255

// Compress encodes every stream with its own canonical code and returns
// the container bytes.
func Compress(streams [][]byte) ([]byte, error) {
	if len(streams) > MaxStreams {
		return nil, errors.Errorf("huffman: %d streams, at most %d", len(streams), MaxStreams)
	}
	var out bytes.Buffer
	out.WriteString(magic)
	out.WriteByte(version)
	out.WriteByte(byte(len(streams)))

	var tmp [binary.MaxVarintLen64]byte
	for i, s := range streams {
		freq := make([]int, alphabet)
		for _, b := range s {
			freq[b]++
		}
		lengths, err := BuildLengths(freq, MaxBits)
		if err != nil {
			return nil, errors.Wrapf(err, "stream %d", i)
		}
		code, err := NewCode(lengths)
		if err != nil {
			return nil, errors.Wrapf(err, "stream %d", i)
		}

		w := &BitWriter{}
		for _, b := range s {
			if err := code.Encode(w, int(b)); err != nil {
				return nil, err
			}
		}
		payload := w.Bytes()

		out.Write(tmp[:binary.PutUvarint(tmp[:], uint64(len(s)))])
		for k := 0; k < alphabet; k += 2 {
			out.WriteByte(lengths[k]<<4 | lengths[k+1])
		}
		out.Write(tmp[:binary.PutUvarint(tmp[:], uint64(len(payload)))])
		out.Write(payload)
	}
	return out.Bytes(), nil
}

// Decompress parses a container produced by Compress. Each stream decodes
// exactly its declared number of symbols from its own payload. Short input
// fails with ErrTruncated, inconsistent input with ErrCorrupt.
func Decompress(data []byte) ([][]byte, error) {
	d := decoder{data: data}

	head, err := d.take(len(magic) + 2)
	if err != nil {
		return nil, err
	}
	if string(head[:2]) != magic {
		return nil, tambour.OffsetError(ErrCorrupt, 0, "bad magic %q", head[:2])
	}
	if head[2] != version {
		return nil, tambour.OffsetError(ErrCorrupt, 2, "unsupported version %d", head[2])
	}

	streams := make([][]byte, head[3])
	for i := range streams {
		s, err := d.stream()
		if err != nil {
			return nil, errors.Wrapf(err, "stream %d", i)
		}
		streams[i] = s
	}
	if d.pos != len(data) {
		return nil, tambour.OffsetError(ErrCorrupt, int64(d.pos), "%d trailing bytes", len(data)-d.pos)
	}
	return streams, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || n > len(d.data)-d.pos {
		return nil, tambour.OffsetError(ErrTruncated, int64(d.pos), "need %d bytes, have %d", n, len(d.data)-d.pos)
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) uvarint() (uint64, error) {
	v, n := binary.Uvarint(d.data[d.pos:])
	switch {
	case n == 0:
		return 0, tambour.OffsetError(ErrTruncated, int64(d.pos), "varint")
	case n < 0:
		return 0, tambour.OffsetError(ErrCorrupt, int64(d.pos), "varint overflow")
	}
	d.pos += n
	return v, nil
}

func (d *decoder) stream() ([]byte, error) {
	start := int64(d.pos)
	symbols, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	table, err := d.take(tableLen)
	if err != nil {
		return nil, err
	}
	lengths := make([]uint8, alphabet)
	for k, b := range table {
		lengths[2*k] = b >> 4
		lengths[2*k+1] = b & 0x0F
	}
	code, err := NewCode(lengths)
	if err != nil {
		return nil, tambour.OffsetError(ErrCorrupt, start, "%v", err)
	}

	size, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	if size > uint64(len(d.data)-d.pos) {
		return nil, tambour.OffsetError(ErrTruncated, int64(d.pos), "payload of %d bytes", size)
	}
	base := int64(d.pos)
	payload, _ := d.take(int(size))

	if symbols == 0 {
		return []byte{}, nil
	}
	if code.Empty() {
		return nil, tambour.OffsetError(ErrCorrupt, start, "%d symbols without a code table", symbols)
	}
	// Every code is at least one bit long.
	if symbols > size*8 {
		return nil, tambour.OffsetError(ErrTruncated, base, "%d symbols in %d bytes", symbols, size)
	}

	out := make([]byte, symbols)
	r := NewBitReader(payload, base)
	for i := range out {
		s, err := code.Decode(r)
		if err != nil {
			return nil, err
		}
		out[i] = byte(s)
	}
	return out, nil
}
