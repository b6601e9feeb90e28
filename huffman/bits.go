package huffman

import "github.com/esimov/tambour"

// BitWriter packs bits most significant first.
type BitWriter struct {
	buf   []byte
	acc   byte
	nbits uint8
}

// WriteBits appends the low n bits of v, highest first.
func (w *BitWriter) WriteBits(v uint32, n uint8) {
	for i := int(n) - 1; i >= 0; i-- {
		w.acc = w.acc<<1 | byte(v>>uint(i)&1)
		w.nbits++
		if w.nbits == 8 {
			w.buf = append(w.buf, w.acc)
			w.acc, w.nbits = 0, 0
		}
	}
}

// Bytes flushes a partial byte, padded with zero bits, and returns the output.
func (w *BitWriter) Bytes() []byte {
	if w.nbits > 0 {
		w.buf = append(w.buf, w.acc<<(8-w.nbits))
		w.acc, w.nbits = 0, 0
	}
	return w.buf
}

// BitReader reads bits most significant first from a byte slice. It never
// reads past the end of the slice.
type BitReader struct {
	src  []byte
	pos  int
	bit  uint8
	base int64
}

// NewBitReader returns a reader over src. base is added to the offsets
// reported in errors.
func NewBitReader(src []byte, base int64) *BitReader {
	return &BitReader{src: src, base: base}
}

// ReadBit returns the next bit or ErrTruncated at the end of the input.
func (r *BitReader) ReadBit() (uint, error) {
	if r.pos >= len(r.src) {
		return 0, tambour.OffsetError(ErrTruncated, r.Offset(), "bit stream exhausted")
	}
	b := uint(r.src[r.pos]>>(7-r.bit)) & 1
	r.bit++
	if r.bit == 8 {
		r.bit = 0
		r.pos++
	}
	return b, nil
}

// Offset returns the absolute byte offset of the next bit.
func (r *BitReader) Offset() int64 {
	return r.base + int64(r.pos)
}
