// Package ternary packs small signed deltas into fixed width byte groups
// using a balanced base three positional scheme. Each digit owns two bits,
// one adding and one subtracting its power of three, so a value is the sum
// of the contributions of all set bits.
package ternary

import (
	"github.com/esimov/tambour"
	"github.com/pkg/errors"
)

// ErrRangeExceeded is returned when a value does not fit a layout.
var ErrRangeExceeded = tambour.ErrRangeExceeded

// Digit locates the two bits of one power of three.
type Digit struct {
	Byte int   // index of the byte holding both bits
	Pos  uint8 // bit adding the power
	Neg  uint8 // bit subtracting the power
}

// Layout lists the digits from the least significant (1) upwards (3, 9, 27...).
type Layout []Digit

// DSTX is the Tajima bit assignment of the X delta in a 3 byte record.
var DSTX = Layout{
	{Byte: 0, Pos: 0, Neg: 1}, // 1
	{Byte: 1, Pos: 0, Neg: 1}, // 3
	{Byte: 0, Pos: 2, Neg: 3}, // 9
	{Byte: 1, Pos: 2, Neg: 3}, // 27
	{Byte: 2, Pos: 2, Neg: 3}, // 81
}

// DSTY is the Tajima bit assignment of the Y delta in a 3 byte record.
var DSTY = Layout{
	{Byte: 0, Pos: 7, Neg: 6},
	{Byte: 1, Pos: 7, Neg: 6},
	{Byte: 0, Pos: 5, Neg: 4},
	{Byte: 1, Pos: 5, Neg: 4},
	{Byte: 2, Pos: 5, Neg: 4},
}

// Max returns the largest magnitude n digits can represent, (3^n-1)/2.
func Max(digits int) int {
	p := 1
	for i := 0; i < digits; i++ {
		p *= 3
	}
	return (p - 1) / 2
}

// Max returns the largest magnitude the layout can represent.
func (l Layout) Max() int { return Max(len(l)) }

// Size returns the number of bytes the layout spans.
func (l Layout) Size() int {
	n := 0
	for _, d := range l {
		if d.Byte+1 > n {
			n = d.Byte + 1
		}
	}
	return n
}

// Encode ORs the balanced ternary representation of v into dst. Bits not
// owned by the layout are left untouched so that several layouts can share
// a record. It fails with ErrRangeExceeded when |v| exceeds l.Max().
func Encode(v int, l Layout, dst []byte) error {
	if v > l.Max() || v < -l.Max() {
		return errors.Wrapf(ErrRangeExceeded, "%d outside ±%d", v, l.Max())
	}
	if len(dst) < l.Size() {
		return errors.Errorf("ternary: need %d bytes, got %d", l.Size(), len(dst))
	}
	for _, d := range l {
		r := v % 3
		v /= 3
		switch r {
		case 1, -2:
			dst[d.Byte] |= 1 << d.Pos
			if r == -2 {
				v--
			}
		case 2, -1:
			dst[d.Byte] |= 1 << d.Neg
			if r == 2 {
				v++
			}
		}
	}
	return nil
}

// Decode returns the sum of the contributions of all set layout bits in src.
func Decode(src []byte, l Layout) int {
	v, p := 0, 1
	for _, d := range l {
		if d.Byte < len(src) {
			b := src[d.Byte]
			if b&(1<<d.Pos) != 0 {
				v += p
			}
			if b&(1<<d.Neg) != 0 {
				v -= p
			}
		}
		p *= 3
	}
	return v
}
