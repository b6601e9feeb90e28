// Package exp reads and writes Melco EXP files.
//
// EXP has no header. A stitch is a pair of signed bytes (dx, -dy); the byte
// 0x80 escapes a control record of four bytes: 0x80, the control code and a
// move.
package exp

import (
	"bufio"
	"io"
	"math"

	"github.com/esimov/tambour"
	"github.com/esimov/tambour/format"
)

// MaxMove is the longest move a record holds on either axis.
const MaxMove = 127

// MaxStitches bounds the number of records a reader accepts.
const MaxStitches = 1_000_000

const (
	escape      = 0x80
	codeColor   = 0x01
	codeStitch  = 0x02
	codeJump    = 0x04
	codeTrim    = 0x80
	trimPayload = 0x07
)

func init() {
	format.MustRegister(format.Format{
		Name:        "exp",
		Description: "Melco expanded format",
		Extensions:  []string{".exp"},
		Settings:    tambour.EXPSettings(),
		Read:        Read,
		Write:       Write,
	})
}

// Read decodes an EXP stream into p.
func Read(r io.Reader, p *tambour.Pattern) error {
	br := bufio.NewReader(r)

	var (
		rec    [2]byte
		offset int64
	)
	next := func() (bool, error) {
		n, err := io.ReadFull(br, rec[:])
		switch err {
		case nil:
			offset += 2
			return true, nil
		case io.EOF:
			return false, nil
		case io.ErrUnexpectedEOF:
			return false, tambour.OffsetError(tambour.ErrTruncated, offset+int64(n), "odd trailing byte")
		}
		return false, err
	}

	for count := 0; ; count++ {
		ok, err := next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if count >= MaxStitches {
			return tambour.OffsetError(tambour.ErrCorrupt, offset-2, "more than %d records", MaxStitches)
		}
		if rec[0] != escape {
			p.Stitch(float64(int8(rec[0])), -float64(int8(rec[1])))
			continue
		}

		at := offset - 2
		code := rec[1]
		if ok, err = next(); err != nil {
			return err
		}
		if !ok {
			return tambour.OffsetError(tambour.ErrTruncated, offset, "control record without move")
		}
		dx, dy := float64(int8(rec[0])), -float64(int8(rec[1]))

		switch code {
		case codeTrim:
			p.Trim()
		case codeStitch:
			p.Stitch(dx, dy)
		case codeJump:
			p.Jump(dx, dy)
		case codeColor:
			p.ColorChange(0, 0)
			if dx != 0 || dy != 0 {
				p.Jump(dx, dy)
			}
		default:
			return tambour.OffsetError(tambour.ErrCorrupt, at, "control code %#02x", code)
		}
	}
	p.End()
	return nil
}

// Write encodes p, which should already be transcoded with EXPSettings.
// Moves are rounded to whole units; a move longer than 127 units fails
// with ErrRangeExceeded. Trims and color changes that move are preceded
// by a jump.
func Write(w io.Writer, p *tambour.Pattern) error {
	bw := bufio.NewWriter(w)

	var xx, yy float64
	for i, s := range p.Stitches() {
		dx := int(math.Round(s.X - xx))
		dy := int(math.Round(s.Y - yy))
		if abs(dx) > MaxMove || abs(dy) > MaxMove {
			return tambour.StitchError(tambour.ErrRangeExceeded, i, "move (%d, %d)", dx, dy)
		}
		move := []byte{byte(int8(dx)), byte(int8(-dy))}

		switch s.Action() {
		case tambour.STITCH:
			bw.Write(move)
		case tambour.JUMP, tambour.SEQUIN_EJECT:
			bw.Write([]byte{escape, codeJump})
			bw.Write(move)
		case tambour.TRIM, tambour.COLOR_CHANGE, tambour.STOP, tambour.NEEDLE_SET:
			if dx != 0 || dy != 0 {
				bw.Write([]byte{escape, codeJump})
				bw.Write(move)
			}
			if s.Action() == tambour.TRIM {
				bw.Write([]byte{escape, codeTrim, trimPayload, 0})
			} else {
				bw.Write([]byte{escape, codeColor, 0, 0})
			}
		default:
			// END and machine commands have no record; their movement, if
			// any, is carried by the next one.
			continue
		}
		xx += float64(dx)
		yy += float64(dy)
	}
	return bw.Flush()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
