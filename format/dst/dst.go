// Package dst reads and writes Tajima DST files.
//
// A DST file is a 512 byte text header followed by 3 byte records. Each
// record carries a relative move of at most 121 units per axis, encoded in
// balanced ternary, and the control bits of byte 2. Y grows upwards in the
// file, so it is negated on the way in and out. DST has no trim command:
// trims are written as a short run of jumps returning to the same point and
// recovered on read from runs of three jumps.
package dst

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/esimov/tambour"
	"github.com/esimov/tambour/format"
	"github.com/esimov/tambour/ternary"
	"github.com/pkg/errors"
)

const (
	// HeaderSize is the fixed size of the text header.
	HeaderSize = 512
	// MaxStitches bounds the number of records a reader accepts.
	MaxStitches = 1_000_000

	recordSize = 3
	trimAt     = 3
)

// Control values of byte 2. Bits 0 and 1 are set in every record.
const (
	ctrlStitch = 0x03
	ctrlJump   = 0x83
	ctrlColor  = 0xC3
	ctrlSequin = 0x43
	ctrlEnd    = 0xF3
)

func init() {
	format.MustRegister(format.Format{
		Name:        "dst",
		Description: "Tajima embroidery format",
		Extensions:  []string{".dst"},
		Settings:    tambour.DSTSettings(),
		Read:        Read,
		Write:       Write,
	})
}

// Read decodes a DST stream into p. Header fields LA, AU and CP become the
// title, author and copyright, TC lines become threads.
func Read(r io.Reader, p *tambour.Pattern) error {
	header := make([]byte, HeaderSize)
	if n, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return tambour.OffsetError(tambour.ErrTruncated, int64(n), "header of %d bytes", HeaderSize)
		}
		return err
	}
	if err := readHeader(header, p); err != nil {
		return err
	}

	var (
		rec    [recordSize]byte
		sequin bool
		offset = int64(HeaderSize)
	)
	for count := 0; ; count++ {
		n, err := io.ReadFull(r, rec[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return tambour.OffsetError(tambour.ErrTruncated, offset+int64(n), "partial record")
		}
		if err != nil {
			return err
		}
		if count >= MaxStitches {
			return tambour.OffsetError(tambour.ErrCorrupt, offset, "more than %d records", MaxStitches)
		}
		offset += recordSize

		dx := float64(ternary.Decode(rec[:], ternary.DSTX))
		dy := -float64(ternary.Decode(rec[:], ternary.DSTY))

		ctrl := rec[2]
		switch {
		case ctrl&ctrlEnd == ctrlEnd:
			return finish(p)
		case ctrl&ctrlColor == ctrlColor:
			p.ColorChange(dx, dy)
		case ctrl&ctrlSequin == ctrlSequin:
			p.AddStitchRelative(dx, dy, tambour.SEQUIN_MODE)
			sequin = !sequin
		case ctrl&ctrlJump == ctrlJump:
			if sequin {
				p.AddStitchRelative(dx, dy, tambour.SEQUIN_EJECT)
			} else {
				p.Jump(dx, dy)
			}
		default:
			p.Stitch(dx, dy)
		}
	}
	return finish(p)
}

func finish(p *tambour.Pattern) error {
	p.End()
	p.InterpolateTrims(trimAt, 0)
	// the header holds only the TC lines that fit
	p.FixColorCount()
	return nil
}

// header keys computed by the writer and dropped on read.
var computed = map[string]bool{
	"ST": true, "CO": true,
	"+X": true, "-X": true, "+Y": true, "-Y": true,
	"AX": true, "AY": true, "MX": true, "MY": true,
	"PD": true,
}

func readHeader(header []byte, p *tambour.Pattern) error {
	if !bytes.Contains(header[:32], []byte("LA:")) &&
		!bytes.Contains(header[:32], []byte("ST:")) &&
		!bytes.Contains(header[:32], []byte("CO:")) {
		printable := 0
		for _, b := range header[:32] {
			if (b >= 32 && b < 127) || b == 0 || b == '\r' || b == '\n' {
				printable++
			}
		}
		if printable < 24 {
			return tambour.OffsetError(tambour.ErrCorrupt, 0, "not a DST header")
		}
	}
	if i := bytes.IndexByte(header, 0x1A); i >= 0 {
		header = header[:i]
	}

	lines := strings.FieldsFunc(string(header), func(r rune) bool {
		return r == '\r' || r == '\n'
	})
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= 3 || line[2] != ':' {
			continue
		}
		key, value := strings.TrimSpace(line[:2]), strings.TrimSpace(line[3:])
		switch {
		case key == "LA":
			p.SetTitle(value)
		case key == "AU":
			p.SetAuthor(value)
		case key == "CP":
			p.SetCopyright(value)
		case key == "TC":
			p.AddThread(parseThread(value))
		case !computed[key]:
			p.SetMetadata(key, value)
		}
	}
	return nil
}

// parseThread reads "color,description,catalog". Unknown colors fall back
// to black.
func parseThread(s string) tambour.Thread {
	parts := strings.Split(s, ",")
	t, err := tambour.ThreadFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		t = tambour.NewThread(0)
	}
	if len(parts) > 1 {
		t.Description = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		t.CatalogNumber = strings.TrimSpace(parts[2])
	}
	return t
}

// Write encodes p, which should already be transcoded with DSTSettings.
// Moves are rounded to whole units; a move longer than 121 units fails
// with ErrRangeExceeded.
func Write(w io.Writer, p *tambour.Pattern) error {
	var (
		body    bytes.Buffer
		records int
		xx, yy  float64
	)
	put := func(i int, dx, dy int, ctrl byte) error {
		var rec [recordSize]byte
		rec[2] = ctrl
		if err := ternary.Encode(dx, ternary.DSTX, rec[:]); err != nil {
			return tambour.StitchError(tambour.ErrRangeExceeded, i, "x move %d", dx)
		}
		if err := ternary.Encode(-dy, ternary.DSTY, rec[:]); err != nil {
			return tambour.StitchError(tambour.ErrRangeExceeded, i, "y move %d", dy)
		}
		body.Write(rec[:])
		records++
		return nil
	}

	ended := false
	for i, s := range p.Stitches() {
		dx := int(math.Round(s.X - xx))
		dy := int(math.Round(s.Y - yy))

		var err error
		switch s.Action() {
		case tambour.STITCH:
			err = put(i, dx, dy, ctrlStitch)
		case tambour.JUMP, tambour.SEQUIN_EJECT:
			err = put(i, dx, dy, ctrlJump)
		case tambour.COLOR_CHANGE, tambour.STOP, tambour.NEEDLE_SET:
			err = put(i, dx, dy, ctrlColor)
		case tambour.SEQUIN_MODE:
			err = put(i, dx, dy, ctrlSequin)
		case tambour.TRIM:
			// A trim does not move, pending movement is carried by the
			// next record.
			d := 2
			for k := 0; k < trimAt && err == nil; k++ {
				switch k {
				case 0, trimAt - 1:
					err = put(i, d, d, ctrlJump)
				default:
					err = put(i, -2*d, -2*d, ctrlJump)
				}
			}
			dx, dy = 0, 0
		case tambour.END:
			ended = true
		default:
			dx, dy = 0, 0
		}
		if err != nil {
			return err
		}
		if ended {
			break
		}
		xx += float64(dx)
		yy += float64(dy)
	}
	body.Write([]byte{0, 0, ctrlEnd})

	if err := writeHeader(w, p, records, xx, yy); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func writeHeader(w io.Writer, p *tambour.Pattern, records int, lastX, lastY float64) error {
	var buf bytes.Buffer

	title := p.Title()
	if title == "" {
		title = "Untitled"
	}
	if len(title) > 16 {
		title = title[:16]
	}
	minX, minY, maxX, maxY, _ := p.Bounds()

	fmt.Fprintf(&buf, "LA:%-16s\r", title)
	fmt.Fprintf(&buf, "ST:%7d\r", records)
	fmt.Fprintf(&buf, "CO:%3d\r", p.CountColorChanges())
	fmt.Fprintf(&buf, "+X:%5d\r", abs(maxX))
	fmt.Fprintf(&buf, "-X:%5d\r", abs(minX))
	fmt.Fprintf(&buf, "+Y:%5d\r", abs(maxY))
	fmt.Fprintf(&buf, "-Y:%5d\r", abs(minY))
	fmt.Fprintf(&buf, "AX:%s\r", signed(lastX))
	fmt.Fprintf(&buf, "AY:%s\r", signed(-lastY))
	fmt.Fprintf(&buf, "MX:+%5d\r", 0)
	fmt.Fprintf(&buf, "MY:+%5d\r", 0)
	fmt.Fprintf(&buf, "PD:%6s\r", "******")

	// Optional lines are kept only while they fit, leaving room for the
	// terminator.
	extra := func(line string) {
		if buf.Len()+len(line)+1 <= HeaderSize {
			buf.WriteString(line)
		}
	}
	if s := p.Author(); s != "" {
		extra("AU:" + s + "\r")
	}
	if s := p.Copyright(); s != "" {
		extra("CP:" + s + "\r")
	}
	for _, t := range p.Threads() {
		extra(fmt.Sprintf("TC:%s,%s,%s\r", t.Hex(), t.Description, t.CatalogNumber))
	}
	buf.WriteByte(0x1A)
	buf.Write(bytes.Repeat([]byte{' '}, HeaderSize-buf.Len()))

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "header")
}

func abs(v float64) int {
	return int(math.Abs(math.Round(v)))
}

func signed(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-%5d", abs(v))
	}
	return fmt.Sprintf("+%5d", abs(v))
}
