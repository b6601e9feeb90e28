// Package tsc implements the native compressed stitch format.
//
// A file starts with a little endian header, the thread colors and the
// title, followed by a huffman container of three streams of equal length:
// one command byte, one signed x move and one signed, negated y move per
// record.
package tsc

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/esimov/tambour"
	"github.com/esimov/tambour/format"
	"github.com/esimov/tambour/huffman"
	"github.com/pkg/errors"
)

// Magic opens every file.
const Magic = "TSC1"

// MaxMove is the longest move a record holds on either axis.
const MaxMove = 127

// MaxStitches bounds the record count a reader accepts.
const MaxStitches = 1_000_000

// Command bytes.
const (
	cmdStitch = 0x80
	cmdJump   = 0x81
	cmdStop   = 0x82
	cmdColor  = 0x84
	cmdSequin = 0x86
	cmdEject  = 0x87
	cmdTrim   = 0x88
	cmdEnd    = 0x90
)

// headerSize is the encoded size of header.
const headerSize = 18

var toByte = map[uint32]byte{
	tambour.STITCH:       cmdStitch,
	tambour.JUMP:         cmdJump,
	tambour.STOP:         cmdStop,
	tambour.COLOR_CHANGE: cmdColor,
	tambour.NEEDLE_SET:   cmdColor,
	tambour.SEQUIN_MODE:  cmdSequin,
	tambour.SEQUIN_EJECT: cmdEject,
	tambour.TRIM:         cmdTrim,
	tambour.END:          cmdEnd,
}

var fromByte = map[byte]uint32{
	cmdStitch: tambour.STITCH,
	cmdJump:   tambour.JUMP,
	cmdStop:   tambour.STOP,
	cmdColor:  tambour.COLOR_CHANGE,
	cmdSequin: tambour.SEQUIN_MODE,
	cmdEject:  tambour.SEQUIN_EJECT,
	cmdTrim:   tambour.TRIM,
	cmdEnd:    tambour.END,
}

type header struct {
	Magic    [4]byte
	Stitches uint32
	Threads  uint16
	MaxX     int16
	MaxY     int16
	MinX     int16
	MinY     int16
}

// Settings returns the transcoder settings of the format.
func Settings() tambour.EncoderSettings {
	s := tambour.DefaultSettings()
	s.MaxStitch, s.MaxJump = MaxMove, MaxMove
	s.Round = true
	return s
}

func init() {
	format.MustRegister(format.Format{
		Name:        "tsc",
		Description: "compressed stitch streams",
		Extensions:  []string{".tsc"},
		Settings:    Settings(),
		Read:        Read,
		Write:       Write,
	})
}

func truncated(err error, offset int64, what string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return tambour.OffsetError(tambour.ErrTruncated, offset, "%s", what)
	}
	return err
}

// Read decodes a stream into p.
func Read(r io.Reader, p *tambour.Pattern) error {
	br := bufio.NewReader(r)

	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return truncated(err, 0, "header")
	}
	if string(h.Magic[:]) != Magic {
		return tambour.OffsetError(tambour.ErrCorrupt, 0, "bad magic %q", h.Magic[:])
	}
	if h.Stitches > MaxStitches {
		return tambour.OffsetError(tambour.ErrCorrupt, 4, "%d records", h.Stitches)
	}

	offset := int64(headerSize)
	rgb := make([]byte, 3)
	for i := 0; i < int(h.Threads); i++ {
		if _, err := io.ReadFull(br, rgb); err != nil {
			return truncated(err, offset, "thread table")
		}
		p.AddThread(tambour.NewThread(uint32(rgb[0])<<16 | uint32(rgb[1])<<8 | uint32(rgb[2])))
		offset += 3
	}

	n, err := br.ReadByte()
	if err != nil {
		return truncated(err, offset, "title")
	}
	title := make([]byte, n)
	if _, err := io.ReadFull(br, title); err != nil {
		return truncated(err, offset+1, "title")
	}
	if n > 0 {
		p.SetTitle(string(title))
	}
	offset += 1 + int64(n)

	data, err := io.ReadAll(br)
	if err != nil {
		return err
	}
	streams, err := huffman.Decompress(data)
	if err != nil {
		return errors.Wrapf(err, "stream data at offset %d", offset)
	}
	if len(streams) != 3 {
		return tambour.OffsetError(tambour.ErrCorrupt, offset, "%d streams, want 3", len(streams))
	}
	cmds, xs, ys := streams[0], streams[1], streams[2]
	if len(cmds) != int(h.Stitches) || len(xs) != len(cmds) || len(ys) != len(cmds) {
		return tambour.OffsetError(tambour.ErrCorrupt, offset,
			"stream lengths %d/%d/%d for %d records", len(cmds), len(xs), len(ys), h.Stitches)
	}

	for i, c := range cmds {
		cmd, ok := fromByte[c]
		if !ok {
			return tambour.StitchError(tambour.ErrCorrupt, i, "command byte %#02x", c)
		}
		if cmd == tambour.END {
			break
		}
		p.AddStitchRelative(float64(int8(xs[i])), -float64(int8(ys[i])), cmd)
	}
	p.End()
	return nil
}

// Write encodes p, which should already be transcoded with Settings. An
// END record is always written last.
func Write(w io.Writer, p *tambour.Pattern) error {
	stitches := p.Stitches()
	cmds := make([]byte, 0, len(stitches)+1)
	xs := make([]byte, 0, len(stitches)+1)
	ys := make([]byte, 0, len(stitches)+1)

	var xx, yy float64
	for i, s := range stitches {
		c, ok := toByte[s.Action()]
		if !ok {
			continue
		}
		if c == cmdEnd {
			break
		}
		dx := int(math.Round(s.X - xx))
		dy := int(math.Round(s.Y - yy))
		if dx < -MaxMove || dx > MaxMove || dy < -MaxMove || dy > MaxMove {
			return tambour.StitchError(tambour.ErrRangeExceeded, i, "move (%d, %d)", dx, dy)
		}
		cmds = append(cmds, c)
		xs = append(xs, byte(int8(dx)))
		ys = append(ys, byte(int8(-dy)))
		xx += float64(dx)
		yy += float64(dy)
	}
	cmds, xs, ys = append(cmds, cmdEnd), append(xs, 0), append(ys, 0)

	if len(p.Threads()) > math.MaxUint16 {
		return errors.Wrapf(tambour.ErrRangeExceeded, "%d threads", len(p.Threads()))
	}
	minX, minY, maxX, maxY, _ := p.Bounds()
	h := header{
		Stitches: uint32(len(cmds)),
		Threads:  uint16(len(p.Threads())),
		MaxX:     clamp16(maxX),
		MaxY:     clamp16(maxY),
		MinX:     clamp16(minX),
		MinY:     clamp16(minY),
	}
	copy(h.Magic[:], Magic)

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return err
	}
	for _, t := range p.Threads() {
		bw.Write([]byte{t.Red(), t.Green(), t.Blue()})
	}
	title := p.Title()
	if len(title) > math.MaxUint8 {
		title = title[:math.MaxUint8]
	}
	bw.WriteByte(byte(len(title)))
	bw.WriteString(title)

	data, err := huffman.Compress([][]byte{cmds, xs, ys})
	if err != nil {
		return err
	}
	bw.Write(data)
	return bw.Flush()
}

func clamp16(v float64) int16 {
	v = math.Round(v)
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}
