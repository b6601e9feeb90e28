package tambour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Thread describes one spool of embroidery thread. The color is packed as
// 0xRRGGBB, the upper byte is ignored.
type Thread struct {
	Color         uint32
	Description   string
	CatalogNumber string
	Brand         string
	Chart         string
	Details       string
	Weight        string
}

// MaxColorDistance is the distance between black and white.
var MaxColorDistance = ColorDistance(0x000000, 0xFFFFFF)

// NewThread returns a thread of the given color.
func NewThread(rgb uint32) Thread {
	return Thread{Color: rgb & 0xFFFFFF}
}

// ThreadFromString parses s with ParseColor and returns a thread carrying
// the color and, for named colors, the name as description.
func ThreadFromString(s string) (Thread, error) {
	c, err := ParseColor(s)
	if err != nil {
		return Thread{}, err
	}
	t := NewThread(c)
	if _, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		t.Description = strings.ToLower(strings.TrimSpace(s))
	}
	return t, nil
}

// ParseColor parses a named color or a hex string into a packed RGB value.
// Accepted forms are the SVG color names in any case, "#RRGGBB", "RRGGBB",
// "#RGB", "RGB", "#RGBA" and "#RRGGBBAA". Alpha is discarded.
func ParseColor(s string) (uint32, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0, errors.Wrap(ErrInvalidColor, "empty color")
	}
	if c, ok := colornames.Map[strings.ToLower(str)]; ok {
		return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B), nil
	}

	hex, prefixed := strings.CutPrefix(str, "#")
	switch {
	case len(hex) == 3, len(hex) == 6:
	case prefixed && (len(hex) == 4 || len(hex) == 8):
	default:
		return 0, errors.Wrapf(ErrInvalidColor, "%q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidColor, "%q", s)
	}

	switch len(hex) {
	case 3:
		return expandNibbles(uint32(v)), nil
	case 4:
		return expandNibbles(uint32(v) >> 4), nil
	case 8:
		return uint32(v) >> 8, nil
	}
	return uint32(v), nil
}

// expandNibbles doubles each nibble of a 0xRGB value.
func expandNibbles(v uint32) uint32 {
	r := (v >> 8) & 0xF
	g := (v >> 4) & 0xF
	b := v & 0xF
	return (r*0x11)<<16 | (g*0x11)<<8 | b*0x11
}

// Red returns the red channel.
func (t Thread) Red() uint8 { return uint8(t.Color >> 16) }

// Green returns the green channel.
func (t Thread) Green() uint8 { return uint8(t.Color >> 8) }

// Blue returns the blue channel.
func (t Thread) Blue() uint8 { return uint8(t.Color) }

// Opaque returns the color with a fully opaque alpha byte, 0xFFRRGGBB.
func (t Thread) Opaque() uint32 {
	return 0xFF000000 | t.Color&0xFFFFFF
}

// Hex returns the color as "#rrggbb".
func (t Thread) Hex() string {
	return fmt.Sprintf("#%06x", t.Color&0xFFFFFF)
}

// RGBA returns the thread color as an opaque image/color value.
func (t Thread) RGBA() color.NRGBA {
	return color.NRGBA{R: t.Red(), G: t.Green(), B: t.Blue(), A: 0xFF}
}

// Distance returns the perceptual distance between two threads.
func (t Thread) Distance(o Thread) int {
	return ColorDistance(t.Color, o.Color)
}

// NearestIndex returns the index of the palette thread closest to t.
func (t Thread) NearestIndex(palette []Thread) (int, bool) {
	colors := make([]uint32, len(palette))
	for i, p := range palette {
		colors[i] = p.Color
	}
	return NearestColorIndex(t.Color, colors)
}

func (t Thread) String() string {
	if t.Description != "" {
		return fmt.Sprintf("%s %s", t.Hex(), t.Description)
	}
	return t.Hex()
}

// ColorDistance returns the squared red-mean weighted distance between two
// packed RGB colors:
//
//	((512+r̄)·Δr²)>>8 + 4·Δg² + ((767−r̄)·Δb²)>>8
//
// where r̄ is the mean of the two red channels.
func ColorDistance(a, b uint32) int {
	r1, g1, b1 := int(a>>16&0xFF), int(a>>8&0xFF), int(a&0xFF)
	r2, g2, b2 := int(b>>16&0xFF), int(b>>8&0xFF), int(b&0xFF)

	rm := (r1 + r2) / 2
	dr, dg, db := r1-r2, g1-g2, b1-b2

	return ((512+rm)*dr*dr)>>8 + 4*dg*dg + ((767-rm)*db*db)>>8
}

// NearestColorIndex returns the index of the palette entry closest to c.
// Ties go to the first entry. It returns false for an empty palette.
func NearestColorIndex(c uint32, palette []uint32) (int, bool) {
	if len(palette) == 0 {
		return 0, false
	}
	best, bestDist := 0, ColorDistance(c, palette[0])
	for i := 1; i < len(palette) && bestDist > 0; i++ {
		if d := ColorDistance(c, palette[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, true
}
