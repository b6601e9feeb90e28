package imop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	red  = color.NRGBA{R: 0xff, A: 0xff}
	blue = color.NRGBA{B: 0xff, A: 0xff}
	gray = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	none = color.NRGBA{}
)

func fill(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestBlend_ParseMode(t *testing.T) {
	m, err := ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, Normal, m)

	m, err = ParseMode("multiply")
	assert.NoError(t, err)
	assert.Equal(t, Multiply, m)

	_, err = ParseMode("blend_mode_not_supported")
	assert.Error(t, err)
}

func TestBlend_Modes(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.25, Multiply.blend(0.5, 0.5))
	assert.Equal(0.75, Screen.blend(0.5, 0.5))
	assert.Equal(0.2, Darken.blend(0.2, 0.7))
	assert.Equal(0.7, Lighten.blend(0.2, 0.7))
	assert.Equal(0.7, Normal.blend(0.2, 0.7))
	assert.Equal(0.0, Overlay.blend(0, 1))
	assert.Equal(1.0, Overlay.blend(1, 0))
}

func TestComp_Operators(t *testing.T) {
	tests := []struct {
		op       Op
		src, dst color.NRGBA
		want     color.NRGBA
	}{
		{Copy, red, blue, red},
		{SrcOver, red, blue, red},
		{SrcOver, none, blue, blue},
		{DstOver, red, blue, blue},
		{DstOver, red, none, red},
		{SrcIn, red, blue, red},
		{SrcIn, red, none, none},
		{DstIn, red, blue, blue},
		{SrcOut, red, blue, none},
		{SrcOut, red, none, red},
		{DstOut, none, blue, blue},
		{SrcAtop, red, blue, red},
		{SrcAtop, red, none, none},
		{DstAtop, red, blue, blue},
		{Xor, red, blue, none},
		{Xor, red, none, red},
		{Clear, red, blue, none},
	}
	for _, tc := range tests {
		dst := fill(tc.dst)
		Composite(dst, fill(tc.src), tc.op, Normal)
		assert.Equal(t, tc.want, dst.NRGBAAt(1, 1), "op %d", tc.op)
	}
}

func TestComp_BlendOverBackdrop(t *testing.T) {
	assert := assert.New(t)

	dst := fill(gray)
	Composite(dst, fill(red), SrcOver, Multiply)
	assert.Equal(color.NRGBA{R: 0x80, A: 0xff}, dst.NRGBAAt(0, 0))

	dst = fill(gray)
	Composite(dst, fill(red), SrcOver, Screen)
	assert.Equal(color.NRGBA{R: 0xff, G: 0x80, B: 0x80, A: 0xff}, dst.NRGBAAt(0, 0))

	// a transparent backdrop keeps the source color whatever the mode
	dst = fill(none)
	Composite(dst, fill(red), SrcOver, Multiply)
	assert.Equal(red, dst.NRGBAAt(0, 0))
}

func TestComp_HalfTransparentSource(t *testing.T) {
	dst := fill(color.NRGBA{A: 0xff})
	Composite(dst, fill(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}), SrcOver, Normal)
	c := dst.NRGBAAt(0, 0)
	assert.InDelta(t, 0x80, int(c.R), 1)
	assert.Equal(t, uint8(0xff), c.A)
}

func TestComp_DisjointBounds(t *testing.T) {
	dst := fill(blue)
	src := image.NewNRGBA(image.Rect(5, 5, 6, 6))
	Composite(dst, src, Copy, Normal)
	assert.Equal(t, blue, dst.NRGBAAt(0, 0))
}
