package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/esimov/tambour"
	"github.com/esimov/tambour/imop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLines() *tambour.Pattern {
	p := tambour.NewPattern()
	p.AddThread(tambour.NewThread(0xFF0000))
	p.AddThread(tambour.NewThread(0x0000FF))
	p.Stitch(0, 0)
	p.Stitch(20, 0)
	p.Jump(0, 20)
	p.ColorChange(0, 0)
	p.Stitch(0, 0)
	p.Stitch(-20, 0)
	p.End()
	return p
}

func isNear(c color.NRGBA, r, g, b uint8) bool {
	near := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d >= -2 && d <= 2
	}
	return near(c.R, r) && near(c.G, g) && near(c.B, b) && c.A > 250
}

func TestRender_IsNear(t *testing.T) {
	assert.True(t, isNear(color.NRGBA{R: 255, G: 254, B: 253, A: 255}, 255, 255, 255))
	assert.True(t, isNear(color.NRGBA{R: 1, A: 255}, 0, 0, 0))
	assert.False(t, isNear(color.NRGBA{R: 250, A: 255}, 255, 0, 0))
}

func TestRender_Image(t *testing.T) {
	assert := assert.New(t)

	img := Image(newLines(), DefaultOptions())
	// 20x20 design, 4 pixel margin on each side, one extra pixel.
	assert.Equal(image.Rect(0, 0, 29, 29), img.Bounds())

	assert.True(isNear(img.NRGBAAt(14, 4), 255, 0, 0), "%v", img.NRGBAAt(14, 4))
	assert.True(isNear(img.NRGBAAt(14, 24), 0, 0, 255), "%v", img.NRGBAAt(14, 24))
	// the jump between both lines is not drawn
	assert.True(isNear(img.NRGBAAt(24, 14), 255, 255, 255), "%v", img.NRGBAAt(24, 14))
	assert.True(isNear(img.NRGBAAt(0, 0), 255, 255, 255))
}

func TestRender_Transparent(t *testing.T) {
	img := Image(newLines(), Options{Margin: 2})
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0xFF), img.NRGBAAt(12, 2).A)
}

func TestRender_Blend(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	opts.Blend = imop.Multiply

	img := Image(newLines(), opts)
	assert.True(t, isNear(img.NRGBAAt(14, 4), 0x80, 0, 0), "%v", img.NRGBAAt(14, 4))
	assert.True(t, isNear(img.NRGBAAt(14, 24), 0, 0, 0x80), "%v", img.NRGBAAt(14, 24))
	assert.True(t, isNear(img.NRGBAAt(24, 14), 0x80, 0x80, 0x80), "%v", img.NRGBAAt(24, 14))
}

func TestRender_Empty(t *testing.T) {
	img := Image(tambour.NewPattern(), DefaultOptions())
	assert.Equal(t, image.Rect(0, 0, 9, 9), img.Bounds())
}

func TestRender_SingleStitch(t *testing.T) {
	p := tambour.NewPattern()
	p.Stitch(5, 5)
	img := Image(p, Options{Scale: 2, LineWidth: 2, Margin: 4})
	assert.Equal(t, image.Rect(0, 0, 9, 9), img.Bounds())
	assert.Equal(t, uint8(0xFF), img.NRGBAAt(4, 4).A)
}

func TestRender_MaxSize(t *testing.T) {
	p := tambour.NewPattern()
	p.Stitch(0, 0)
	p.Stitch(1000, 250)

	opts := DefaultOptions()
	opts.MaxSize = 100
	img := Image(p, opts)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.LessOrEqual(t, img.Bounds().Dy(), 100)
}

func TestRender_HugeDesign(t *testing.T) {
	p := tambour.NewPattern()
	p.StitchAbs(-1e6, 0)
	p.StitchAbs(1e6, 10)

	img := Image(p, DefaultOptions())
	assert.LessOrEqual(t, img.Bounds().Dx(), MaxSide+1)
	assert.Less(t, img.Bounds().Dy(), 20)

	opts := DefaultOptions()
	opts.MaxSize = 64
	img = Image(p, opts)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestRender_RasterScale(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 1.0, rasterScale(100, o))
	assert.Equal(t, 1.0, rasterScale(0, o))

	o.MaxSize = 100
	assert.InDelta(t, 191.0/1000, rasterScale(1000, o), 1e-12)

	o.Scale = 0.01
	assert.Equal(t, 0.01, rasterScale(1000, o))
}

func TestRender_Encode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, newLines(), DefaultOptions()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 29, 29), img.Bounds())
}

func TestRender_Save(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "a.JPG", "a.bmp"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, newLines(), DefaultOptions()), name)

		img, err := imaging.Open(path)
		require.NoError(t, err, name)
		assert.Equal(t, 29, img.Bounds().Dx(), name)
	}

	err := Save(filepath.Join(dir, "a.gif"), newLines(), DefaultOptions())
	assert.True(t, errors.Is(err, tambour.ErrUnsupportedFormat))
	_, err = os.Stat(filepath.Join(dir, "a.gif"))
	assert.True(t, os.IsNotExist(err))
}
