// Package render rasterizes stitch patterns into preview images.
package render

import (
	"image"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/tambour"
	"github.com/esimov/tambour/imop"
	"github.com/google/renameio"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/vector"
)

// MaxSide bounds the longer side of the raster. Designs that would not fit
// at the requested scale are drawn at a smaller one.
const MaxSide = 4096

// Options configures the preview.
type Options struct {
	// Background fills the image, nil leaves it transparent.
	Background color.Color
	// LineWidth is the thread width in pattern units, 3 when zero.
	LineWidth float64
	// Scale is the number of pixels per pattern unit, 1 when zero.
	Scale float64
	// Margin is the empty border in pixels around the design.
	Margin int
	// Blend mixes every thread block with what is already drawn below it.
	// Empty or Normal paints the threads over the background.
	Blend imop.Mode
	// MaxSize bounds the longer image side. The design is rasterized at
	// no more than twice that size and fitted with Lanczos resampling.
	// Zero leaves only the MaxSide bound.
	MaxSize int
}

// DefaultOptions returns a white background preview at one pixel per unit.
func DefaultOptions() Options {
	return Options{
		Background: color.White,
		LineWidth:  3,
		Scale:      1,
		Margin:     4,
	}
}

func (o Options) normalize() Options {
	if o.LineWidth <= 0 {
		o.LineWidth = 3
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	return o
}

// Image draws every stitch block of p as anti-aliased strokes in the color
// of its thread. Jumps and trims are not drawn. An empty pattern yields an
// image holding only the margin.
func Image(p *tambour.Pattern, opts Options) *image.NRGBA {
	o := opts.normalize()

	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	o.Scale = rasterScale(math.Max(maxX-minX, maxY-minY), o)
	w := int(math.Ceil((maxX-minX)*o.Scale)) + 2*o.Margin + 1
	h := int(math.Ceil((maxY-minY)*o.Scale)) + 2*o.Margin + 1

	bg := o.Background
	if bg == nil {
		bg = color.Transparent
	}
	dst := imaging.New(w, h, bg)

	project := func(s tambour.Stitch) (float32, float32) {
		return float32((s.X-minX)*o.Scale) + float32(o.Margin) + 0.5,
			float32((s.Y-minY)*o.Scale) + float32(o.Margin) + 0.5
	}
	half := float32(o.LineWidth * o.Scale / 2)
	if half < 0.5 {
		half = 0.5
	}

	// blended blocks are rasterized into a layer first
	var layer *image.NRGBA
	if o.Blend != "" && o.Blend != imop.Normal {
		layer = image.NewNRGBA(dst.Bounds())
	}

	r := vector.NewRasterizer(w, h)
	for _, b := range p.Blocks() {
		r.Reset(w, h)
		x0, y0 := project(b.Points[0])
		if len(b.Points) == 1 {
			quad(r, x0, y0, x0, y0, half)
		}
		for _, s := range b.Points[1:] {
			x1, y1 := project(s)
			quad(r, x0, y0, x1, y1, half)
			x0, y0 = x1, y1
		}
		if layer == nil {
			r.Draw(dst, dst.Bounds(), image.NewUniform(b.Thread.RGBA()), image.Point{})
			continue
		}
		clear(layer.Pix)
		r.Draw(layer, layer.Bounds(), image.NewUniform(b.Thread.RGBA()), image.Point{})
		imop.Composite(dst, layer, imop.SrcOver, o.Blend)
	}

	if o.MaxSize > 0 && (w > o.MaxSize || h > o.MaxSize) {
		dst = imaging.Fit(dst, o.MaxSize, o.MaxSize, imaging.Lanczos)
	}
	return dst
}

// rasterScale lowers o.Scale so that a design spanning span units fits in
// the raster bound before anything is allocated.
func rasterScale(span float64, o Options) float64 {
	limit := MaxSide
	if o.MaxSize > 0 && 2*o.MaxSize < limit {
		limit = 2 * o.MaxSize
	}
	avail := float64(limit - 2*o.Margin - 1)
	if avail < 1 {
		avail = 1
	}
	if span*o.Scale <= avail {
		return o.Scale
	}
	return math.Floor(avail) / span
}

// quad adds the rectangle covering the segment (x0,y0)-(x1,y1) widened by
// half on every side. A zero length segment becomes a square dot.
func quad(r *vector.Rasterizer, x0, y0, x1, y1, half float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	// unit direction scaled to half the width, and its normal
	ux, uy := dx/l*half, dy/l*half
	nx, ny := -uy, ux

	r.MoveTo(x0-ux+nx, y0-uy+ny)
	r.LineTo(x1+ux+nx, y1+uy+ny)
	r.LineTo(x1+ux-nx, y1+uy-ny)
	r.LineTo(x0-ux-nx, y0-uy-ny)
	r.ClosePath()
}

// Encode writes the preview of p as PNG.
func Encode(w io.Writer, p *tambour.Pattern, opts Options) error {
	return imaging.Encode(w, Image(p, opts), imaging.PNG)
}

// Save writes the preview of p to path, the image format is chosen by the
// extension: png, jpg, jpeg or bmp.
func Save(path string, p *tambour.Pattern, opts Options) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".bmp":
	default:
		return errors.Wrapf(tambour.ErrUnsupportedFormat, "image extension %q", ext)
	}

	o, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer o.Cleanup()

	img := Image(p, opts)
	switch ext {
	case ".png":
		err = imaging.Encode(o, img, imaging.PNG)
	case ".bmp":
		err = bmp.Encode(o, img)
	default:
		err = imaging.Encode(o, img, imaging.JPEG, imaging.JPEGQuality(100))
	}
	if err != nil {
		return errors.Wrap(err, "encode preview")
	}
	return o.CloseAtomicallyReplace()
}
