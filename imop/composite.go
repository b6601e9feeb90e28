package imop

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/tambour/utils"
)

// Op is a Porter-Duff composition operator.
type Op int

const (
	Clear Op = iota
	Copy
	SrcOver
	DstOver
	SrcIn
	DstIn
	SrcOut
	DstOut
	SrcAtop
	DstAtop
	Xor
)

// factors returns the fractions of source and backdrop kept by the
// operator for the source alpha as and the backdrop alpha ab.
func (op Op) factors(as, ab float64) (fa, fb float64) {
	switch op {
	case Copy:
		return 1, 0
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 0, 0
}

// Composite mixes src into dst in place over their common area, applying
// the blend mode to the overlapping color first and the operator after.
func Composite(dst, src *image.NRGBA, op Op, mode Mode) {
	if mode == "" {
		mode = Normal
	}
	r := dst.Bounds().Intersect(src.Bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			b := dst.NRGBAAt(x, y)
			dst.SetNRGBA(x, y, mix(b, s, op, mode))
		}
	}
}

func mix(b, s color.NRGBA, op Op, mode Mode) color.NRGBA {
	as, ab := float64(s.A)/255, float64(b.A)/255
	fa, fb := op.factors(as, ab)

	ao := fa*as + fb*ab
	if ao == 0 {
		return color.NRGBA{}
	}
	channel := func(cs, cb uint8) uint8 {
		csn, cbn := float64(cs)/255, float64(cb)/255
		// where the backdrop is opaque the blended color replaces the source
		csn = (1-ab)*csn + ab*mode.blend(cbn, csn)
		c := (fa*as*csn + fb*ab*cbn) / ao
		return uint8(math.Round(utils.Clamp(c, 0, 1) * 255))
	}
	return color.NRGBA{
		R: channel(s.R, b.R),
		G: channel(s.G, b.G),
		B: channel(s.B, b.B),
		A: uint8(math.Round(utils.Clamp(ao, 0, 1) * 255)),
	}
}
