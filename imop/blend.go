// Package imop implements the Porter-Duff composition operations and the
// separable blend modes used for mixing a thread layer with its backdrop.
// The image/draw core package implements only source-over-destination and
// source, this package covers the remaining ones.
package imop

import (
	"github.com/esimov/tambour/utils"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Mode is a separable blend mode.
type Mode string

const (
	Normal   Mode = "normal"
	Darken   Mode = "darken"
	Lighten  Mode = "lighten"
	Multiply Mode = "multiply"
	Screen   Mode = "screen"
	Overlay  Mode = "overlay"
)

// Modes lists the supported blend modes.
var Modes = []Mode{Normal, Darken, Lighten, Multiply, Screen, Overlay}

// ParseMode returns the blend mode called name. An empty name is Normal.
func ParseMode(name string) (Mode, error) {
	if name == "" {
		return Normal, nil
	}
	m := Mode(name)
	if !slices.Contains(Modes, m) {
		return "", errors.Errorf("unsupported blend mode %q", name)
	}
	return m, nil
}

// blend mixes one normalized backdrop channel cb with the source channel cs.
func (m Mode) blend(cb, cs float64) float64 {
	switch m {
	case Darken:
		return utils.Min(cb, cs)
	case Lighten:
		return utils.Max(cb, cs)
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	case Overlay:
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	}
	return cs
}
