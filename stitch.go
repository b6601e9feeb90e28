package tambour

import (
	"fmt"
	"math"
)

// Stitch is a single needle position in absolute 0.1mm units together with
// the command executed there. Two stitches are equal only when their
// coordinates and full command words, metadata included, are equal.
type Stitch struct {
	X       float64
	Y       float64
	Command uint32
}

// Action returns the core action of the stitch command.
func (s Stitch) Action() uint32 {
	return s.Command & CommandMask
}

// Valid reports whether both coordinates are finite.
func (s Stitch) Valid() bool {
	return !math.IsNaN(s.X) && !math.IsInf(s.X, 0) &&
		!math.IsNaN(s.Y) && !math.IsInf(s.Y, 0)
}

// DistanceTo returns the Euclidean distance between two stitches.
func (s Stitch) DistanceTo(o Stitch) float64 {
	return math.Hypot(s.X-o.X, s.Y-o.Y)
}

func (s Stitch) String() string {
	return fmt.Sprintf("%s(%.2f, %.2f)", CommandName(s.Command), s.X, s.Y)
}
