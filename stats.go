package tambour

import (
	"math"

	"golang.org/x/exp/slices"
)

// DefaultSpeed is the machine speed in stitches per minute used when none is given.
const DefaultSpeed = 800

// ThreadUsage is the amount of thread sewn with one thread of the pattern.
type ThreadUsage struct {
	Index    int
	Thread   Thread
	Stitches int
	LengthMM float64
}

// Statistics summarizes a pattern. Lengths are in millimeters.
type Statistics struct {
	Stitches     int
	Jumps        int
	Trims        int
	ColorChanges int

	TotalLengthMM float64
	AvgLengthMM   float64
	MaxLengthMM   float64
	WidthMM       float64
	HeightMM      float64

	// Density is the number of stitches per square centimeter of the bounds.
	Density float64
	// Minutes is the estimated sewing time at the given machine speed.
	Minutes float64

	Usage []ThreadUsage
}

// Statistics computes the pattern statistics for a machine sewing speed
// stitches per minute. A non positive speed uses DefaultSpeed.
func (p *Pattern) Statistics(speed float64) Statistics {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	st := Statistics{
		Stitches:      p.CountStitches(),
		Jumps:         p.CountJumps(),
		Trims:         p.CountTrims(),
		ColorChanges:  p.CountColorChanges(),
		TotalLengthMM: p.TotalStitchLength() / 10,
		AvgLengthMM:   p.AverageStitchLength() / 10,
		MaxLengthMM:   p.MaxStitchLength() / 10,
		WidthMM:       p.Width() / 10,
		HeightMM:      p.Height() / 10,
	}
	st.Minutes = float64(st.Stitches) / speed

	if area := (st.WidthMM / 10) * (st.HeightMM / 10); area > 0 {
		st.Density = float64(st.Stitches) / area
	}

	var (
		usage  = map[int]*ThreadUsage{}
		idx    int
		px, py float64
	)
	for _, s := range p.stitches {
		switch s.Action() {
		case COLOR_CHANGE:
			idx++
		case STITCH:
			u, ok := usage[idx]
			if !ok {
				u = &ThreadUsage{Index: idx, Thread: p.threadOrFiller(idx)}
				usage[idx] = u
			}
			u.Stitches++
			u.LengthMM += math.Hypot(s.X-px, s.Y-py) / 10
		}
		px, py = s.X, s.Y
	}
	for _, u := range usage {
		st.Usage = append(st.Usage, *u)
	}
	slices.SortFunc(st.Usage, func(a, b ThreadUsage) bool {
		return a.Index < b.Index
	})
	return st
}
