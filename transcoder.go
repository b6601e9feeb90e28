package tambour

import (
	"math"

	"github.com/pkg/errors"
)

// LongStitchContingency selects how stitches longer than MaxStitch are handled.
type LongStitchContingency int

const (
	// SplitIntoSegments sews to the target in evenly spaced stitches.
	SplitIntoSegments LongStitchContingency = iota
	// JumpThenStitch jumps to the target and sews a zero length stitch there.
	JumpThenStitch
)

func (c LongStitchContingency) String() string {
	switch c {
	case SplitIntoSegments:
		return "split"
	case JumpThenStitch:
		return "jump"
	}
	return "unknown"
}

// SequinContingency selects how SEQUIN_MODE and SEQUIN_EJECT are handled.
type SequinContingency int

const (
	SequinKeep SequinContingency = iota
	SequinToJump
	SequinToStitch
	SequinRemove
)

func (c SequinContingency) String() string {
	switch c {
	case SequinKeep:
		return "keep"
	case SequinToJump:
		return "jump"
	case SequinToStitch:
		return "stitch"
	case SequinRemove:
		return "remove"
	}
	return "unknown"
}

// EncoderSettings configures a transcoding run. The value is not modified
// by the Transcoder.
type EncoderSettings struct {
	// MaxStitch and MaxJump are the longest segments a format can hold,
	// in 0.1mm units. Both must be positive, +Inf disables splitting.
	MaxStitch float64
	MaxJump   float64

	// NeedleCount is the number of needles of the target machine. Zero
	// means unlimited. Color changes beyond it fail unless NeedleRemap is
	// set, in which case needles are reused round robin.
	NeedleCount int
	NeedleRemap bool

	// ThreadChangeCommand replaces COLOR_CHANGE in the output, it is
	// either COLOR_CHANGE or NEEDLE_SET.
	ThreadChangeCommand uint32

	ExplicitTrim bool
	Round        bool

	LongStitch LongStitchContingency
	Sequin     SequinContingency

	// Matrix is applied to every coordinate before splitting. Nil is identity.
	Matrix *Matrix
}

// DefaultSettings returns settings that pass a pattern through unchanged.
func DefaultSettings() EncoderSettings {
	return EncoderSettings{
		MaxStitch:           math.Inf(1),
		MaxJump:             math.Inf(1),
		ThreadChangeCommand: COLOR_CHANGE,
		LongStitch:          SplitIntoSegments,
		Sequin:              SequinKeep,
	}
}

// DSTSettings returns the constraints of Tajima DST files.
func DSTSettings() EncoderSettings {
	s := DefaultSettings()
	s.MaxStitch, s.MaxJump = 121, 121
	s.ExplicitTrim = true
	s.Round = true
	s.Sequin = SequinKeep
	return s
}

// EXPSettings returns the constraints of Melco EXP files.
func EXPSettings() EncoderSettings {
	s := DefaultSettings()
	s.MaxStitch, s.MaxJump = 127, 127
	s.Round = true
	s.Sequin = SequinToJump
	return s
}

// Validate reports settings the transcoder cannot run with.
func (s EncoderSettings) Validate() error {
	if !(s.MaxStitch > 0) {
		return errors.Wrapf(ErrInvalidPattern, "max stitch %v must be positive", s.MaxStitch)
	}
	if !(s.MaxJump > 0) {
		return errors.Wrapf(ErrInvalidPattern, "max jump %v must be positive", s.MaxJump)
	}
	if s.NeedleCount < 0 {
		return errors.Wrapf(ErrInvalidPattern, "negative needle count %d", s.NeedleCount)
	}
	switch s.ThreadChangeCommand {
	case COLOR_CHANGE, NEEDLE_SET:
	default:
		return errors.Wrapf(ErrInvalidPattern, "thread change command %s", CommandName(s.ThreadChangeCommand))
	}
	return nil
}

// State is the stage a Transcoder has reached.
type State int

const (
	Idle State = iota
	Transforming
	Splitting
	Rounding
	Done
)

func (s State) String() string {
	return [...]string{"idle", "transforming", "splitting", "rounding", "done"}[s]
}

// Transcoder rewrites a pattern so that it satisfies the physical limits of
// a target format. A Transcoder may be reused but not shared between goroutines.
type Transcoder struct {
	settings EncoderSettings
	state    State
}

// NewTranscoder returns a transcoder using the given settings.
func NewTranscoder(s EncoderSettings) *Transcoder {
	return &Transcoder{settings: s}
}

// Settings returns the configured settings.
func (t *Transcoder) Settings() EncoderSettings { return t.settings }

// State returns the last stage reached by the most recent Transcode call.
// A failed call leaves the stage it failed in.
func (t *Transcoder) State() State { return t.state }

// Transcode is a shorthand for NewTranscoder(s).Transcode(src).
func Transcode(src *Pattern, s EncoderSettings) (*Pattern, error) {
	return NewTranscoder(s).Transcode(src)
}

// Transcode returns a new pattern derived from src. The stages run in this
// order: transform, sequin handling, split long stitches and jumps,
// explicit trims, needle assignment, rounding. With Round set, targets and
// split points are snapped to whole units while splitting, so the limits
// hold for the rounded output. On error no pattern is returned. src is not
// modified.
func (t *Transcoder) Transcode(src *Pattern) (*Pattern, error) {
	t.state = Idle
	if err := t.settings.Validate(); err != nil {
		return nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, errors.Wrap(err, "source pattern")
	}

	t.state = Transforming
	stitches, err := t.transform(src.stitches)
	if err != nil {
		return nil, err
	}
	stitches = t.sequins(stitches)

	t.state = Splitting
	stitches = t.split(stitches)
	if t.settings.ExplicitTrim {
		stitches = explicitTrims(stitches)
	}
	if err := t.needles(stitches); err != nil {
		return nil, err
	}

	t.state = Rounding
	if t.settings.Round {
		for i := range stitches {
			stitches[i].X = math.Round(stitches[i].X)
			stitches[i].Y = math.Round(stitches[i].Y)
		}
	}

	dst := NewPattern()
	dst.copyHeader(src)
	dst.stitches = stitches
	if n := len(stitches); n > 0 {
		dst.lastX, dst.lastY = stitches[n-1].X, stitches[n-1].Y
	}
	t.state = Done

	return dst, nil
}

// transform returns a copy of the stitches with the matrix applied.
// A singular matrix collapses the design and is rejected.
func (t *Transcoder) transform(in []Stitch) ([]Stitch, error) {
	out := make([]Stitch, len(in))
	copy(out, in)

	m := t.settings.Matrix
	if m == nil || m.IsIdentity() {
		return out, nil
	}
	if _, err := m.Inverse(); err != nil {
		return nil, errors.Wrap(err, "transform")
	}
	for i, s := range out {
		out[i].X, out[i].Y = m.Point(s.X, s.Y)
	}
	return out, nil
}

func (t *Transcoder) split(in []Stitch) []Stitch {
	out := make([]Stitch, 0, len(in))
	var px, py float64

	for _, s := range in {
		if t.settings.Round {
			s.X, s.Y = math.Round(s.X), math.Round(s.Y)
		}
		length := math.Hypot(s.X-px, s.Y-py)

		switch s.Action() {
		case STITCH:
			switch {
			case length <= t.settings.MaxStitch:
				out = append(out, s)
			case t.settings.LongStitch == JumpThenStitch:
				out = t.appendSplit(out, px, py, Stitch{X: s.X, Y: s.Y, Command: JUMP}, t.settings.MaxJump, JUMP)
				out = append(out, s)
			default:
				out = t.appendSplit(out, px, py, s, t.settings.MaxStitch, STITCH)
			}
		case JUMP, SEQUIN_EJECT:
			// a kept sequin eject is reached through jumps
			out = t.appendSplit(out, px, py, s, t.settings.MaxJump, JUMP)
		default:
			out = append(out, s)
		}
		px, py = s.X, s.Y
	}
	return out
}

func (t *Transcoder) appendSplit(dst []Stitch, px, py float64, s Stitch, limit float64, cmd uint32) []Stitch {
	if !t.settings.Round {
		return appendSplit(dst, px, py, s, limit, cmd)
	}
	return appendRoundedSplit(dst, px, py, s, limit, cmd)
}

// appendRoundedSplit is appendSplit for whole unit coordinates. The
// intermediate points are rounded, and their number grows until every
// rounded segment fits within limit. Limits below one diagonal unit may
// not be reachable, the finest split is used then.
func appendRoundedSplit(dst []Stitch, px, py float64, s Stitch, limit float64, cmd uint32) []Stitch {
	dx, dy := s.X-px, s.Y-py
	length := math.Hypot(dx, dy)
	if length <= limit {
		return append(dst, s)
	}

	point := func(i, n int) (float64, float64) {
		f := float64(i) / float64(n)
		return math.Round(px + dx*f), math.Round(py + dy*f)
	}
	fits := func(n int) bool {
		x0, y0 := px, py
		for i := 1; i <= n; i++ {
			x1, y1 := point(i, n)
			if math.Hypot(x1-x0, y1-y0) > limit {
				return false
			}
			x0, y0 = x1, y1
		}
		return true
	}

	n := int(math.Ceil(length / limit))
	for finest := 2*int(math.Ceil(length)) + 2; n < finest; n++ {
		if fits(n) {
			break
		}
	}
	for i := 1; i < n; i++ {
		x, y := point(i, n)
		dst = append(dst, Stitch{X: x, Y: y, Command: cmd})
	}
	return append(dst, s)
}

func (t *Transcoder) sequins(in []Stitch) []Stitch {
	if t.settings.Sequin == SequinKeep {
		return in
	}
	out := in[:0]
	for _, s := range in {
		a := s.Action()
		if a != SEQUIN_MODE && a != SEQUIN_EJECT {
			out = append(out, s)
			continue
		}
		switch t.settings.Sequin {
		case SequinToJump:
			s.Command = s.Command&^CommandMask | JUMP
		case SequinToStitch:
			s.Command = s.Command&^CommandMask | STITCH
		case SequinRemove:
			continue
		}
		out = append(out, s)
	}
	return out
}

// explicitTrims inserts a TRIM before every COLOR_CHANGE not already
// preceded by one.
func explicitTrims(in []Stitch) []Stitch {
	out := make([]Stitch, 0, len(in))
	for _, s := range in {
		if s.Action() == COLOR_CHANGE {
			if n := len(out); n == 0 || out[n-1].Action() != TRIM {
				var x, y float64
				if n > 0 {
					x, y = out[n-1].X, out[n-1].Y
				}
				out = append(out, Stitch{X: x, Y: y, Command: TRIM})
			}
		}
		out = append(out, s)
	}
	return out
}

// needles rewrites thread changes to the configured command and records
// the needle each one selects. The first color block sews on needle 0.
func (t *Transcoder) needles(stitches []Stitch) error {
	n := t.settings.NeedleCount
	change := 0

	for i, s := range stitches {
		if s.Action() != COLOR_CHANGE {
			continue
		}
		change++
		cmd := s.Command&^CommandMask | t.settings.ThreadChangeCommand
		if n > 0 {
			needle := change
			if needle >= n {
				if !t.settings.NeedleRemap {
					return StitchError(ErrNeedleCount, i,
						"color change %d needs needle %d of %d", change, needle+1, n)
				}
				needle %= n
			}
			cmd = WithNeedle(cmd, needle)
		}
		stitches[i].Command = cmd
	}
	return nil
}
