package tambour

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Well known metadata keys.
const (
	MetaTitle     = "name"
	MetaAuthor    = "author"
	MetaCopyright = "copyright"
)

// maxCoordinate bounds the coordinates accepted by Validate, 100m in 0.1mm units.
const maxCoordinate = 1_000_000

// Pattern is an ordered sequence of stitches together with the threads they
// are sewn with and free form metadata. Stitch order is execution order.
// A Pattern is not safe for concurrent use.
type Pattern struct {
	stitches []Stitch
	threads  []Thread
	metadata map[string]string
	grouping *ThreadGrouping

	lastX, lastY float64
}

// NewPattern returns an empty pattern positioned at the origin.
func NewPattern() *Pattern {
	return &Pattern{metadata: make(map[string]string)}
}

// AddStitchRelative appends a stitch at the last position shifted by (dx, dy).
func (p *Pattern) AddStitchRelative(dx, dy float64, cmd uint32) {
	p.AddStitchAbsolute(cmd, p.lastX+dx, p.lastY+dy)
}

// AddStitchAbsolute appends a stitch at (x, y) and moves the last position there.
func (p *Pattern) AddStitchAbsolute(cmd uint32, x, y float64) {
	p.stitches = append(p.stitches, Stitch{X: x, Y: y, Command: cmd})
	p.lastX, p.lastY = x, y
}

// AddCommand is an alias of AddStitchAbsolute used for non sewing commands.
func (p *Pattern) AddCommand(cmd uint32, x, y float64) {
	p.AddStitchAbsolute(cmd, x, y)
}

// Stitch appends a relative stitch.
func (p *Pattern) Stitch(dx, dy float64) { p.AddStitchRelative(dx, dy, STITCH) }

// StitchAbs appends an absolute stitch.
func (p *Pattern) StitchAbs(x, y float64) { p.AddStitchAbsolute(STITCH, x, y) }

// Jump appends a relative jump.
func (p *Pattern) Jump(dx, dy float64) { p.AddStitchRelative(dx, dy, JUMP) }

// JumpAbs appends an absolute jump.
func (p *Pattern) JumpAbs(x, y float64) { p.AddStitchAbsolute(JUMP, x, y) }

// Trim appends a trim at the last position.
func (p *Pattern) Trim() { p.AddStitchRelative(0, 0, TRIM) }

// ColorChange appends a color change moving by (dx, dy).
func (p *Pattern) ColorChange(dx, dy float64) { p.AddStitchRelative(dx, dy, COLOR_CHANGE) }

// Stop appends a stop at the last position.
func (p *Pattern) Stop() { p.AddStitchRelative(0, 0, STOP) }

// End appends an end marker at the last position.
func (p *Pattern) End() { p.AddStitchRelative(0, 0, END) }

// AddThread appends a thread and returns its index.
func (p *Pattern) AddThread(t Thread) int {
	p.threads = append(p.threads, t)
	return len(p.threads) - 1
}

// SetMetadata stores a metadata value.
func (p *Pattern) SetMetadata(key, value string) {
	if p.metadata == nil {
		p.metadata = make(map[string]string)
	}
	p.metadata[key] = value
}

// Metadata returns the value stored under key.
func (p *Pattern) Metadata(key string) (string, bool) {
	v, ok := p.metadata[key]
	return v, ok
}

// MetadataKeys returns the metadata keys in lexical order.
func (p *Pattern) MetadataKeys() []string {
	keys := maps.Keys(p.metadata)
	slices.Sort(keys)
	return keys
}

func (p *Pattern) Title() string         { return p.metadata[MetaTitle] }
func (p *Pattern) SetTitle(s string)     { p.SetMetadata(MetaTitle, s) }
func (p *Pattern) Author() string        { return p.metadata[MetaAuthor] }
func (p *Pattern) SetAuthor(s string)    { p.SetMetadata(MetaAuthor, s) }
func (p *Pattern) Copyright() string     { return p.metadata[MetaCopyright] }
func (p *Pattern) SetCopyright(s string) { p.SetMetadata(MetaCopyright, s) }

// Stitches returns the stitch sequence. The slice is owned by the pattern
// and must not be modified.
func (p *Pattern) Stitches() []Stitch { return p.stitches }

// Threads returns the thread list. The slice is owned by the pattern.
func (p *Pattern) Threads() []Thread { return p.threads }

// Len returns the number of stitches, commands included.
func (p *Pattern) Len() int { return len(p.stitches) }

// LastPosition returns the position relative insertions start from.
func (p *Pattern) LastPosition() (float64, float64) { return p.lastX, p.lastY }

// Bounds returns the extents of all stitch positions, commands included.
// An empty pattern yields the zero rectangle and ok set to false.
func (p *Pattern) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(p.stitches) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	for _, s := range p.stitches {
		minX = math.Min(minX, s.X)
		minY = math.Min(minY, s.Y)
		maxX = math.Max(maxX, s.X)
		maxY = math.Max(maxY, s.Y)
	}
	return minX, minY, maxX, maxY, true
}

// Width returns the horizontal extent of the pattern.
func (p *Pattern) Width() float64 {
	minX, _, maxX, _, _ := p.Bounds()
	return maxX - minX
}

// Height returns the vertical extent of the pattern.
func (p *Pattern) Height() float64 {
	_, minY, _, maxY, _ := p.Bounds()
	return maxY - minY
}

func (p *Pattern) count(action uint32) int {
	var n int
	for _, s := range p.stitches {
		if s.Action() == action {
			n++
		}
	}
	return n
}

// CountStitches returns the number of STITCH actions.
func (p *Pattern) CountStitches() int { return p.count(STITCH) }

// CountJumps returns the number of JUMP actions.
func (p *Pattern) CountJumps() int { return p.count(JUMP) }

// CountTrims returns the number of TRIM actions.
func (p *Pattern) CountTrims() int { return p.count(TRIM) }

// CountColorChanges returns the number of COLOR_CHANGE actions.
func (p *Pattern) CountColorChanges() int { return p.count(COLOR_CHANGE) }

// segments calls fn with the length of every segment ending in a STITCH
// action. The needle starts at the origin and every command moves it,
// so a jump shortens the following stitch without adding length itself.
func (p *Pattern) segments(fn func(i int, length float64)) {
	var px, py float64
	for i, s := range p.stitches {
		if s.Action() == STITCH {
			fn(i, math.Hypot(s.X-px, s.Y-py))
		}
		px, py = s.X, s.Y
	}
}

// TotalStitchLength returns the sewn length in 0.1mm units. Only segments
// ending in a STITCH count, jumps move the needle without adding length.
func (p *Pattern) TotalStitchLength() float64 {
	var total float64
	p.segments(func(_ int, l float64) { total += l })
	return total
}

// MaxStitchLength returns the longest sewn segment.
func (p *Pattern) MaxStitchLength() float64 {
	var max float64
	p.segments(func(_ int, l float64) { max = math.Max(max, l) })
	return max
}

// AverageStitchLength returns TotalStitchLength divided by the number of
// STITCH actions, or zero when there are none.
func (p *Pattern) AverageStitchLength() float64 {
	n := p.CountStitches()
	if n == 0 {
		return 0
	}
	return p.TotalStitchLength() / float64(n)
}

// Validate checks that every coordinate is finite and within a sane range
// and that the color changes do not run past the thread list.
func (p *Pattern) Validate() error {
	changes := 0
	for i, s := range p.stitches {
		if !s.Valid() {
			return StitchError(ErrInvalidPattern, i, "non-finite coordinate (%v, %v)", s.X, s.Y)
		}
		if math.Abs(s.X) > maxCoordinate || math.Abs(s.Y) > maxCoordinate {
			return StitchError(ErrInvalidPattern, i, "coordinate (%v, %v) out of range", s.X, s.Y)
		}
		if s.Action() == COLOR_CHANGE {
			changes++
			if len(p.threads) > 0 && changes >= len(p.threads) {
				return StitchError(ErrInvalidPattern, i,
					"color change %d past the %d threads", changes, len(p.threads))
			}
		}
	}
	return nil
}

// ThreadIndex returns the index of the thread active at stitch i, that is
// the number of color changes before it.
func (p *Pattern) ThreadIndex(i int) int {
	idx := 0
	for j := 0; j < i && j < len(p.stitches); j++ {
		if p.stitches[j].Action() == COLOR_CHANGE {
			idx++
		}
	}
	return idx
}

// ThreadFor returns the thread active at stitch i. Missing threads are
// substituted with filler colors.
func (p *Pattern) ThreadFor(i int) Thread {
	return p.threadOrFiller(p.ThreadIndex(i))
}

func (p *Pattern) threadOrFiller(idx int) Thread {
	if idx < len(p.threads) {
		return p.threads[idx]
	}
	return FillerThread(idx)
}

// Block is a run of consecutive STITCH positions sewn with one thread.
type Block struct {
	Thread      Thread
	ThreadIndex int
	Points      []Stitch
}

// Blocks splits the pattern into runs of stitches. Any non STITCH command
// ends the current run, color changes also advance the thread.
func (p *Pattern) Blocks() []Block {
	var (
		blocks []Block
		cur    []Stitch
		idx    int
	)
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, Block{Thread: p.threadOrFiller(idx), ThreadIndex: idx, Points: cur})
			cur = nil
		}
	}
	for _, s := range p.stitches {
		if s.Action() == STITCH {
			cur = append(cur, s)
			continue
		}
		flush()
		if s.Action() == COLOR_CHANGE {
			idx++
		}
	}
	flush()
	return blocks
}

// Translate shifts every stitch and the last position by (dx, dy).
func (p *Pattern) Translate(dx, dy float64) {
	for i := range p.stitches {
		p.stitches[i].X += dx
		p.stitches[i].Y += dy
	}
	p.lastX += dx
	p.lastY += dy
}

// Transform applies m to every stitch and to the last position.
func (p *Pattern) Transform(m *Matrix) {
	for i, s := range p.stitches {
		p.stitches[i].X, p.stitches[i].Y = m.Point(s.X, s.Y)
	}
	p.lastX, p.lastY = m.Point(p.lastX, p.lastY)
}

// MoveCenterToOrigin translates the pattern so that the center of its
// bounds, rounded to whole units, lands on the origin.
func (p *Pattern) MoveCenterToOrigin() {
	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok {
		return
	}
	cx := math.Round((minX + maxX) / 2)
	cy := math.Round((minY + maxY) / 2)
	p.Translate(-cx, -cy)
}

// SplitLongStitches replaces every STITCH segment longer than limit with
// evenly spaced stitches no longer than limit. The final point keeps its
// original command. The limit must be positive and finite.
func (p *Pattern) SplitLongStitches(limit float64) error {
	if !(limit > 0) || math.IsInf(limit, 0) {
		return errors.Wrapf(ErrInvalidPattern, "split limit %v", limit)
	}
	out := make([]Stitch, 0, len(p.stitches))
	var px, py float64

	for _, s := range p.stitches {
		if s.Action() == STITCH {
			out = appendSplit(out, px, py, s, limit, STITCH)
		} else {
			out = append(out, s)
		}
		px, py = s.X, s.Y
	}
	p.stitches = out
	return nil
}

// appendSplit appends s preceded by the intermediate points needed to keep
// every segment from (px, py) within limit.
func appendSplit(dst []Stitch, px, py float64, s Stitch, limit float64, cmd uint32) []Stitch {
	dx, dy := s.X-px, s.Y-py
	length := math.Hypot(dx, dy)
	if length > limit {
		n := int(math.Ceil(length / limit))
		for i := 1; i < n; i++ {
			f := float64(i) / float64(n)
			dst = append(dst, Stitch{X: px + dx*f, Y: py + dy*f, Command: cmd})
		}
	}
	return append(dst, s)
}

// RemoveDuplicates drops every stitch equal to its predecessor in position
// and full command word, keeping the first of each run.
func (p *Pattern) RemoveDuplicates() {
	if len(p.stitches) < 2 {
		return
	}
	out := p.stitches[:1]
	for _, s := range p.stitches[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	p.stitches = out
}

// InterpolateTrims inserts a TRIM before the trimAt-th consecutive jump of
// a run once the run has covered at least minDistance. A zero minDistance
// trims on the jump count alone. Each run is trimmed at most once.
func (p *Pattern) InterpolateTrims(trimAt int, minDistance float64) {
	if trimAt <= 0 || len(p.stitches) == 0 {
		return
	}
	out := make([]Stitch, 0, len(p.stitches))
	var (
		run     int
		dist    float64
		trimmed bool
		px, py  float64
	)
	for _, s := range p.stitches {
		switch s.Action() {
		case JUMP:
			run++
			dist += math.Hypot(s.X-px, s.Y-py)
			if !trimmed && run >= trimAt && dist >= minDistance {
				out = append(out, Stitch{X: px, Y: py, Command: TRIM})
				trimmed = true
			}
		case TRIM:
			trimmed = true
		default:
			run, dist, trimmed = 0, 0, false
		}
		out = append(out, s)
		px, py = s.X, s.Y
	}
	p.stitches = out
}

// InterpolateDuplicateColorAsStop turns a color change immediately followed
// by another color change into a STOP, so that the thread list lines up
// with the distinct colors sewn.
func (p *Pattern) InterpolateDuplicateColorAsStop() {
	for i := 0; i+1 < len(p.stitches); i++ {
		if p.stitches[i].Action() == COLOR_CHANGE && p.stitches[i+1].Action() == COLOR_CHANGE {
			p.stitches[i].Command = p.stitches[i].Command&^CommandMask | STOP
		}
	}
}

// FixColorCount appends filler threads until every color block has a thread.
func (p *Pattern) FixColorCount() {
	need := p.CountColorChanges() + 1
	if len(p.stitches) == 0 {
		need = 0
	}
	for len(p.threads) < need {
		p.threads = append(p.threads, FillerThread(len(p.threads)))
	}
}

// Grouping returns the color grouping or nil.
func (p *Pattern) Grouping() *ThreadGrouping { return p.grouping }

// SetGrouping replaces the color grouping.
func (p *Pattern) SetGrouping(g *ThreadGrouping) { p.grouping = g }

// ThreadsInGroup returns the indices of the existing threads in the named group.
func (p *Pattern) ThreadsInGroup(name string) ([]int, bool) {
	if p.grouping == nil {
		return nil, false
	}
	g, ok := p.grouping.Group(name)
	if !ok {
		return nil, false
	}
	var idx []int
	for _, i := range g.Threads() {
		if i < len(p.threads) {
			idx = append(idx, i)
		}
	}
	return idx, true
}

// AutoGroupBySimilarity replaces the grouping with groups of similar colors.
// The threshold is relative to MaxColorDistance and clamped to [0, 1].
//
// This is a single pass greedy clustering, not an optimal one: threads are
// visited in order and each joins the most recently opened group when its
// distance to that group's first thread is within the threshold, otherwise
// it opens a new group named "<prefix> <n>".
func (p *Pattern) AutoGroupBySimilarity(threshold float64, prefix string) *ThreadGrouping {
	threshold = math.Max(0, math.Min(1, threshold))
	limit := threshold * float64(MaxColorDistance)

	tg := NewThreadGrouping("")
	var (
		cur *ColorGroup
		rep Thread
	)
	for i, t := range p.threads {
		if cur != nil && float64(t.Distance(rep)) <= limit {
			cur.AddThread(i)
			continue
		}
		cur = NewColorGroup(groupName(prefix, tg.Len()+1), i)
		cur.DisplayOrder = tg.Len()
		rep = t
		tg.Add(cur)
	}
	p.grouping = tg
	return tg
}

func groupName(prefix string, n int) string {
	if prefix == "" {
		prefix = "Group"
	}
	return prefix + " " + strconv.Itoa(n)
}

// Clone returns a deep copy of the pattern.
func (p *Pattern) Clone() *Pattern {
	c := &Pattern{
		stitches: slices.Clone(p.stitches),
		threads:  slices.Clone(p.threads),
		metadata: make(map[string]string, len(p.metadata)),
		lastX:    p.lastX,
		lastY:    p.lastY,
	}
	for k, v := range p.metadata {
		c.metadata[k] = v
	}
	if p.grouping != nil {
		c.grouping = p.grouping.clone()
	}
	return c
}

// copyHeader copies threads, metadata and grouping of src into p.
func (p *Pattern) copyHeader(src *Pattern) {
	p.threads = slices.Clone(src.threads)
	for k, v := range src.metadata {
		p.SetMetadata(k, v)
	}
	if src.grouping != nil {
		p.grouping = src.grouping.clone()
	}
}
