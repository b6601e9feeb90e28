package tambour

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// fillers are substituted for threads missing from a pattern.
var fillers = [...]uint32{
	0x000000, 0x0000FF, 0xFF0000, 0x00FF00, 0xFFFF00,
	0xFF00FF, 0x00FFFF, 0x808080, 0xFFA500, 0x800080,
}

// FillerThread returns the stand-in thread used for color block idx when
// a pattern declares fewer threads than color blocks.
func FillerThread(idx int) Thread {
	if idx < 0 {
		idx = 0
	}
	return Thread{
		Color:       fillers[idx%len(fillers)],
		Description: "filler",
	}
}

// Palette is a named list of threads, usually a manufacturer chart.
type Palette struct {
	Name    string
	Threads []Thread
}

// NewPalette builds a palette from color strings accepted by ThreadFromString.
func NewPalette(name string, colors ...string) (*Palette, error) {
	p := &Palette{Name: name}
	for _, c := range colors {
		t, err := ThreadFromString(c)
		if err != nil {
			return nil, err
		}
		t.Chart = name
		p.Threads = append(p.Threads, t)
	}
	return p, nil
}

// Nearest returns the palette thread closest to the packed RGB color.
func (pl *Palette) Nearest(rgb uint32) (Thread, bool) {
	colors := make([]uint32, len(pl.Threads))
	for i, t := range pl.Threads {
		colors[i] = t.Color
	}
	idx, ok := NearestColorIndex(rgb, colors)
	if !ok {
		return Thread{}, false
	}
	return pl.Threads[idx], true
}

// Quantize replaces every thread of p with its nearest palette entry and
// returns the number of threads whose color changed. The palette entry's
// descriptive fields are carried over.
func (pl *Palette) Quantize(p *Pattern) int {
	changed := 0
	for i, t := range p.threads {
		n, ok := pl.Nearest(t.Color)
		if !ok {
			return 0
		}
		if n.Color != t.Color {
			changed++
		}
		p.threads[i] = n
	}
	return changed
}

// builtin maps the chart names to their thread tables.
var builtin = []struct {
	name    string
	threads []Thread
}{
	{"Husqvarna HUS", husThreads},
	{"Husqvarna SHV", shvThreads},
	{"Janome SEW", sewThreads},
}

// Palettes returns the names of the built-in thread charts.
func Palettes() []string {
	names := make([]string, len(builtin))
	for i, b := range builtin {
		names[i] = b.name
	}
	return names
}

// PaletteByName returns a copy of a built-in chart. The lookup is case
// insensitive and accepts the short names "hus", "shv" and "sew" as well.
func PaletteByName(name string) (*Palette, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, b := range builtin {
		full := strings.ToLower(b.name)
		if key == full || (key != "" && strings.HasSuffix(full, " "+key)) {
			p := &Palette{Name: b.name, Threads: make([]Thread, len(b.threads))}
			copy(p.Threads, b.threads)
			for i := range p.Threads {
				p.Threads[i].Chart = b.name
			}
			return p, nil
		}
	}
	return nil, errors.Errorf("unknown palette %q", name)
}

// ReadPalette reads a palette in the RGB text format: one thread per line
// as three decimal components "R G B". Blank lines and lines starting
// with '#' are skipped.
func ReadPalette(r io.Reader, name string) (*Palette, error) {
	p := &Palette{Name: name}
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 3 {
			return nil, errors.Wrapf(ErrInvalidColor, "line %d: want R G B, got %q", line, text)
		}
		var rgb uint32
		for _, f := range fields[:3] {
			v, err := strconv.ParseUint(f, 10, 8)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidColor, "line %d: component %q", line, f)
			}
			rgb = rgb<<8 | uint32(v)
		}
		t := NewThread(rgb)
		t.Chart = name
		p.Threads = append(p.Threads, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadPalette reads an RGB palette file. The palette is named after the
// file without its extension.
func LoadPalette(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadPalette(f, name)
}

// Write stores the palette in the RGB text format read by ReadPalette.
func (pl *Palette) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, t := range pl.Threads {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", t.Red(), t.Green(), t.Blue()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
