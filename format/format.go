// Package format maps file format names and extensions to reader and writer
// functions. Format implementations register themselves from their init
// function, so programs import them for their side effect:
//
//	import _ "github.com/esimov/tambour/format/dst"
//
// Paths ending in ".zst" are transparently decompressed on read and
// compressed on write.
package format

import (
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/esimov/tambour"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ZstdExt is the extension of zstd wrapped files.
const ZstdExt = ".zst"

// ErrUnsupportedFormat is returned for unknown names and extensions.
var ErrUnsupportedFormat = tambour.ErrUnsupportedFormat

// ReadFunc decodes a stream into a caller owned pattern. On error the
// pattern may be partially populated and must be discarded.
type ReadFunc func(r io.Reader, p *tambour.Pattern) error

// WriteFunc encodes a pattern. Patterns are expected to be transcoded with
// the format settings first.
type WriteFunc func(w io.Writer, p *tambour.Pattern) error

// Format describes one file format.
type Format struct {
	Name        string
	Description string
	Extensions  []string // lower case, with the leading dot
	Settings    tambour.EncoderSettings
	Read        ReadFunc
	Write       WriteFunc
}

// CanRead reports whether the format has a reader.
func (f *Format) CanRead() bool { return f.Read != nil }

// CanWrite reports whether the format has a writer.
func (f *Format) CanWrite() bool { return f.Write != nil }

var (
	mu     sync.RWMutex
	byName = map[string]*Format{}
	byExt  = map[string]*Format{}
)

// Register adds a format to the registry. It fails when the name or one of
// the extensions is already taken.
func Register(f Format) error {
	if f.Name == "" {
		return errors.New("format: empty name")
	}
	name := strings.ToLower(f.Name)

	mu.Lock()
	defer mu.Unlock()

	if _, ok := byName[name]; ok {
		return errors.Errorf("format: %q already registered", name)
	}
	for _, ext := range f.Extensions {
		if _, ok := byExt[strings.ToLower(ext)]; ok {
			return errors.Errorf("format: extension %q already registered", ext)
		}
	}
	ff := f
	byName[name] = &ff
	for _, ext := range f.Extensions {
		byExt[strings.ToLower(ext)] = &ff
	}
	return nil
}

// MustRegister is like Register but panics on error. Format packages call
// it from init.
func MustRegister(f Format) {
	if err := Register(f); err != nil {
		panic(err)
	}
}

// Lookup returns the format registered under name, case-insensitive.
func Lookup(name string) (*Format, error) {
	mu.RLock()
	defer mu.RUnlock()

	if f, ok := byName[strings.ToLower(name)]; ok {
		return f, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", name)
}

// ForPath returns the format matching the extension of path. A trailing
// ".zst" is ignored.
func ForPath(path string) (*Format, error) {
	ext := Ext(path)

	mu.RLock()
	defer mu.RUnlock()

	if f, ok := byExt[ext]; ok {
		return f, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", filepath.Base(path))
}

// Ext returns the lower case format extension of path with ".zst" stripped.
func Ext(path string) string {
	p := strings.ToLower(path)
	p = strings.TrimSuffix(p, ZstdExt)
	return filepath.Ext(p)
}

// IsZstd reports whether path names a zstd wrapped file.
func IsZstd(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ZstdExt)
}

// Formats returns the registered formats sorted by name.
func Formats() []*Format {
	mu.RLock()
	defer mu.RUnlock()

	fs := maps.Values(byName)
	slices.SortFunc(fs, func(a, b *Format) bool {
		return a.Name < b.Name
	})
	return fs
}

// Extensions returns every registered extension, sorted.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()

	exts := maps.Keys(byExt)
	slices.Sort(exts)
	return exts
}
