package format

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/esimov/tambour"
	"github.com/google/renameio"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Decode reads a pattern of format f from r into p. Missing threads are
// filled in so that every color block has one.
func (f *Format) Decode(r io.Reader, p *tambour.Pattern) error {
	if !f.CanRead() {
		return errors.Wrapf(ErrUnsupportedFormat, "%s cannot be read", f.Name)
	}
	if err := f.Read(r, p); err != nil {
		return errors.Wrapf(err, "read %s", f.Name)
	}
	// headers may list fewer threads than the stitch data uses
	p.FixColorCount()
	return nil
}

// Encode transcodes p with the format settings and writes the result to w.
// p itself is not modified.
func (f *Format) Encode(w io.Writer, p *tambour.Pattern) error {
	if !f.CanWrite() {
		return errors.Wrapf(ErrUnsupportedFormat, "%s cannot be written", f.Name)
	}
	out, err := tambour.Transcode(p, f.Settings)
	if err != nil {
		return errors.Wrapf(err, "transcode for %s", f.Name)
	}
	if err := f.Write(w, out); err != nil {
		return errors.Wrapf(err, "write %s", f.Name)
	}
	return nil
}

// ReadFile reads the pattern stored at path, choosing the format by extension.
func ReadFile(path string) (*tambour.Pattern, error) {
	f, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadFrom(file, f, IsZstd(path))
}

// ReadFrom reads a pattern of format f from r, optionally zstd compressed.
func ReadFrom(r io.Reader, f *Format, compressed bool) (*tambour.Pattern, error) {
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		defer dec.Close()
		r = dec
	}
	p := tambour.NewPattern()
	if err := f.Decode(bufio.NewReader(r), p); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteTo transcodes p for format f and writes it to w, optionally zstd compressed.
func WriteTo(w io.Writer, f *Format, p *tambour.Pattern, compressed bool) error {
	if !compressed {
		bw := bufio.NewWriter(w)
		if err := f.Encode(bw, p); err != nil {
			return err
		}
		return bw.Flush()
	}
	var raw bytes.Buffer
	if err := f.Encode(&raw, p); err != nil {
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return errors.Wrap(err, "zstd")
	}
	if _, err := enc.Write(raw.Bytes()); err != nil {
		enc.Close()
		return errors.Wrap(err, "zstd")
	}
	return errors.Wrap(enc.Close(), "zstd")
}

// WriteFile writes p to path in the format matching its extension. The
// file is replaced atomically, a failed write leaves any previous file intact.
func WriteFile(path string, p *tambour.Pattern) error {
	f, err := ForPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	o, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer o.Cleanup()

	if err := WriteTo(o, f, p, IsZstd(path)); err != nil {
		return err
	}
	return o.CloseAtomicallyReplace()
}

// Convert reads src and writes it to dst, applying fn to the pattern in
// between when fn is not nil.
func Convert(src, dst string, fn func(*tambour.Pattern) error) (*tambour.Pattern, error) {
	p, err := ReadFile(src)
	if err != nil {
		return nil, err
	}
	if fn != nil {
		if err := fn(p); err != nil {
			return nil, err
		}
	}
	if err := WriteFile(dst, p); err != nil {
		return nil, err
	}
	return p, nil
}
