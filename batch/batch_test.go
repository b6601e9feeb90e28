package batch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/esimov/tambour"
	"github.com/esimov/tambour/format"
	_ "github.com/esimov/tambour/format/dst"
	_ "github.com/esimov/tambour/format/exp"
	_ "github.com/esimov/tambour/format/tsc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStar() *tambour.Pattern {
	p := tambour.NewPattern()
	p.AddThread(tambour.NewThread(0xFFD700))
	for i := 0; i < 5; i++ {
		p.Stitch(40, 10)
		p.Stitch(-40, 10)
	}
	p.End()
	return p
}

// newTree creates src holding three pattern files and one unrelated file.
func newTree(t *testing.T) (src, dst string) {
	t.Helper()
	root := t.TempDir()
	src, dst = filepath.Join(root, "in"), filepath.Join(root, "out")

	for _, name := range []string{"a.dst", "sub/b.exp", "c.tsc.zst"} {
		require.NoError(t, format.WriteFile(filepath.Join(src, name), newStar()))
	}
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("hello"), 0644))
	return src, dst
}

func TestBatch_Convert(t *testing.T) {
	assert := assert.New(t)
	src, dst := newTree(t)

	var seen int32
	c := &Converter{
		Src:    src,
		Dst:    dst,
		Target: "exp",
		OnResult: func(Result) {
			atomic.AddInt32(&seen, 1)
		},
	}
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, res.Err())

	assert.Equal(3, res.Converted)
	assert.Equal(0, res.Failed)
	assert.Equal(int32(3), atomic.LoadInt32(&seen))

	var dsts []string
	for _, r := range res.Items {
		rel, err := filepath.Rel(dst, r.Dst)
		require.NoError(t, err)
		dsts = append(dsts, rel)
		assert.Equal(10, r.Stitches)
	}
	assert.Equal([]string{"a.exp", "c.exp", filepath.Join("sub", "b.exp")}, dsts)

	for _, name := range dsts {
		p, err := format.ReadFile(filepath.Join(dst, name))
		require.NoError(t, err)
		assert.Equal(10, p.CountStitches())
	}
}

func TestBatch_SkipAndOverwrite(t *testing.T) {
	src, dst := newTree(t)
	c := &Converter{Src: src, Dst: dst, Target: "tsc", Workers: 2, Compress: true}

	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Converted)
	assert.FileExists(t, filepath.Join(dst, "sub", "b.tsc.zst"))

	res, err = c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Converted)
	assert.Equal(t, 3, res.Skipped)

	c.Overwrite = true
	c.Transform = func(p *tambour.Pattern) error {
		p.Translate(5, 5)
		return nil
	}
	res, err = c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Converted)

	p, err := format.ReadFile(filepath.Join(dst, "a.tsc.zst"))
	require.NoError(t, err)
	minX, minY, _, _, _ := p.Bounds()
	assert.Equal(t, 5.0, minX)
	assert.Equal(t, 15.0, minY)
}

func TestBatch_FailedFile(t *testing.T) {
	src, dst := newTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.tsc"), []byte("TSC1"), 0644))

	c := &Converter{Src: src, Dst: dst, Target: "dst"}
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Converted)
	assert.Equal(t, 1, res.Failed)
	assert.True(t, errors.Is(res.Err(), tambour.ErrTruncated))
	assert.NoFileExists(t, filepath.Join(dst, "broken.dst"))
}

func TestBatch_TransformError(t *testing.T) {
	src, dst := newTree(t)
	c := &Converter{
		Src:       src,
		Dst:       dst,
		Target:    "dst",
		Transform: func(*tambour.Pattern) error { return errors.New("refused") },
	}
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Failed)
	assert.EqualError(t, errors.Cause(res.Err()), "refused")
}

func TestBatch_DstInsideSrc(t *testing.T) {
	src, _ := newTree(t)
	dst := filepath.Join(src, "converted")

	c := &Converter{Src: src, Dst: dst, Target: "dst"}
	_, err := c.Run(context.Background())
	require.NoError(t, err)

	// A second run must not pick up its own output.
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
}

func TestBatch_Invalid(t *testing.T) {
	src, dst := newTree(t)

	_, err := (&Converter{Src: src, Dst: dst, Target: "pes"}).Run(context.Background())
	assert.True(t, errors.Is(err, format.ErrUnsupportedFormat))

	_, err = (&Converter{Src: filepath.Join(src, "a.dst"), Dst: dst, Target: "exp"}).Run(context.Background())
	assert.Error(t, err)

	_, err = (&Converter{Src: filepath.Join(src, "missing"), Dst: dst, Target: "exp"}).Run(context.Background())
	assert.True(t, os.IsNotExist(err))
}

func TestBatch_Cancelled(t *testing.T) {
	src, dst := newTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Converter{Src: src, Dst: dst, Target: "exp"}).Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBatch_OutputName(t *testing.T) {
	assert.Equal(t, "a.exp", outputName("a.dst", ".exp", false))
	assert.Equal(t, "x/a.exp.zst", outputName("x/a.dst.zst", ".exp", true))
	assert.Equal(t, "noext.dst", outputName("noext", ".dst", false))
}
