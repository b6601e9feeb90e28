package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/esimov/tambour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmd_PipeFormat(t *testing.T) {
	f, compressed, err := pipeFormat("dst")
	require.NoError(t, err)
	assert.Equal(t, "dst", f.Name)
	assert.False(t, compressed)

	f, compressed, err = pipeFormat("exp.zst")
	require.NoError(t, err)
	assert.Equal(t, "exp", f.Name)
	assert.True(t, compressed)

	_, _, err = pipeFormat("")
	assert.Error(t, err)
	_, _, err = pipeFormat("pes")
	assert.Error(t, err)
}

func TestCmd_Transform(t *testing.T) {
	defer func(s, r float64, c bool) { *scale, *rotate, *center = s, r, c }(*scale, *rotate, *center)

	p := tambour.NewPattern()
	p.StitchAbs(10, 10)
	p.StitchAbs(30, 10)

	*scale, *rotate, *center = 2, 0, true
	require.NoError(t, transform(p))
	minX, minY, maxX, maxY, ok := p.Bounds()
	require.True(t, ok)
	assert.InDelta(t, -20, minX, 1e-9)
	assert.InDelta(t, 20, maxX, 1e-9)
	assert.InDelta(t, 0, minY, 1e-9)
	assert.InDelta(t, 0, maxY, 1e-9)

	*scale = 0
	assert.Error(t, transform(p))
}

func TestCmd_TransformQuantizes(t *testing.T) {
	defer func(c *tambour.Palette) { chart = c }(chart)

	var err error
	chart, err = resolvePalette("hus")
	require.NoError(t, err)

	p := tambour.NewPattern()
	p.AddThread(tambour.NewThread(0x020202))
	p.StitchAbs(1, 1)
	require.NoError(t, transform(p))
	assert.Equal(t, "Black", p.Threads()[0].Description)
}

func TestCmd_ResolvePalette(t *testing.T) {
	pl, err := resolvePalette("sew")
	require.NoError(t, err)
	assert.Equal(t, "Janome SEW", pl.Name)

	path := filepath.Join(t.TempDir(), "mine.rgb")
	require.NoError(t, os.WriteFile(path, []byte("10 20 30\n"), 0o644))
	pl, err = resolvePalette(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", pl.Name)
	assert.Len(t, pl.Threads, 1)

	_, err = resolvePalette(filepath.Join(t.TempDir(), "none.rgb"))
	assert.Error(t, err)
}

func TestCmd_CleanupRemovesDownload(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tambour-*.dst")
	require.NoError(t, err)
	f.Close()

	tmpFile = f.Name()
	cleanup()
	_, err = os.Stat(f.Name())
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, tmpFile)

	cleanup() // nothing left to remove
}
