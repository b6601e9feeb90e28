package utils

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtils_DownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.dst" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("LA:test"))
	}))
	defer srv.Close()

	f, err := DownloadFile(context.Background(), srv.URL+"/designs/Rose.DST")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	assert.Equal(t, ".dst", filepath.Ext(f.Name()))
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "LA:test", string(data))

	z, err := DownloadFile(context.Background(), srv.URL+"/rose.exp.zst")
	require.NoError(t, err)
	defer os.Remove(z.Name())
	defer z.Close()
	assert.True(t, strings.HasSuffix(z.Name(), ".exp.zst"))

	_, err = DownloadFile(context.Background(), srv.URL+"/missing.dst")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = DownloadFile(ctx, srv.URL+"/rose.dst")
	assert.Error(t, err)
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://example.com/designs/rose.dst"))
	assert.False(t, IsValidUrl("designs/rose.dst"))
	assert.False(t, IsValidUrl("-"))
}

func TestUtils_DecorateText(t *testing.T) {
	assert.Equal(t, SuccessColor+"ok"+DefaultColor, DecorateText("ok", SuccessMessage))
	assert.Equal(t, "raw", DecorateText("raw", MessageType(42)))
}

func TestUtils_FormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(2*time.Minute+5*time.Second))
	assert.Equal(t, "3h 0m 1.00s", FormatTime(3*time.Hour+time.Second))
	assert.Equal(t, "1d 1h 1m 1.00s", FormatTime(25*time.Hour+time.Minute+time.Second))
}

func TestUtils_FormatLength(t *testing.T) {
	assert.Equal(t, "12.5mm", FormatLength(12.5))
	assert.Equal(t, "1.25m", FormatLength(1250))
}

func TestUtils_Math(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, 2.5, Max(2.5, -1))
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 10, Clamp(12, 0, 10))
	assert.Equal(t, 0.0, Clamp(-1.0, 0, 1))
	assert.Equal(t, "b", Clamp("b", "a", "c"))
}

// syncBuffer guards a bytes.Buffer for the test's own reads.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestUtils_Spinner(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, "converting", time.Millisecond, false)
	s.StopMsg = "done"

	s.Stop() // not running
	assert.Empty(t, out.String())

	s.Start()
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.SetMessage("writing")
	s.Stop()

	got := out.String()
	assert.Contains(t, got, "converting")
	assert.True(t, strings.HasSuffix(got, "done"))

	// restartable
	s.Start()
	s.Stop()
	assert.True(t, strings.HasSuffix(out.String(), "done"))
}
