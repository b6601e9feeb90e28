package ternary

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTernary_Max(t *testing.T) {
	assert.Equal(t, 0, Max(0))
	assert.Equal(t, 1, Max(1))
	assert.Equal(t, 13, Max(3))
	assert.Equal(t, 121, Max(5))
	assert.Equal(t, 121, DSTX.Max())
	assert.Equal(t, 3, DSTY.Size())
}

func TestTernary_RoundTrip(t *testing.T) {
	for _, l := range []Layout{DSTX, DSTY} {
		for v := -l.Max(); v <= l.Max(); v++ {
			buf := make([]byte, 3)
			require.NoError(t, Encode(v, l, buf))
			assert.Equal(t, v, Decode(buf, l))
		}
	}
}

func TestTernary_SharedRecord(t *testing.T) {
	for x := -121; x <= 121; x += 7 {
		for y := -121; y <= 121; y += 11 {
			buf := []byte{0, 0, 0x03}
			require.NoError(t, Encode(x, DSTX, buf))
			require.NoError(t, Encode(y, DSTY, buf))

			assert.Equal(t, x, Decode(buf, DSTX))
			assert.Equal(t, y, Decode(buf, DSTY))
			assert.Equal(t, byte(0x03), buf[2]&0x03)
		}
	}
}

func TestTernary_KnownBits(t *testing.T) {
	tests := []struct {
		v    int
		l    Layout
		want []byte
	}{
		{1, DSTX, []byte{0x01, 0, 0}},
		{-1, DSTX, []byte{0x02, 0, 0}},
		{2, DSTX, []byte{0x02, 0x01, 0}},
		{121, DSTX, []byte{0x05, 0x05, 0x04}},
		{-121, DSTX, []byte{0x0A, 0x0A, 0x08}},
		{1, DSTY, []byte{0x80, 0, 0}},
		{81, DSTY, []byte{0, 0, 0x20}},
		{-40, DSTY, []byte{0x50, 0x50, 0}},
	}
	for _, tc := range tests {
		buf := make([]byte, 3)
		require.NoError(t, Encode(tc.v, tc.l, buf))
		assert.Equal(t, tc.want, buf, "value %d", tc.v)
	}
}

func TestTernary_RangeExceeded(t *testing.T) {
	buf := make([]byte, 3)
	for _, v := range []int{122, -122, 1000} {
		err := Encode(v, DSTX, buf)
		assert.True(t, errors.Is(err, ErrRangeExceeded), "value %d", v)
	}
	assert.Error(t, Encode(1, DSTX, make([]byte, 2)))
}

func TestTernary_CustomLayout(t *testing.T) {
	l := Layout{{Byte: 1, Pos: 7, Neg: 0}, {Byte: 0, Pos: 3, Neg: 4}}
	assert.Equal(t, 4, l.Max())
	for v := -4; v <= 4; v++ {
		buf := make([]byte, 2)
		require.NoError(t, Encode(v, l, buf))
		assert.Equal(t, v, Decode(buf, l))
	}
}

func BenchmarkTernary_Encode(b *testing.B) {
	buf := make([]byte, 3)
	for i := 0; i < b.N; i++ {
		buf[0], buf[1], buf[2] = 0, 0, 0
		_ = Encode(i%243-121, DSTX, buf)
	}
}
