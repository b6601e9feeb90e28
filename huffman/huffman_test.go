package huffman

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kraft(lengths []uint8) float64 {
	var sum float64
	for _, l := range lengths {
		if l > 0 {
			sum += 1 / float64(uint(1)<<l)
		}
	}
	return sum
}

func TestHuffman_BuildLengths(t *testing.T) {
	assert := assert.New(t)

	lengths, err := BuildLengths([]int{5, 0, 1, 1, 2}, MaxBits)
	require.NoError(t, err)
	assert.Equal([]uint8{1, 0, 3, 3, 2}, lengths)
	assert.Equal(1.0, kraft(lengths))

	lengths, err = BuildLengths([]int{0, 0, 9}, MaxBits)
	require.NoError(t, err)
	assert.Equal([]uint8{0, 0, 1}, lengths)

	lengths, err = BuildLengths(make([]int, 4), MaxBits)
	require.NoError(t, err)
	assert.Equal([]uint8{0, 0, 0, 0}, lengths)

	_, err = BuildLengths([]int{1, 1, 1, 1, 1}, 2)
	assert.Error(err)
}

func TestHuffman_LengthLimit(t *testing.T) {
	// Fibonacci frequencies produce a maximally skewed tree.
	freq := make([]int, 30)
	a, b := 1, 1
	for i := range freq {
		freq[i] = a
		a, b = b, a+b
	}
	for _, max := range []int{5, 8, MaxBits} {
		lengths, err := BuildLengths(freq, max)
		require.NoError(t, err)
		for i, l := range lengths {
			assert.LessOrEqual(t, int(l), max, "symbol %d", i)
			assert.NotZero(t, l)
		}
		assert.Equal(t, 1.0, kraft(lengths), "max %d", max)
	}
}

func TestHuffman_Deterministic(t *testing.T) {
	freq := []int{3, 3, 3, 3, 7, 7, 1, 1}
	a, err := BuildLengths(freq, MaxBits)
	require.NoError(t, err)
	b, err := BuildLengths(freq, MaxBits)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHuffman_CanonicalCodes(t *testing.T) {
	assert := assert.New(t)

	// The example from RFC 1951 section 3.2.2.
	code, err := NewCode([]uint8{3, 3, 3, 3, 3, 2, 4, 4})
	require.NoError(t, err)

	want := []uint32{0b010, 0b011, 0b100, 0b101, 0b110, 0b00, 0b1110, 0b1111}
	for s, c := range want {
		assert.Equal(c, code.Bits(s), "symbol %d", s)
	}
	assert.Equal(uint8(4), code.Len(7))

	_, err = NewCode([]uint8{1, 1, 1})
	assert.True(errors.Is(err, ErrCorrupt))
}

func TestHuffman_BitRoundTrip(t *testing.T) {
	w := &BitWriter{}
	w.WriteBits(0b101, 3)
	w.WriteBits(0xFF, 8)
	w.WriteBits(0, 2)
	out := w.Bytes()
	assert.Equal(t, []byte{0b10111111, 0b11100000}, out)

	r := NewBitReader(out, 0)
	var bits []uint
	for i := 0; i < 16; i++ {
		b, err := r.ReadBit()
		require.NoError(t, err)
		bits = append(bits, b)
	}
	assert.Equal(t, []uint{1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0}, bits)

	_, err := r.ReadBit()
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestHuffman_RoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	skewed := make([]byte, 5000)
	for i := range skewed {
		skewed[i] = byte(int(rnd.ExpFloat64()*4) & 0xFF)
	}
	uniform := make([]byte, 4096)
	rnd.Read(uniform)
	alphabet := make([]byte, 256)
	for i := range alphabet {
		alphabet[i] = byte(i)
	}

	cases := map[string][][]byte{
		"none":     {},
		"empty":    {{}},
		"single":   {bytes.Repeat([]byte{7}, 33)},
		"three":    {[]byte("stitch stitch jump trim"), skewed, uniform},
		"mixed":    {{}, {0}, {0, 255, 0, 255}},
		"alphabet": {alphabet},
	}
	for name, streams := range cases {
		data, err := Compress(streams)
		require.NoError(t, err, name)

		got, err := Decompress(data)
		require.NoError(t, err, name)
		require.Len(t, got, len(streams), name)
		for i := range streams {
			assert.Equal(t, streams[i], got[i], "%s stream %d", name, i)
		}
	}
}

func TestHuffman_CompressesSkewedData(t *testing.T) {
	in := append(bytes.Repeat([]byte{0}, 1000), 1, 2, 3)
	data, err := Compress([][]byte{in})
	require.NoError(t, err)
	assert.Less(t, len(data), len(in)/2)
}

func TestHuffman_Truncated(t *testing.T) {
	data, err := Compress([][]byte{[]byte("a fairly ordinary run of stitches"), {1, 2, 3}})
	require.NoError(t, err)

	for n := 0; n < len(data); n++ {
		_, err := Decompress(data[:n])
		require.Error(t, err, "length %d", n)
		assert.True(t, errors.Is(err, ErrTruncated) || errors.Is(err, ErrCorrupt), "length %d: %v", n, err)
	}
	_, err = Decompress(data[:1])
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestHuffman_Corrupt(t *testing.T) {
	data, err := Compress([][]byte{[]byte("abcabcabd")})
	require.NoError(t, err)

	bad := append([]byte(nil), data...)
	bad[0] = 'X'
	_, err = Decompress(bad)
	assert.True(t, errors.Is(err, ErrCorrupt))

	bad = append([]byte(nil), data...)
	bad[2] = 9
	_, err = Decompress(bad)
	assert.True(t, errors.Is(err, ErrCorrupt))

	// Over-subscribe the table: every symbol gets a one bit code.
	bad = append([]byte(nil), data...)
	for i := 0; i < tableLen; i++ {
		bad[5+i] = 0x11
	}
	_, err = Decompress(bad)
	assert.True(t, errors.Is(err, ErrCorrupt))

	_, err = Decompress(append(append([]byte(nil), data...), 0))
	assert.True(t, errors.Is(err, ErrCorrupt))

	// Declared symbol count larger than the payload can hold.
	bad = append([]byte(nil), data...)
	bad[4] = 0x7F
	_, err = Decompress(bad)
	assert.True(t, errors.Is(err, ErrTruncated) || errors.Is(err, ErrCorrupt))
}

func TestHuffman_TooManyStreams(t *testing.T) {
	_, err := Compress(make([][]byte, MaxStreams+1))
	assert.Error(t, err)
}

func BenchmarkHuffman_Compress(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	streams := make([][]byte, 3)
	for i := range streams {
		streams[i] = make([]byte, 1<<14)
		for j := range streams[i] {
			streams[i][j] = byte(int(rnd.NormFloat64()*10) & 0xFF)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Compress(streams)
	}
}

func BenchmarkHuffman_Decompress(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	stream := make([]byte, 1<<14)
	for j := range stream {
		stream[j] = byte(int(rnd.NormFloat64()*10) & 0xFF)
	}
	data, _ := Compress([][]byte{stream})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decompress(data)
	}
}
