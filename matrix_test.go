package tambour

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix_Identity(t *testing.T) {
	m := NewMatrix()
	assert.True(t, m.IsIdentity())

	x, y := m.Point(3.5, -7)
	assert.Equal(t, 3.5, x)
	assert.Equal(t, -7.0, y)

	m.PostTranslate(1, 0)
	assert.False(t, m.IsIdentity())
	m.Reset()
	assert.True(t, m.IsIdentity())
}

func TestMatrix_PostOperationsReadInOrder(t *testing.T) {
	// Translate first, then scale around the origin: (1+1)*10.
	m := NewMatrix().PostTranslate(1, 0).PostScale(10, 10, 0, 0)
	x, y := m.Point(1, 1)
	assert.InDelta(t, 20, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)

	// Scale first, then translate: 1*10+1.
	m = NewMatrix().PostScaleUniform(10, 0, 0).PostTranslate(1, 0)
	x, _ = m.Point(1, 1)
	assert.InDelta(t, 11, x, 1e-9)
}

func TestMatrix_ScaleAroundOrigin(t *testing.T) {
	m := NewMatrix().PostScale(2, 3, 10, 10)
	x, y := m.Point(10, 10)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)

	x, y = m.Point(11, 11)
	assert.InDelta(t, 12, x, 1e-9)
	assert.InDelta(t, 13, y, 1e-9)
}

func TestMatrix_RotateThenUnrotate(t *testing.T) {
	points := [][2]float64{{0, 0}, {100, 0}, {-35.5, 12.25}, {1e4, -3e3}}
	for _, deg := range []float64{0, 1, 45, 90, 137.5, 180, -270, 359} {
		m := NewMatrix().PostRotate(deg, 12, -7).PostRotate(-deg, 12, -7)
		for _, pt := range points {
			x, y := m.Point(pt[0], pt[1])
			assert.InDelta(t, pt[0], x, 1e-6, "deg %v", deg)
			assert.InDelta(t, pt[1], y, 1e-6, "deg %v", deg)
		}
	}
}

func TestMatrix_RotateAroundPoint(t *testing.T) {
	m := NewMatrix().PostRotate(90, 10, 10)
	x, y := m.Point(20, 10)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)
}

func TestMatrix_Inverse(t *testing.T) {
	m := NewMatrix().PostTranslate(5, -3).PostRotate(30, 0, 0).PostScale(2, 0.5, 1, 1)
	inv, err := m.Inverse()
	require.NoError(t, err)

	assert.True(t, m.Clone().Multiply(inv).IsIdentity())

	x, y := m.Point(7, 9)
	x, y = inv.Point(x, y)
	assert.InDelta(t, 7, x, 1e-9)
	assert.InDelta(t, 9, y, 1e-9)
}

func TestMatrix_SingularInverse(t *testing.T) {
	m := NewMatrix().PostScale(0, 1, 0, 0)
	assert.Zero(t, math.Abs(m.Determinant()))

	_, err := m.Inverse()
	assert.True(t, errors.Is(err, ErrSingular))
}
