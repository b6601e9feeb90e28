package tambour

import (
	"math"

	"github.com/pkg/errors"
)

const matrixEpsilon = 1e-10

// Matrix is a 3x3 affine transformation stored in row major order.
// Points are treated as row vectors, [x y 1] * M, so the translation
// lives in the last row.
type Matrix struct {
	m [9]float64
}

// NewMatrix returns the identity matrix.
func NewMatrix() *Matrix {
	return &Matrix{m: identity()}
}

func identity() [9]float64 {
	return [9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Values returns a copy of the matrix cells.
func (m *Matrix) Values() [9]float64 {
	return m.m
}

// Reset sets the matrix back to identity.
func (m *Matrix) Reset() {
	m.m = identity()
}

// Multiply right-multiplies m by o in place and returns m.
func (m *Matrix) Multiply(o *Matrix) *Matrix {
	m.m = mul(m.m, o.m)
	return m
}

func mul(a, b [9]float64) [9]float64 {
	var r [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = a[i*3]*b[j] + a[i*3+1]*b[3+j] + a[i*3+2]*b[6+j]
		}
	}
	return r
}

// PostTranslate applies a translation after the current transformation.
func (m *Matrix) PostTranslate(dx, dy float64) *Matrix {
	m.m = mul(m.m, [9]float64{
		1, 0, 0,
		0, 1, 0,
		dx, dy, 1,
	})
	return m
}

// PostScale applies a scale around (ox, oy) after the current transformation.
func (m *Matrix) PostScale(sx, sy, ox, oy float64) *Matrix {
	m.PostTranslate(-ox, -oy)
	m.m = mul(m.m, [9]float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	})
	return m.PostTranslate(ox, oy)
}

// PostScaleUniform scales both axes by s around (ox, oy).
func (m *Matrix) PostScaleUniform(s, ox, oy float64) *Matrix {
	return m.PostScale(s, s, ox, oy)
}

// PostRotate applies a rotation of deg degrees around (ox, oy).
func (m *Matrix) PostRotate(deg, ox, oy float64) *Matrix {
	rad := deg * math.Pi / 180
	ct, st := math.Cos(rad), math.Sin(rad)

	m.PostTranslate(-ox, -oy)
	m.m = mul(m.m, [9]float64{
		ct, st, 0,
		-st, ct, 0,
		0, 0, 1,
	})
	return m.PostTranslate(ox, oy)
}

// Point transforms the point (x, y).
func (m *Matrix) Point(x, y float64) (float64, float64) {
	return x*m.m[0] + y*m.m[3] + m.m[6],
		x*m.m[1] + y*m.m[4] + m.m[7]
}

// Determinant returns the determinant of the matrix.
func (m *Matrix) Determinant() float64 {
	a := m.m
	return a[0]*(a[4]*a[8]-a[5]*a[7]) -
		a[1]*(a[3]*a[8]-a[5]*a[6]) +
		a[2]*(a[3]*a[7]-a[4]*a[6])
}

// Inverse returns a new matrix undoing m. It fails with ErrSingular when
// the determinant is too close to zero.
func (m *Matrix) Inverse() (*Matrix, error) {
	det := m.Determinant()
	if math.Abs(det) < matrixEpsilon {
		return nil, errors.Wrapf(ErrSingular, "determinant %g", det)
	}
	a := m.m
	inv := 1 / det

	return &Matrix{m: [9]float64{
		(a[4]*a[8] - a[5]*a[7]) * inv,
		(a[2]*a[7] - a[1]*a[8]) * inv,
		(a[1]*a[5] - a[2]*a[4]) * inv,

		(a[5]*a[6] - a[3]*a[8]) * inv,
		(a[0]*a[8] - a[2]*a[6]) * inv,
		(a[2]*a[3] - a[0]*a[5]) * inv,

		(a[3]*a[7] - a[4]*a[6]) * inv,
		(a[1]*a[6] - a[0]*a[7]) * inv,
		(a[0]*a[4] - a[1]*a[3]) * inv,
	}}, nil
}

// IsIdentity reports whether every cell is within a small tolerance of the identity.
func (m *Matrix) IsIdentity() bool {
	id := identity()
	for i, v := range m.m {
		if math.Abs(v-id[i]) > matrixEpsilon {
			return false
		}
	}
	return true
}

// Clone returns a copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{m: m.m}
}
