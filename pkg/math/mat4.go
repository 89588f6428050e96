package math

import "github.com/go-gl/mathgl/mgl64"

// NormalMatrix returns the cofactor matrix of m, which is det(m) times the
// inverse-transpose. It transforms normals correctly for any linear map and
// stays finite when m is singular. Normalize the results.
func NormalMatrix(m mgl64.Mat3) mgl64.Mat3 {
	c0, c1, c2 := m.Col(0), m.Col(1), m.Col(2)
	return mgl64.Mat3FromCols(c1.Cross(c2), c2.Cross(c0), c0.Cross(c1))
}

// TransformPoint transforms p as a homogeneous point (w=1) and divides by
// the resulting w. It reports false when w is too close to zero.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) (mgl64.Vec3, bool) {
	v := m.Mul4x1(p.Vec4(1))
	w := v[3]
	if w > -Epsilon && w < Epsilon {
		return mgl64.Vec3{}, false
	}
	if w == 1 {
		return v.Vec3(), true
	}
	return v.Vec3().Mul(1 / w), true
}

// TransformDirection transforms d by the upper-left 3x3 of m (ignores translation).
func TransformDirection(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	return m.Mat3().Mul3x1(d)
}
