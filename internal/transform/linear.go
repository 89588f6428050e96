// Package transform provides affine, quaternion, deform and projection
// transforms over mesh models.
package transform

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/pkg/math"
)

// applyLinear transforms positions as homogeneous points and normals by the
// cofactor of the upper-left 3x3, flipping winding when the map reflects.
// Every vertex is checked before any is written.
func applyLinear(m *mesh.Model, mat mgl64.Mat4) error {
	verts := m.Mesh.Vertices
	positions := make([]mgl64.Vec3, len(verts))
	for i, v := range verts {
		p, ok := math.TransformPoint(mat, v.Position)
		if !ok {
			return fmt.Errorf("%w: vertex %d maps to w=0", mesh.ErrDegenerateGeometry, i)
		}
		positions[i] = p
	}

	linear := mat.Mat3()
	det := linear.Det()
	normals := math.NormalMatrix(linear)
	if det < 0 {
		normals = normals.Mul(-1)
	}

	for i := range verts {
		verts[i].Position = positions[i]
		if math.IsZero(verts[i].Normal) {
			continue
		}
		verts[i].Normal = math.NormalizeOr(normals.Mul3x1(verts[i].Normal), mesh.DefaultNormal)
	}

	if det < 0 {
		m.Mesh.FlipWinding()
	}
	return nil
}

// checkFinite rejects NaN and infinite parameters.
func checkFinite(name string, values ...float64) error {
	for _, v := range values {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", mesh.ErrInvalidParameter, name, v)
		}
	}
	return nil
}

func checkAxis(name string, axis mgl64.Vec3) (mgl64.Vec3, error) {
	if err := checkFinite(name, axis[:]...); err != nil {
		return mgl64.Vec3{}, err
	}
	if math.IsZero(axis) {
		return mgl64.Vec3{}, fmt.Errorf("%w: %s must be non-zero", mesh.ErrInvalidParameter, name)
	}
	return axis.Normalize(), nil
}

func checkRange(min, max float64) error {
	if err := checkFinite("range", min, max); err != nil {
		return err
	}
	if min >= max {
		return fmt.Errorf("%w: range min %v must be below max %v", mesh.ErrInvalidParameter, min, max)
	}
	return nil
}
