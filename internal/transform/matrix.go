package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// Matrix applies a 4x4 homogeneous matrix. Positions are divided by the
// resulting w; normals use the inverse-transpose of the upper-left 3x3.
// A reflecting matrix reverses face winding.
type Matrix struct {
	M mgl64.Mat4
}

// Apply implements mesh.Transform.
func (t Matrix) Apply(m *mesh.Model) error {
	if err := checkFinite("matrix", t.M[:]...); err != nil {
		return err
	}
	return applyLinear(m, t.M)
}

// Then returns the matrix that applies t first and next second.
func (t Matrix) Then(next Matrix) Matrix {
	return Matrix{M: next.M.Mul4(t.M)}
}

// Mirror negates the selected position components. Mirroring an odd number
// of axes reverses face winding so faces keep pointing outwards.
type Mirror struct {
	X, Y, Z bool
}

// MirrorX mirrors across the YZ plane.
func MirrorX() Mirror { return Mirror{X: true} }

// MirrorY mirrors across the XZ plane.
func MirrorY() Mirror { return Mirror{Y: true} }

// MirrorZ mirrors across the XY plane.
func MirrorZ() Mirror { return Mirror{Z: true} }

// Apply implements mesh.Transform.
func (t Mirror) Apply(m *mesh.Model) error {
	return applyLinear(m, mgl64.Scale3D(sign(t.X), sign(t.Y), sign(t.Z)))
}

func sign(mirrored bool) float64 {
	if mirrored {
		return -1
	}
	return 1
}
