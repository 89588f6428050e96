package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/pkg/math"
)

// Twist rotates each vertex about Axis through Center by an angle that grows
// with its signed distance along the axis.
type Twist struct {
	Axis           mgl64.Vec3
	DegreesPerUnit float64
	Center         mgl64.Vec3
}

// TwistX twists about the X axis through the origin.
func TwistX(degreesPerUnit float64) Twist {
	return Twist{Axis: math.AxisX.Vec(), DegreesPerUnit: degreesPerUnit}
}

// TwistY twists about the Y axis through the origin.
func TwistY(degreesPerUnit float64) Twist {
	return Twist{Axis: math.AxisY.Vec(), DegreesPerUnit: degreesPerUnit}
}

// TwistZ twists about the Z axis through the origin.
func TwistZ(degreesPerUnit float64) Twist {
	return Twist{Axis: math.AxisZ.Vec(), DegreesPerUnit: degreesPerUnit}
}

// At returns a copy of t centred on c.
func (t Twist) At(c mgl64.Vec3) Twist {
	t.Center = c
	return t
}

// Apply implements mesh.Transform.
func (t Twist) Apply(m *mesh.Model) error {
	axis, err := checkAxis("twist axis", t.Axis)
	if err != nil {
		return err
	}
	if err := checkFinite("twist", t.DegreesPerUnit, t.Center[0], t.Center[1], t.Center[2]); err != nil {
		return err
	}

	rate := mgl64.DegToRad(t.DegreesPerUnit)
	for i := range m.Mesh.Vertices {
		v := &m.Mesh.Vertices[i]
		along, perp := math.Decompose(v.Position.Sub(t.Center), axis)
		q := mgl64.QuatRotate(along*rate, axis)
		v.Position = t.Center.Add(axis.Mul(along)).Add(q.Rotate(perp))
	}

	m.Mesh.RecomputeNormals()
	return nil
}
