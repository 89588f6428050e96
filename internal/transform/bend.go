package transform

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/pkg/math"
)

// Bend curls the slab Min <= p.Direction <= Max around Axis onto a circular
// arc of total angle Degrees.
//
// The bend angle at a vertex is proportional to its fraction of the range,
// which keeps arc length along the neutral plane through the origin.
// Vertices before Min stay put; vertices past Max are carried rigidly
// with the end of the arc.
type Bend struct {
	Axis      mgl64.Vec3
	Direction mgl64.Vec3
	Degrees   float64
	Min, Max  float64
}

// BendX bends around the X axis along Y.
func BendX(degrees, min, max float64) Bend {
	return Bend{Axis: math.AxisX.Vec(), Direction: math.AxisY.Vec(), Degrees: degrees, Min: min, Max: max}
}

// BendY bends around the Y axis along X.
func BendY(degrees, min, max float64) Bend {
	return Bend{Axis: math.AxisY.Vec(), Direction: math.AxisX.Vec(), Degrees: degrees, Min: min, Max: max}
}

// BendZ bends around the Z axis along X.
func BendZ(degrees, min, max float64) Bend {
	return Bend{Axis: math.AxisZ.Vec(), Direction: math.AxisX.Vec(), Degrees: degrees, Min: min, Max: max}
}

// Apply implements mesh.Transform.
func (b Bend) Apply(m *mesh.Model) error {
	axis, err := checkAxis("bend axis", b.Axis)
	if err != nil {
		return err
	}
	if err := checkFinite("bend angle", b.Degrees); err != nil {
		return err
	}
	if err := checkRange(b.Min, b.Max); err != nil {
		return err
	}
	dir, err := math.Orthogonalize(b.Direction, axis)
	if err != nil {
		return fmt.Errorf("%w: bend direction must not be parallel to the axis", mesh.ErrInvalidParameter)
	}

	theta := mgl64.DegToRad(b.Degrees)
	if gomath.Abs(theta) > 1e-9 {
		length := b.Max - b.Min
		radius := length / theta
		// Centre of curvature, on the side the direction turns towards.
		center := dir.Mul(b.Min).Add(axis.Cross(dir).Mul(radius))

		for i := range m.Mesh.Vertices {
			v := &m.Mesh.Vertices[i]
			t := v.Position.Dot(dir)
			switch {
			case t <= b.Min:
			case t >= b.Max:
				v.Position = math.RotateAbout(v.Position.Sub(dir.Mul(length)), axis, theta, center)
			default:
				travel := t - b.Min
				v.Position = math.RotateAbout(v.Position.Sub(dir.Mul(travel)), axis, theta*travel/length, center)
			}
		}
	}

	m.Mesh.RecomputeNormals()
	return nil
}
