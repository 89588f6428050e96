package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/pkg/math"
)

// Scale multiplies positions about the origin. A zero factor flattens the
// mesh along that axis; a negative one mirrors it.
type Scale struct {
	X, Y, Z float64
}

// UniformScale scales all axes by s.
func UniformScale(s float64) Scale {
	return Scale{X: s, Y: s, Z: s}
}

// Apply implements mesh.Transform.
func (s Scale) Apply(m *mesh.Model) error {
	if err := checkFinite("scale", s.X, s.Y, s.Z); err != nil {
		return err
	}
	return applyLinear(m, mgl64.Scale3D(s.X, s.Y, s.Z))
}

// Translate offsets positions. Normals are unchanged.
type Translate struct {
	X, Y, Z float64
}

// TranslateBy creates a translation from a vector.
func TranslateBy(d mgl64.Vec3) Translate {
	return Translate{X: d[0], Y: d[1], Z: d[2]}
}

// Apply implements mesh.Transform.
func (t Translate) Apply(m *mesh.Model) error {
	if err := checkFinite("translation", t.X, t.Y, t.Z); err != nil {
		return err
	}
	d := mgl64.Vec3{t.X, t.Y, t.Z}
	for i := range m.Mesh.Vertices {
		m.Mesh.Vertices[i].Position = m.Mesh.Vertices[i].Position.Add(d)
	}
	return nil
}

// Rotate turns the mesh by Degrees about Axis through the origin,
// following the right-hand rule.
type Rotate struct {
	Axis    mgl64.Vec3
	Degrees float64
}

// RotateX rotates about the X axis.
func RotateX(degrees float64) Rotate {
	return Rotate{Axis: math.AxisX.Vec(), Degrees: degrees}
}

// RotateY rotates about the Y axis.
func RotateY(degrees float64) Rotate {
	return Rotate{Axis: math.AxisY.Vec(), Degrees: degrees}
}

// RotateZ rotates about the Z axis.
func RotateZ(degrees float64) Rotate {
	return Rotate{Axis: math.AxisZ.Vec(), Degrees: degrees}
}

// Apply implements mesh.Transform.
func (r Rotate) Apply(m *mesh.Model) error {
	axis, err := checkAxis("rotation axis", r.Axis)
	if err != nil {
		return err
	}
	if err := checkFinite("rotation angle", r.Degrees); err != nil {
		return err
	}
	return applyLinear(m, mgl64.HomogRotate3D(mgl64.DegToRad(r.Degrees), axis))
}
