package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/pkg/math"
)

// Taper scales the cross-section perpendicular to Axis by a factor that is
// interpolated from StartScale at Min to EndScale at Max and held constant
// outside the range. The two factors apply to the basis returned by
// math.Basis: (Y, Z) for X, (X, Z) for Y and (X, Y) for Z.
type Taper struct {
	Axis       mgl64.Vec3
	StartScale [2]float64
	EndScale   [2]float64
	Min, Max   float64
}

// TaperX tapers along the X axis.
func TaperX(start, end [2]float64, min, max float64) Taper {
	return Taper{Axis: math.AxisX.Vec(), StartScale: start, EndScale: end, Min: min, Max: max}
}

// TaperY tapers along the Y axis.
func TaperY(start, end [2]float64, min, max float64) Taper {
	return Taper{Axis: math.AxisY.Vec(), StartScale: start, EndScale: end, Min: min, Max: max}
}

// TaperZ tapers along the Z axis.
func TaperZ(start, end [2]float64, min, max float64) Taper {
	return Taper{Axis: math.AxisZ.Vec(), StartScale: start, EndScale: end, Min: min, Max: max}
}

// Apply implements mesh.Transform.
func (t Taper) Apply(m *mesh.Model) error {
	axis, err := checkAxis("taper axis", t.Axis)
	if err != nil {
		return err
	}
	if err := checkFinite("taper scale", t.StartScale[0], t.StartScale[1], t.EndScale[0], t.EndScale[1]); err != nil {
		return err
	}
	if err := checkRange(t.Min, t.Max); err != nil {
		return err
	}

	u, w := math.Basis(axis)
	span := t.Max - t.Min
	for i := range m.Mesh.Vertices {
		v := &m.Mesh.Vertices[i]
		along := v.Position.Dot(axis)
		f := math.Clamp((along-t.Min)/span, 0, 1)
		su := math.Lerp(t.StartScale[0], t.EndScale[0], f)
		sw := math.Lerp(t.StartScale[1], t.EndScale[1], f)

		v.Position = axis.Mul(along).
			Add(u.Mul(v.Position.Dot(u) * su)).
			Add(w.Mul(v.Position.Dot(w) * sw))
	}

	m.Mesh.RecomputeNormals()
	return nil
}
