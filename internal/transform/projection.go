package transform

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/pkg/math"
)

// Perspective projects vertices through Eye onto the image plane at
// FocalLength in front of it, looking down +Z. Every vertex must lie more
// than Near in front of the eye. The projected z is the distance from the
// eye, or the original z with PreserveDepth.
type Perspective struct {
	Eye           mgl64.Vec3
	FocalLength   float64
	Near          float64
	PreserveDepth bool
}

// NewPerspective creates a perspective projection with the near plane at the eye.
func NewPerspective(eye mgl64.Vec3, focalLength float64) Perspective {
	return Perspective{Eye: eye, FocalLength: focalLength}
}

// PerspectiveFOV derives the focal length from a field of view in degrees,
// so that the view spans [-1, 1] on the image plane.
func PerspectiveFOV(eye mgl64.Vec3, fovDegrees float64) (Perspective, error) {
	if !(fovDegrees > 0 && fovDegrees < 180) {
		return Perspective{}, fmt.Errorf("%w: field of view %v outside (0, 180)", mesh.ErrInvalidParameter, fovDegrees)
	}
	return NewPerspective(eye, 1/gomath.Tan(mgl64.DegToRad(fovDegrees)/2)), nil
}

// Apply implements mesh.Transform.
func (p Perspective) Apply(m *mesh.Model) error {
	if err := checkFinite("perspective", p.Eye[0], p.Eye[1], p.Eye[2], p.FocalLength, p.Near); err != nil {
		return err
	}
	if p.FocalLength <= 0 {
		return fmt.Errorf("%w: focal length must be positive", mesh.ErrInvalidParameter)
	}
	if p.Near < 0 {
		return fmt.Errorf("%w: near plane must not be negative", mesh.ErrInvalidParameter)
	}

	projected := make([]mgl64.Vec3, len(m.Mesh.Vertices))
	for i, v := range m.Mesh.Vertices {
		rel := v.Position.Sub(p.Eye)
		depth := rel.Z()
		if depth <= p.Near {
			return fmt.Errorf("%w: vertex %d at depth %v is not in front of the near plane", mesh.ErrDegenerateGeometry, i, depth)
		}
		s := p.FocalLength / depth
		z := rel.Len()
		if p.PreserveDepth {
			z = v.Position.Z()
		}
		projected[i] = mgl64.Vec3{p.Eye.X() + rel.X()*s, p.Eye.Y() + rel.Y()*s, z}
	}

	for i := range m.Mesh.Vertices {
		m.Mesh.Vertices[i].Position = projected[i]
	}
	m.Mesh.RecomputeNormals()
	return nil
}

// ViewBounds is a rectangle on the projection plane that Orthographic maps
// onto [-1, 1] in both directions.
type ViewBounds struct {
	MinU, MaxU float64
	MinV, MaxV float64
}

// Orthographic flattens vertices along Direction onto the plane through the
// origin perpendicular to it. The in-plane axes come from math.Basis.
type Orthographic struct {
	Direction     mgl64.Vec3
	PreserveDepth bool
	Bounds        *ViewBounds
}

// OntoXY projects along Z.
func OntoXY() Orthographic { return Orthographic{Direction: math.AxisZ.Vec()} }

// OntoXZ projects along Y.
func OntoXZ() Orthographic { return Orthographic{Direction: math.AxisY.Vec()} }

// OntoYZ projects along X.
func OntoYZ() Orthographic { return Orthographic{Direction: math.AxisX.Vec()} }

// Within returns a copy of o that normalizes coordinates to b.
func (o Orthographic) Within(b ViewBounds) Orthographic {
	o.Bounds = &b
	return o
}

// Apply implements mesh.Transform.
func (o Orthographic) Apply(m *mesh.Model) error {
	n, err := checkAxis("projection direction", o.Direction)
	if err != nil {
		return err
	}
	if b := o.Bounds; b != nil {
		if err := checkRange(b.MinU, b.MaxU); err != nil {
			return fmt.Errorf("view bounds u: %w", err)
		}
		if err := checkRange(b.MinV, b.MaxV); err != nil {
			return fmt.Errorf("view bounds v: %w", err)
		}
	}

	u, w := math.Basis(n)
	for i := range m.Mesh.Vertices {
		v := &m.Mesh.Vertices[i]
		pu, pw := v.Position.Dot(u), v.Position.Dot(w)
		if b := o.Bounds; b != nil {
			pu = 2*(pu-b.MinU)/(b.MaxU-b.MinU) - 1
			pw = 2*(pw-b.MinV)/(b.MaxV-b.MinV) - 1
		}
		out := u.Mul(pu).Add(w.Mul(pw))
		if o.PreserveDepth {
			out = out.Add(n.Mul(v.Position.Dot(n)))
		}
		v.Position = out
	}

	m.Mesh.RecomputeNormals()
	return nil
}

// CylinderMode selects how Cylindrical maps vertices.
type CylinderMode int

const (
	// CylinderProject pushes every vertex radially onto the cylinder surface.
	CylinderProject CylinderMode = iota
	// CylinderWrap rolls geometry around the axis: the first basis direction
	// becomes arc length and the second becomes distance from the axis, so a
	// sheet at distance Radius wraps onto the surface without stretching.
	CylinderWrap
)

// Cylindrical maps vertices onto a cylinder of Radius around Axis through Center.
type Cylindrical struct {
	Axis   mgl64.Vec3
	Center mgl64.Vec3
	Radius float64
	Mode   CylinderMode
}

// CylindricalX projects onto a cylinder around the X axis.
func CylindricalX(radius float64) Cylindrical {
	return Cylindrical{Axis: math.AxisX.Vec(), Radius: radius}
}

// CylindricalY projects onto a cylinder around the Y axis.
func CylindricalY(radius float64) Cylindrical {
	return Cylindrical{Axis: math.AxisY.Vec(), Radius: radius}
}

// CylindricalZ projects onto a cylinder around the Z axis.
func CylindricalZ(radius float64) Cylindrical {
	return Cylindrical{Axis: math.AxisZ.Vec(), Radius: radius}
}

// Wrapped returns a copy of c in CylinderWrap mode.
func (c Cylindrical) Wrapped() Cylindrical {
	c.Mode = CylinderWrap
	return c
}

// Apply implements mesh.Transform. In project mode vertices on the axis have
// no defined direction and are left in place. In wrap mode a vertex at or
// behind the axis is degenerate and fails the transform.
func (c Cylindrical) Apply(m *mesh.Model) error {
	axis, err := checkAxis("cylinder axis", c.Axis)
	if err != nil {
		return err
	}
	if err := checkFinite("cylinder", c.Radius, c.Center[0], c.Center[1], c.Center[2]); err != nil {
		return err
	}
	if c.Radius <= 0 {
		return fmt.Errorf("%w: cylinder radius must be positive", mesh.ErrInvalidParameter)
	}
	if c.Mode != CylinderProject && c.Mode != CylinderWrap {
		return fmt.Errorf("%w: unknown cylinder mode %d", mesh.ErrInvalidParameter, c.Mode)
	}

	u, w := math.Basis(axis)
	mapped := make([]mgl64.Vec3, len(m.Mesh.Vertices))
	for i, v := range m.Mesh.Vertices {
		along, perp := math.Decompose(v.Position.Sub(c.Center), axis)
		base := c.Center.Add(axis.Mul(along))

		switch c.Mode {
		case CylinderWrap:
			r := perp.Dot(w)
			if r <= math.Epsilon {
				return fmt.Errorf("%w: vertex %d lies at or behind the wrap axis", mesh.ErrDegenerateGeometry, i)
			}
			angle := perp.Dot(u) / c.Radius
			mapped[i] = base.Add(w.Mul(r * gomath.Cos(angle))).Add(u.Mul(r * gomath.Sin(angle)))
		default:
			if math.IsZero(perp) {
				mapped[i] = v.Position
				continue
			}
			mapped[i] = base.Add(perp.Normalize().Mul(c.Radius))
		}
	}

	for i := range m.Mesh.Vertices {
		m.Mesh.Vertices[i].Position = mapped[i]
	}
	m.Mesh.RecomputeNormals()
	return nil
}
