package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// Cylinder is an upright cylinder along Y, centred on Center.
type Cylinder struct {
	Name           string
	Radius         float64
	Height         float64
	Center         mgl64.Vec3
	Segments       int
	HeightSegments int
	Caps           bool
}

// DefaultCylinder returns a capped cylinder of radius 1 and height 2.
func DefaultCylinder() Cylinder {
	return Cylinder{Radius: 1, Height: 2, Segments: 32, HeightSegments: 1, Caps: true}
}

// Build creates the cylinder model. Side vertices carry radial normals;
// each cap is a triangle fan with its own vertices.
func (c Cylinder) Build() (*mesh.Model, error) {
	if err := positive("cylinder radius", c.Radius); err != nil {
		return nil, err
	}
	if err := positive("cylinder height", c.Height); err != nil {
		return nil, err
	}
	if err := atLeast("cylinder segments", c.Segments, 3); err != nil {
		return nil, err
	}
	if err := atLeast("cylinder height segments", c.HeightSegments, 1); err != nil {
		return nil, err
	}

	m := mesh.NewModel(nameOr(c.Name, "cylinder"))
	half := c.Height / 2
	cols := c.Segments + 1

	for row := 0; row <= c.HeightSegments; row++ {
		t := float64(row) / float64(c.HeightSegments)
		y := -half + c.Height*t
		for seg := 0; seg <= c.Segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(c.Segments)
			n := mgl64.Vec3{math.Cos(theta), 0, math.Sin(theta)}
			pos := c.Center.Add(mgl64.Vec3{n[0] * c.Radius, y, n[2] * c.Radius})
			m.Mesh.AddVertex(mesh.NewVertex(pos, n).WithTexCoord(float64(seg)/float64(c.Segments), t))
		}
	}
	for row := 0; row < c.HeightSegments; row++ {
		for seg := 0; seg < c.Segments; seg++ {
			a := row*cols + seg
			if err := m.Mesh.AddFace(mesh.Quad(a, a+cols, a+cols+1, a+1), ""); err != nil {
				return nil, err
			}
		}
	}

	if c.Caps {
		if err := c.addCap(m, half, mgl64.Vec3{0, 1, 0}); err != nil {
			return nil, err
		}
		if err := c.addCap(m, -half, mgl64.Vec3{0, -1, 0}); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (c Cylinder) addCap(m *mesh.Model, y float64, n mgl64.Vec3) error {
	center := m.Mesh.AddVertex(mesh.NewVertex(c.Center.Add(mgl64.Vec3{0, y, 0}), n).WithTexCoord(0.5, 0.5))
	first := len(m.Mesh.Vertices)
	for seg := 0; seg < c.Segments; seg++ {
		theta := 2 * math.Pi * float64(seg) / float64(c.Segments)
		cos, sin := math.Cos(theta), math.Sin(theta)
		pos := c.Center.Add(mgl64.Vec3{cos * c.Radius, y, sin * c.Radius})
		m.Mesh.AddVertex(mesh.NewVertex(pos, n).WithTexCoord(0.5+cos/2, 0.5+sin/2))
	}
	for seg := 0; seg < c.Segments; seg++ {
		cur := first + seg
		next := first + (seg+1)%c.Segments
		tri := mesh.Triangle(center, cur, next)
		if n[1] > 0 {
			tri = mesh.Triangle(center, next, cur)
		}
		if err := m.Mesh.AddFace(tri, ""); err != nil {
			return err
		}
	}
	return nil
}
