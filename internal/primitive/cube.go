package primitive

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// Cube is an axis-aligned box with edge length Size.
//
// Every side has its own four vertices so each corner carries the flat
// normal of its side: 24 vertices and 6 quad faces.
type Cube struct {
	Name   string
	Size   float64
	Center mgl64.Vec3
	UVs    bool
}

// DefaultCube returns a unit cube at the origin with texture coordinates.
func DefaultCube() Cube {
	return Cube{Size: 1, UVs: true}
}

// cubeSides lists outward normal and in-plane axes with u x v = n, so the
// corners below wind counter-clockwise seen from outside.
var cubeSides = [6][3]mgl64.Vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

var quadCorners = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// Build creates the cube model.
func (c Cube) Build() (*mesh.Model, error) {
	if err := positive("cube size", c.Size); err != nil {
		return nil, err
	}

	m := mesh.NewModel(nameOr(c.Name, "cube"))
	half := c.Size / 2
	for _, side := range cubeSides {
		n, u, v := side[0], side[1], side[2]
		base := len(m.Mesh.Vertices)
		for _, k := range quadCorners {
			pos := c.Center.Add(n.Add(u.Mul(k[0])).Add(v.Mul(k[1])).Mul(half))
			vert := mesh.NewVertex(pos, n)
			if c.UVs {
				vert = vert.WithTexCoord((k[0]+1)/2, (k[1]+1)/2)
			}
			m.Mesh.AddVertex(vert)
		}
		if err := m.Mesh.AddFace(mesh.Quad(base, base+1, base+2, base+3), ""); err != nil {
			return nil, err
		}
	}
	return m, nil
}
