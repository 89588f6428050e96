package primitive

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// Plane is a subdivided rectangle in the XZ plane facing +Y.
type Plane struct {
	Name      string
	Width     float64 // along X
	Depth     float64 // along Z
	Center    mgl64.Vec3
	SegmentsX int
	SegmentsZ int
}

// DefaultPlane returns a single-quad unit plane.
func DefaultPlane() Plane {
	return Plane{Width: 1, Depth: 1, SegmentsX: 1, SegmentsZ: 1}
}

// Build creates the plane model.
func (p Plane) Build() (*mesh.Model, error) {
	if err := positive("plane width", p.Width); err != nil {
		return nil, err
	}
	if err := positive("plane depth", p.Depth); err != nil {
		return nil, err
	}
	if err := atLeast("plane x segments", p.SegmentsX, 1); err != nil {
		return nil, err
	}
	if err := atLeast("plane z segments", p.SegmentsZ, 1); err != nil {
		return nil, err
	}

	m := mesh.NewModel(nameOr(p.Name, "plane"))
	up := mgl64.Vec3{0, 1, 0}
	for j := 0; j <= p.SegmentsZ; j++ {
		v := float64(j) / float64(p.SegmentsZ)
		for i := 0; i <= p.SegmentsX; i++ {
			u := float64(i) / float64(p.SegmentsX)
			pos := p.Center.Add(mgl64.Vec3{(u - 0.5) * p.Width, 0, (v - 0.5) * p.Depth})
			m.Mesh.AddVertex(mesh.NewVertex(pos, up).WithTexCoord(u, 1-v))
		}
	}

	cols := p.SegmentsX + 1
	for j := 0; j < p.SegmentsZ; j++ {
		for i := 0; i < p.SegmentsX; i++ {
			a := j*cols + i
			if err := m.Mesh.AddFace(mesh.Quad(a, a+cols, a+cols+1, a+1), ""); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
