package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// Sphere is a UV sphere with poles on the Y axis.
type Sphere struct {
	Name     string
	Radius   float64
	Center   mgl64.Vec3
	Segments int // around Y
	Rings    int // pole to pole
}

// DefaultSphere returns a unit sphere with 32 segments and 16 rings.
func DefaultSphere() Sphere {
	return Sphere{Radius: 1, Segments: 32, Rings: 16}
}

// Build creates the sphere model. The seam column is duplicated so texture
// coordinates wrap cleanly; pole rows are triangles.
func (s Sphere) Build() (*mesh.Model, error) {
	if err := positive("sphere radius", s.Radius); err != nil {
		return nil, err
	}
	if err := atLeast("sphere segments", s.Segments, 3); err != nil {
		return nil, err
	}
	if err := atLeast("sphere rings", s.Rings, 2); err != nil {
		return nil, err
	}

	m := mesh.NewModel(nameOr(s.Name, "sphere"))
	cols := s.Segments + 1
	for r := 0; r <= s.Rings; r++ {
		phi := math.Pi * float64(r) / float64(s.Rings)
		for seg := 0; seg <= s.Segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(s.Segments)
			dir := mgl64.Vec3{math.Sin(phi) * math.Cos(theta), math.Cos(phi), math.Sin(phi) * math.Sin(theta)}
			v := mesh.NewVertex(s.Center.Add(dir.Mul(s.Radius)), dir).
				WithTexCoord(float64(seg)/float64(s.Segments), 1-float64(r)/float64(s.Rings))
			m.Mesh.AddVertex(v)
		}
	}

	for r := 0; r < s.Rings; r++ {
		for seg := 0; seg < s.Segments; seg++ {
			a := r*cols + seg
			b := a + cols
			c := b + 1
			d := a + 1
			if r != s.Rings-1 {
				if err := m.Mesh.AddFace(mesh.Triangle(a, c, b), ""); err != nil {
					return nil, err
				}
			}
			if r != 0 {
				if err := m.Mesh.AddFace(mesh.Triangle(a, d, c), ""); err != nil {
					return nil, err
				}
			}
		}
	}
	return m, nil
}
