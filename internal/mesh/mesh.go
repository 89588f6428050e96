package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/pkg/math"
)

// DefaultNormal is assigned to vertices whose normal cannot be derived.
var DefaultNormal = mgl64.Vec3{0, 1, 0}

// Mesh owns the vertices, faces and materials of one piece of geometry.
// FaceMaterials is index-aligned with Faces; an empty name means no material.
type Mesh struct {
	Vertices      []Vertex
	Faces         []Face
	FaceMaterials []string
	Materials     map[string]Material
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{Materials: make(map[string]Material)}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v Vertex) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face with an optional material name. The face is
// rejected if it has fewer than three corners or references a vertex that
// does not exist yet.
func (m *Mesh) AddFace(f Face, material string) error {
	if len(f.Indices) < 3 {
		return fmt.Errorf("%w: face needs at least 3 indices, got %d", ErrInvalidParameter, len(f.Indices))
	}
	for _, idx := range f.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: vertex %d of %d", ErrInvalidIndex, idx, len(m.Vertices))
		}
	}
	m.Faces = append(m.Faces, f.clone())
	m.FaceMaterials = append(m.FaceMaterials, material)
	return nil
}

// RemoveFace removes the face at i together with its material slot.
func (m *Mesh) RemoveFace(i int) error {
	if i < 0 || i >= len(m.Faces) {
		return fmt.Errorf("%w: face %d of %d", ErrInvalidIndex, i, len(m.Faces))
	}
	m.Faces = append(m.Faces[:i], m.Faces[i+1:]...)
	m.FaceMaterials = append(m.FaceMaterials[:i], m.FaceMaterials[i+1:]...)
	return nil
}

// SetFaceMaterial assigns a material name to the face at i.
func (m *Mesh) SetFaceMaterial(i int, material string) error {
	if i < 0 || i >= len(m.Faces) {
		return fmt.Errorf("%w: face %d of %d", ErrInvalidIndex, i, len(m.Faces))
	}
	m.FaceMaterials[i] = material
	return nil
}

// AddMaterial stores mat under its name, replacing any previous entry.
func (m *Mesh) AddMaterial(mat Material) {
	if m.Materials == nil {
		m.Materials = make(map[string]Material)
	}
	m.Materials[mat.Name] = mat
}

// RecomputeNormals rebuilds vertex normals from face geometry.
// Each face contributes its unit normal, taken from the first three corners,
// once to every vertex it references. Faces with zero area contribute
// nothing, and vertices left without a usable normal get DefaultNormal.
func (m *Mesh) RecomputeNormals() {
	sums := make([]mgl64.Vec3, len(m.Vertices))

	for _, f := range m.Faces {
		n, ok := m.faceNormal(f)
		if !ok {
			continue
		}
		for _, idx := range f.Indices {
			sums[idx] = sums[idx].Add(n)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = math.NormalizeOr(sums[i], DefaultNormal)
	}
}

// FaceNormal returns the unit normal of face i.
func (m *Mesh) FaceNormal(i int) (mgl64.Vec3, error) {
	if i < 0 || i >= len(m.Faces) {
		return mgl64.Vec3{}, fmt.Errorf("%w: face %d of %d", ErrInvalidIndex, i, len(m.Faces))
	}
	n, ok := m.faceNormal(m.Faces[i])
	if !ok {
		return mgl64.Vec3{}, fmt.Errorf("%w: face %d has zero area", ErrDegenerateGeometry, i)
	}
	return n, nil
}

func (m *Mesh) faceNormal(f Face) (mgl64.Vec3, bool) {
	if len(f.Indices) < 3 {
		return mgl64.Vec3{}, false
	}
	v0 := m.Vertices[f.Indices[0]].Position
	v1 := m.Vertices[f.Indices[1]].Position
	v2 := m.Vertices[f.Indices[2]].Position
	n := v1.Sub(v0).Cross(v2.Sub(v0))

	// Degenerate triangle detection
	if math.IsZero(n) {
		return mgl64.Vec3{}, false
	}
	return n.Normalize(), true
}

// FlipWinding reverses the corner order of every face.
func (m *Mesh) FlipWinding() {
	for _, f := range m.Faces {
		idx := f.Indices
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}
}

// Validate checks that every face index is in range and that the material
// slots line up with the faces.
func (m *Mesh) Validate() error {
	if len(m.FaceMaterials) != len(m.Faces) {
		return fmt.Errorf("%w: %d material slots for %d faces", ErrInvalidIndex, len(m.FaceMaterials), len(m.Faces))
	}
	for fi, f := range m.Faces {
		if len(f.Indices) < 3 {
			return fmt.Errorf("%w: face %d has %d indices", ErrInvalidParameter, fi, len(f.Indices))
		}
		for _, idx := range f.Indices {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidIndex, fi, idx, len(m.Vertices))
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box. An empty mesh has zero bounds.
func (m *Mesh) Bounds() (mgl64.Vec3, mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}
	lo := m.Vertices[0].Position
	hi := lo
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			if v.Position[k] < lo[k] {
				lo[k] = v.Position[k]
			}
			if v.Position[k] > hi[k] {
				hi[k] = v.Position[k]
			}
		}
	}
	return lo, hi
}

// TriangleCount returns the number of triangles after fan triangulation.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, f := range m.Faces {
		if len(f.Indices) >= 3 {
			n += len(f.Indices) - 2
		}
	}
	return n
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices:      append([]Vertex(nil), m.Vertices...),
		Faces:         make([]Face, len(m.Faces)),
		FaceMaterials: append([]string(nil), m.FaceMaterials...),
		Materials:     make(map[string]Material, len(m.Materials)),
	}
	for i, f := range m.Faces {
		c.Faces[i] = f.clone()
	}
	for name, mat := range m.Materials {
		c.Materials[name] = mat
	}
	return c
}
