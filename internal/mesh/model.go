package mesh

import "fmt"

// Transform mutates a model's vertex data in place. Implementations must not
// change which vertices a face references, though they may reverse winding.
type Transform interface {
	Apply(m *Model) error
}

// TransformFunc adapts a function to the Transform interface.
type TransformFunc func(m *Model) error

// Apply calls f(m).
func (f TransformFunc) Apply(m *Model) error {
	return f(m)
}

// Model is a named mesh, the unit that transforms and plugins operate on.
type Model struct {
	Name string
	Mesh *Mesh
}

// NewModel creates a model with an empty mesh.
func NewModel(name string) *Model {
	return &Model{Name: name, Mesh: New()}
}

// Apply runs the transforms in order. The first failure stops the chain;
// transforms that already ran stay applied.
func (m *Model) Apply(ts ...Transform) error {
	for i, t := range ts {
		if err := t.Apply(m); err != nil {
			return fmt.Errorf("model %q: transform %d (%T): %w", m.Name, i, t, err)
		}
	}
	return nil
}

// Merge appends a copy of src's geometry to m. See Merge.
func (m *Model) Merge(src *Model) {
	Merge(m, src)
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	return &Model{Name: m.Name, Mesh: m.Mesh.Clone()}
}

// Merge appends copies of src's vertices and faces to dst. Face indices are
// offset by dst's prior vertex count and per-face materials are carried over.
// Materials missing from dst are copied; dst keeps its own on a name clash.
func Merge(dst, src *Model) {
	offset := len(dst.Mesh.Vertices)
	dst.Mesh.Vertices = append(dst.Mesh.Vertices, src.Mesh.Vertices...)

	for i, f := range src.Mesh.Faces {
		idx := make([]int, len(f.Indices))
		for j, v := range f.Indices {
			idx[j] = v + offset
		}
		dst.Mesh.Faces = append(dst.Mesh.Faces, Face{Indices: idx})

		material := ""
		if i < len(src.Mesh.FaceMaterials) {
			material = src.Mesh.FaceMaterials[i]
		}
		dst.Mesh.FaceMaterials = append(dst.Mesh.FaceMaterials, material)
	}

	for name, mat := range src.Mesh.Materials {
		if _, ok := dst.Mesh.Materials[name]; !ok {
			dst.Mesh.AddMaterial(mat)
		}
	}
}

// SetMaterial adds mat to the mesh and assigns it to every face.
func (m *Model) SetMaterial(mat Material) {
	m.Mesh.AddMaterial(mat)
	for i := range m.Mesh.FaceMaterials {
		m.Mesh.FaceMaterials[i] = mat.Name
	}
}
