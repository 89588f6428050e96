package export

import (
	"io"

	"github.com/hschendel/stl"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// writeSTL fan-triangulates every face. Triangle normals are geometric, so
// degenerate triangles get a zero normal.
func writeSTL(w io.Writer, m *mesh.Model, ascii bool) error {
	solid := &stl.Solid{Name: m.Name, IsAscii: ascii}
	verts := m.Mesh.Vertices
	solid.Triangles = make([]stl.Triangle, 0, m.Mesh.TriangleCount())
	for _, f := range m.Mesh.Faces {
		for _, tri := range f.Triangles() {
			a, b, c := verts[tri[0]].Position, verts[tri[1]].Position, verts[tri[2]].Position
			var t stl.Triangle
			if n := b.Sub(a).Cross(c.Sub(a)); n.Len() > 0 {
				t.Normal = toSTL(n.Normalize())
			}
			t.Vertices = [3]stl.Vec3{toSTL(a), toSTL(b), toSTL(c)}
			solid.Triangles = append(solid.Triangles, t)
		}
	}
	return solid.WriteAll(w)
}

func toSTL(v [3]float64) stl.Vec3 {
	return stl.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
