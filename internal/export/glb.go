package export

import (
	"io"
	"math"
	"sort"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// writeGLB writes a binary glTF with one node and one mesh. Vertex
// attributes are shared; each material run becomes its own primitive with
// fan-triangulated uint32 indices.
func writeGLB(w io.Writer, m *mesh.Model) error {
	doc := buildDocument(m)
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

func buildDocument(m *mesh.Model) *gltf.Document {
	doc := gltf.NewDocument()
	msh := m.Mesh

	positions := make([][3]float32, len(msh.Vertices))
	normals := make([][3]float32, len(msh.Vertices))
	var uvs [][2]float32
	hasUV := false
	for i, v := range msh.Vertices {
		positions[i] = [3]float32{float32(v.Position[0]), float32(v.Position[1]), float32(v.Position[2])}
		normals[i] = [3]float32{float32(v.Normal[0]), float32(v.Normal[1]), float32(v.Normal[2])}
		hasUV = hasUV || v.HasTexCoord
	}

	attrs := gltf.Attribute{}
	if len(positions) > 0 {
		attrs[gltf.POSITION] = modeler.WritePosition(doc, positions)
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}
	if hasUV {
		uvs = make([][2]float32, len(msh.Vertices))
		for i, v := range msh.Vertices {
			// glTF puts the texture origin at the top left.
			uvs[i] = [2]float32{float32(v.TexCoord[0]), float32(1 - v.TexCoord[1])}
		}
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, uvs)
	}

	materialIndex := writeMaterials(doc, msh)
	var primitives []*gltf.Primitive
	for _, run := range materialRuns(msh) {
		var indices []uint32
		for _, fi := range run.faces {
			for _, tri := range msh.Faces[fi].Triangles() {
				indices = append(indices, uint32(tri[0]), uint32(tri[1]), uint32(tri[2]))
			}
		}
		p := &gltf.Primitive{
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: attrs,
		}
		if i, ok := materialIndex[run.material]; ok {
			p.Material = gltf.Index(i)
		}
		primitives = append(primitives, p)
	}

	if len(primitives) == 0 {
		// A glTF mesh needs at least one primitive.
		return doc
	}
	name := m.Name
	doc.Meshes = []*gltf.Mesh{{Name: name, Primitives: primitives}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

// writeMaterials adds the mesh materials as metallic-roughness materials,
// sorted by name, and returns their document indices.
func writeMaterials(doc *gltf.Document, msh *mesh.Mesh) map[string]uint32 {
	names := make([]string, 0, len(msh.Materials))
	for name := range msh.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	index := make(map[string]uint32, len(names))
	for _, name := range names {
		mat := msh.Materials[name]
		color := mat.Diffuse
		index[name] = uint32(len(doc.Materials))
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: name,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &color,
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(roughness(mat.Shininess)),
			},
		})
	}
	return index
}

// roughness converts a Phong exponent to perceptual roughness.
func roughness(shininess float64) float64 {
	if shininess <= 0 {
		return 1
	}
	return math.Sqrt(2 / (shininess + 2))
}
