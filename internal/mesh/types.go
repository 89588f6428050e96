// Package mesh provides the vertex/face/material data model and the Model
// that transforms operate on.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrInvalidIndex       = errors.New("index out of range")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// Vertex is a mesh vertex with position, normal and optional texture coordinates.
type Vertex struct {
	Position    mgl64.Vec3
	Normal      mgl64.Vec3
	TexCoord    mgl64.Vec2
	HasTexCoord bool
}

// NewVertex creates a vertex without texture coordinates.
func NewVertex(pos, normal mgl64.Vec3) Vertex {
	return Vertex{Position: pos, Normal: normal}
}

// WithTexCoord returns a copy of v carrying the given UV.
func (v Vertex) WithTexCoord(u, w float64) Vertex {
	v.TexCoord = mgl64.Vec2{u, w}
	v.HasTexCoord = true
	return v
}

// Face is an ordered polygon of vertex indices. Winding is counter-clockwise
// when viewed from the side the face normal points to.
type Face struct {
	Indices []int
}

// NewFace creates a face from vertex indices.
func NewFace(indices ...int) Face {
	return Face{Indices: append([]int(nil), indices...)}
}

// Triangle creates a three-index face.
func Triangle(a, b, c int) Face {
	return Face{Indices: []int{a, b, c}}
}

// Quad creates a four-index face.
func Quad(a, b, c, d int) Face {
	return Face{Indices: []int{a, b, c, d}}
}

// Len returns the number of corners.
func (f Face) Len() int {
	return len(f.Indices)
}

// Triangles fan-triangulates the face around its first corner.
func (f Face) Triangles() [][3]int {
	if len(f.Indices) < 3 {
		return nil
	}
	tris := make([][3]int, 0, len(f.Indices)-2)
	for i := 1; i+1 < len(f.Indices); i++ {
		tris = append(tris, [3]int{f.Indices[0], f.Indices[i], f.Indices[i+1]})
	}
	return tris
}

func (f Face) clone() Face {
	return Face{Indices: append([]int(nil), f.Indices...)}
}

// TextureType identifies the role of a texture map.
type TextureType int

const (
	TextureDiffuse TextureType = iota
	TextureNormal
	TextureSpecular
	TextureRoughness
	TextureMetallic
	TextureEmission
	TextureOcclusion
)

var textureTypeNames = [...]string{
	TextureDiffuse:   "diffuse",
	TextureNormal:    "normal",
	TextureSpecular:  "specular",
	TextureRoughness: "roughness",
	TextureMetallic:  "metallic",
	TextureEmission:  "emission",
	TextureOcclusion: "occlusion",
}

func (t TextureType) String() string {
	if t >= 0 && int(t) < len(textureTypeNames) {
		return textureTypeNames[t]
	}
	return fmt.Sprintf("texture(%d)", int(t))
}

// Material describes surface appearance. Colors are RGBA in [0,1].
type Material struct {
	Name      string
	Ambient   [4]float64
	Diffuse   [4]float64
	Specular  [4]float64
	Shininess float64
	Textures  map[TextureType]string
}

// NewMaterial creates a material with Phong defaults.
func NewMaterial(name string) Material {
	return Material{
		Name:      name,
		Ambient:   [4]float64{0.2, 0.2, 0.2, 1},
		Diffuse:   [4]float64{0.8, 0.8, 0.8, 1},
		Specular:  [4]float64{1, 1, 1, 1},
		Shininess: 32,
	}
}

// WithDiffuse returns a copy with the diffuse color set.
func (m Material) WithDiffuse(r, g, b, a float64) Material {
	m.Diffuse = [4]float64{r, g, b, a}
	return m
}

// WithShininess returns a copy with the specular exponent set.
func (m Material) WithShininess(s float64) Material {
	m.Shininess = s
	return m
}

// WithTexture returns a copy with a texture path set for the given role.
func (m Material) WithTexture(kind TextureType, path string) Material {
	textures := make(map[TextureType]string, len(m.Textures)+1)
	for k, v := range m.Textures {
		textures[k] = v
	}
	textures[kind] = path
	m.Textures = textures
	return m
}

// Texture returns the texture path for the given role, if any.
func (m Material) Texture(kind TextureType) (string, bool) {
	p, ok := m.Textures[kind]
	return p, ok
}
