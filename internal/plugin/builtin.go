package plugin

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/internal/transform"
)

// MergePlugin appends a copy of a source model to whatever it processes.
type MergePlugin struct {
	name        string
	description string
	source      *mesh.Model
}

// NewMerge creates a plugin that merges a snapshot of src. Later changes to
// src do not affect the plugin.
func NewMerge(name, description string, src *mesh.Model) *MergePlugin {
	return &MergePlugin{name: name, description: description, source: src.Clone()}
}

func (p *MergePlugin) Name() string        { return p.name }
func (p *MergePlugin) Description() string { return p.description }

// Process merges the source into m.
func (p *MergePlugin) Process(m *mesh.Model) error {
	m.Merge(p.source)
	return nil
}

// CenterPlugin moves the model so its bounding box is centred on the origin.
// With KeepY set only X and Z are centred, which keeps a grounded model on
// the ground.
type CenterPlugin struct {
	KeepY bool
}

func (p CenterPlugin) Name() string {
	if p.KeepY {
		return "center_xz"
	}
	return "center"
}

func (p CenterPlugin) Description() string {
	if p.KeepY {
		return "Center the model horizontally on the origin"
	}
	return "Center the model's bounding box on the origin"
}

// Process translates m.
func (p CenterPlugin) Process(m *mesh.Model) error {
	lo, hi := m.Mesh.Bounds()
	c := lo.Add(hi).Mul(0.5)
	if p.KeepY {
		c[1] = 0
	}
	return transform.TranslateBy(c.Mul(-1)).Apply(m)
}

// GroundPlugin moves the model vertically so it rests on the XZ plane.
type GroundPlugin struct{}

func (GroundPlugin) Name() string        { return "ground" }
func (GroundPlugin) Description() string { return "Place the model on the XZ plane" }

// Process translates m so its lowest vertex has y = 0.
func (GroundPlugin) Process(m *mesh.Model) error {
	lo, _ := m.Mesh.Bounds()
	return transform.TranslateBy(mgl64.Vec3{0, -lo.Y(), 0}).Apply(m)
}

// DefaultRegistry returns a registry with the built-in plugins.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewSmoothNormals())
	r.Register(CenterPlugin{})
	r.Register(CenterPlugin{KeepY: true})
	r.Register(GroundPlugin{})
	r.Register(NewSnowman())
	return r
}
