// Package plugin provides named, composable operations over mesh models and
// a registry to look them up by name.
package plugin

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

var (
	ErrPluginNotFound      = errors.New("plugin not found")
	ErrCompositeSubfailure = errors.New("composite step failed")
)

// Plugin is a named, described operation over a model.
type Plugin interface {
	Name() string
	Description() string
	Process(m *mesh.Model) error
}

// Info describes a plugin for listings.
type Info struct {
	Name        string
	Description string
}

// TransformPlugin exposes a single transform as a plugin.
type TransformPlugin struct {
	name        string
	description string
	transform   mesh.Transform
}

// NewTransformPlugin wraps t.
func NewTransformPlugin(name, description string, t mesh.Transform) *TransformPlugin {
	return &TransformPlugin{name: name, description: description, transform: t}
}

func (p *TransformPlugin) Name() string        { return p.name }
func (p *TransformPlugin) Description() string { return p.description }

// Transform returns the wrapped transform.
func (p *TransformPlugin) Transform() mesh.Transform { return p.transform }

// Process applies the wrapped transform.
func (p *TransformPlugin) Process(m *mesh.Model) error {
	return p.transform.Apply(m)
}

// SmoothNormalsPlugin rebuilds vertex normals from face geometry.
type SmoothNormalsPlugin struct{}

// NewSmoothNormals creates the plugin.
func NewSmoothNormals() SmoothNormalsPlugin { return SmoothNormalsPlugin{} }

func (SmoothNormalsPlugin) Name() string { return "smooth_normals" }
func (SmoothNormalsPlugin) Description() string {
	return "Recompute vertex normals by averaging adjacent face normals"
}

// Process recomputes normals.
func (SmoothNormalsPlugin) Process(m *mesh.Model) error {
	m.Mesh.RecomputeNormals()
	return nil
}

// FuncPlugin adapts a function into a plugin.
type FuncPlugin struct {
	name        string
	description string
	fn          func(m *mesh.Model) error
}

// Func creates a plugin from fn.
func Func(name, description string, fn func(m *mesh.Model) error) *FuncPlugin {
	return &FuncPlugin{name: name, description: description, fn: fn}
}

func (p *FuncPlugin) Name() string        { return p.name }
func (p *FuncPlugin) Description() string { return p.description }

// Process calls the function.
func (p *FuncPlugin) Process(m *mesh.Model) error {
	if p.fn == nil {
		return fmt.Errorf("plugin %q: %w: no function", p.name, mesh.ErrInvalidParameter)
	}
	return p.fn(m)
}
