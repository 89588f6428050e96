// Package recipe loads mesh recipes: a base primitive plus a pipeline of
// plugin and transform steps, written in YAML or TOML.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshcraft/internal/logger"
	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/internal/plugin"
	"github.com/Faultbox/meshcraft/internal/primitive"
)

var (
	ErrUnknownTransform = errors.New("unknown transform")
	ErrUnknownPrimitive = errors.New("unknown primitive")
)

// Syntax is the document language of a recipe.
type Syntax int

const (
	YAML Syntax = iota
	TOML
)

// Recipe describes how to build one model.
type Recipe struct {
	Name      string    `yaml:"name" toml:"name"`
	Primitive Primitive `yaml:"primitive" toml:"primitive"`
	Steps     []Step    `yaml:"steps" toml:"steps"`
}

// Primitive selects the base shape. Zero values fall back to the shape's
// defaults.
type Primitive struct {
	Type           string    `yaml:"type" toml:"type"`
	Size           float64   `yaml:"size" toml:"size"`
	Radius         float64   `yaml:"radius" toml:"radius"`
	Height         float64   `yaml:"height" toml:"height"`
	Width          float64   `yaml:"width" toml:"width"`
	Depth          float64   `yaml:"depth" toml:"depth"`
	Center         []float64 `yaml:"center" toml:"center"`
	Segments       int       `yaml:"segments" toml:"segments"`
	Rings          int       `yaml:"rings" toml:"rings"`
	HeightSegments int       `yaml:"height_segments" toml:"height_segments"`
	NoCaps         bool      `yaml:"no_caps" toml:"no_caps"`
}

// SyntaxFromPath picks TOML for .toml files and YAML otherwise.
func SyntaxFromPath(path string) Syntax {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// Load reads a recipe file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data, SyntaxFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", path, err)
	}
	logger.Named("recipe").Debug("recipe loaded",
		zap.String("path", path),
		zap.String("name", r.Name),
		zap.Int("steps", len(r.Steps)))
	return r, nil
}

// Parse decodes a recipe document. Unknown keys are rejected.
func Parse(data []byte, syntax Syntax) (*Recipe, error) {
	var r Recipe
	switch syntax {
	case TOML:
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&r); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}
	if r.Name == "" {
		r.Name = "model"
	}
	return &r, nil
}

// Build creates the base model and a composite plugin that runs the steps
// in order. Plugin steps are resolved against reg.
func (r *Recipe) Build(reg *plugin.Registry) (*mesh.Model, *plugin.CompositePlugin, error) {
	model, err := r.Primitive.build(r.Name)
	if err != nil {
		return nil, nil, err
	}

	pipeline := plugin.NewComposite(r.Name, fmt.Sprintf("recipe %s", r.Name))
	for i, s := range r.Steps {
		p, err := s.resolve(reg)
		if err != nil {
			return nil, nil, fmt.Errorf("step %d: %w", i, err)
		}
		pipeline.Add(p)
	}
	logger.Named("recipe").Debug("recipe built",
		zap.String("name", r.Name),
		zap.String("primitive", model.Name),
		zap.Int("vertices", len(model.Mesh.Vertices)),
		zap.Int("steps", len(pipeline.Steps())))
	return model, pipeline, nil
}

// Run builds the model and processes it with the pipeline.
func (r *Recipe) Run(reg *plugin.Registry) (*mesh.Model, error) {
	model, pipeline, err := r.Build(reg)
	if err != nil {
		return nil, err
	}
	if err := pipeline.Process(model); err != nil {
		return nil, err
	}
	return model, nil
}

func (p Primitive) build(name string) (*mesh.Model, error) {
	center, err := vec3("primitive center", p.Center, mgl64.Vec3{})
	if err != nil {
		return nil, err
	}

	var model *mesh.Model
	switch strings.ToLower(p.Type) {
	case "", "empty":
		return mesh.NewModel(name), nil
	case "cube":
		c := primitive.DefaultCube()
		c.Name, c.Center = name, center
		setFloat(&c.Size, p.Size)
		model, err = c.Build()
	case "sphere":
		s := primitive.DefaultSphere()
		s.Name, s.Center = name, center
		setFloat(&s.Radius, p.Radius)
		setInt(&s.Segments, p.Segments)
		setInt(&s.Rings, p.Rings)
		model, err = s.Build()
	case "cylinder":
		c := primitive.DefaultCylinder()
		c.Name, c.Center = name, center
		setFloat(&c.Radius, p.Radius)
		setFloat(&c.Height, p.Height)
		setInt(&c.Segments, p.Segments)
		setInt(&c.HeightSegments, p.HeightSegments)
		c.Caps = !p.NoCaps
		model, err = c.Build()
	case "plane":
		pl := primitive.DefaultPlane()
		pl.Name, pl.Center = name, center
		setFloat(&pl.Width, p.Width)
		setFloat(&pl.Depth, p.Depth)
		setInt(&pl.SegmentsX, p.Segments)
		setInt(&pl.SegmentsZ, p.Segments)
		model, err = pl.Build()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, p.Type)
	}
	if err != nil {
		return nil, err
	}
	return model, nil
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
