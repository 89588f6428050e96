package plugin

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/internal/primitive"
	"github.com/Faultbox/meshcraft/internal/transform"
)

// Snowman materials.
const (
	MaterialSnow   = "snow"
	MaterialCoal   = "coal"
	MaterialCarrot = "carrot"
	MaterialWood   = "wood"
	MaterialHat    = "hat"
)

// SnowmanPlugin adds a snowman standing on the origin: three snow balls,
// coal eyes, a carrot nose, stick arms and a hat.
type SnowmanPlugin struct {
	// Segments controls the detail of the body spheres.
	Segments int
}

// NewSnowman creates the plugin with default detail.
func NewSnowman() *SnowmanPlugin {
	return &SnowmanPlugin{Segments: 24}
}

func (p *SnowmanPlugin) Name() string        { return "snowman" }
func (p *SnowmanPlugin) Description() string { return "Build a snowman from spheres and cylinders" }

type part struct {
	model    *mesh.Model
	material string
}

// Process merges every part into m and registers the materials.
func (p *SnowmanPlugin) Process(m *mesh.Model) error {
	parts, err := p.parts()
	if err != nil {
		return err
	}
	for _, pt := range parts {
		pt.model.SetMaterial(snowmanMaterial(pt.material))
		m.Merge(pt.model)
	}
	return nil
}

func (p *SnowmanPlugin) parts() ([]part, error) {
	segments := p.Segments
	if segments < 3 {
		segments = 3
	}
	rings := segments / 2
	if rings < 2 {
		rings = 2
	}

	ball := func(radius float64, center mgl64.Vec3, segs, rings int) (*mesh.Model, error) {
		return primitive.Sphere{Radius: radius, Center: center, Segments: segs, Rings: rings}.Build()
	}
	stick := func(radius, height float64, ts ...mesh.Transform) (*mesh.Model, error) {
		c := primitive.DefaultCylinder()
		c.Radius = radius
		c.Height = height
		c.Segments = 12
		model, err := c.Build()
		if err != nil {
			return nil, err
		}
		return model, model.Apply(ts...)
	}

	type piece struct {
		build    func() (*mesh.Model, error)
		material string
	}
	pieces := []piece{
		{func() (*mesh.Model, error) { return ball(1.0, mgl64.Vec3{0, 1.0, 0}, segments, rings) }, MaterialSnow},
		{func() (*mesh.Model, error) { return ball(0.7, mgl64.Vec3{0, 2.4, 0}, segments, rings) }, MaterialSnow},
		{func() (*mesh.Model, error) { return ball(0.5, mgl64.Vec3{0, 3.3, 0}, segments, rings) }, MaterialSnow},
		{func() (*mesh.Model, error) { return ball(0.07, mgl64.Vec3{0.2, 3.5, 0.4}, 8, 8) }, MaterialCoal},
		{func() (*mesh.Model, error) { return ball(0.07, mgl64.Vec3{-0.2, 3.5, 0.4}, 8, 8) }, MaterialCoal},
		// Carrot: a cylinder tapered almost to a point, turned to face +Z.
		{func() (*mesh.Model, error) {
			return stick(0.1, 0.5,
				transform.TaperY([2]float64{1, 1}, [2]float64{0.1, 0.1}, -0.25, 0.25),
				transform.RotateX(90),
				transform.Translate{X: 0, Y: 3.3, Z: 0.6})
		}, MaterialCarrot},
		{func() (*mesh.Model, error) {
			return stick(0.05, 0.8, transform.RotateZ(-45), transform.Translate{X: 0.9, Y: 2.5})
		}, MaterialWood},
		{func() (*mesh.Model, error) {
			return stick(0.05, 0.8, transform.RotateZ(45), transform.Translate{X: -0.9, Y: 2.5})
		}, MaterialWood},
		{func() (*mesh.Model, error) { return stick(0.6, 0.1, transform.Translate{Y: 3.7}) }, MaterialHat},
		{func() (*mesh.Model, error) { return stick(0.4, 0.4, transform.Translate{Y: 3.95}) }, MaterialHat},
	}

	parts := make([]part, 0, len(pieces))
	for _, s := range pieces {
		model, err := s.build()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part{model: model, material: s.material})
	}
	return parts, nil
}

func snowmanMaterial(name string) mesh.Material {
	mat := mesh.NewMaterial(name)
	switch name {
	case MaterialSnow:
		return mat.WithDiffuse(0.95, 0.95, 1.0, 1).WithShininess(8)
	case MaterialCoal:
		return mat.WithDiffuse(0.05, 0.05, 0.05, 1).WithShininess(64)
	case MaterialCarrot:
		return mat.WithDiffuse(0.95, 0.45, 0.1, 1)
	case MaterialWood:
		return mat.WithDiffuse(0.4, 0.25, 0.1, 1).WithShininess(4)
	case MaterialHat:
		return mat.WithDiffuse(0.1, 0.1, 0.12, 1).WithShininess(16)
	}
	return mat
}
