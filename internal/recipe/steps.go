package recipe

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/internal/plugin"
	"github.com/Faultbox/meshcraft/internal/transform"
	"github.com/Faultbox/meshcraft/pkg/math"
)

// Step is one pipeline entry: either a registered plugin or an inline
// transform. Which fields a transform reads depends on its kind.
//
// Factor is a pointer so that an explicit zero scale flattens the mesh
// instead of falling back to Vector. Matrix holds 16 values in column-major
// order, the mgl64 layout: the translation is in elements 12, 13 and 14.
type Step struct {
	Plugin    string `yaml:"plugin" toml:"plugin"`
	Transform string `yaml:"transform" toml:"transform"`

	Axis          string    `yaml:"axis" toml:"axis"`
	Direction     string    `yaml:"direction" toml:"direction"`
	Vector        []float64 `yaml:"vector" toml:"vector"`
	Factor        *float64  `yaml:"factor" toml:"factor"`
	Degrees       float64   `yaml:"degrees" toml:"degrees"`
	Euler         []float64 `yaml:"euler" toml:"euler"`
	Center        []float64 `yaml:"center" toml:"center"`
	Min           float64   `yaml:"min" toml:"min"`
	Max           float64   `yaml:"max" toml:"max"`
	Start         []float64 `yaml:"start" toml:"start"`
	End           []float64 `yaml:"end" toml:"end"`
	Radius        float64   `yaml:"radius" toml:"radius"`
	Wrap          bool      `yaml:"wrap" toml:"wrap"`
	Eye           []float64 `yaml:"eye" toml:"eye"`
	Focal         float64   `yaml:"focal" toml:"focal"`
	FOV           float64   `yaml:"fov" toml:"fov"`
	Near          float64   `yaml:"near" toml:"near"`
	PreserveDepth bool      `yaml:"preserve_depth" toml:"preserve_depth"`
	Bounds        []float64 `yaml:"bounds" toml:"bounds"`
	Matrix        []float64 `yaml:"matrix" toml:"matrix"`
}

func (s Step) resolve(reg *plugin.Registry) (plugin.Plugin, error) {
	switch {
	case s.Plugin != "" && s.Transform != "":
		return nil, fmt.Errorf("%w: step names both plugin %q and transform %q",
			mesh.ErrInvalidParameter, s.Plugin, s.Transform)
	case s.Plugin != "":
		return reg.Lookup(s.Plugin)
	case s.Transform != "":
		t, err := s.transform()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Transform, err)
		}
		return plugin.NewTransformPlugin(s.Transform, fmt.Sprintf("%s transform", s.Transform), t), nil
	}
	return nil, fmt.Errorf("%w: step has neither plugin nor transform", mesh.ErrInvalidParameter)
}

func (s Step) transform() (mesh.Transform, error) {
	switch strings.ToLower(s.Transform) {
	case "scale":
		if s.Factor != nil {
			return transform.UniformScale(*s.Factor), nil
		}
		v, err := vec3("vector", s.Vector, mgl64.Vec3{1, 1, 1})
		if err != nil {
			return nil, err
		}
		return transform.Scale{X: v[0], Y: v[1], Z: v[2]}, nil

	case "translate":
		v, err := vec3("vector", s.Vector, mgl64.Vec3{})
		if err != nil {
			return nil, err
		}
		return transform.TranslateBy(v), nil

	case "rotate":
		axis, err := s.axis(s.Axis)
		if err != nil {
			return nil, err
		}
		return transform.Rotate{Axis: axis, Degrees: s.Degrees}, nil

	case "mirror":
		var m transform.Mirror
		for _, c := range strings.ToLower(s.Axis) {
			switch c {
			case 'x':
				m.X = true
			case 'y':
				m.Y = true
			case 'z':
				m.Z = true
			default:
				return nil, fmt.Errorf("%w: mirror axis %q", mesh.ErrInvalidParameter, s.Axis)
			}
		}
		return m, nil

	case "quaternion":
		if len(s.Euler) > 0 {
			e, err := vec3("euler", s.Euler, mgl64.Vec3{})
			if err != nil {
				return nil, err
			}
			return transform.QuaternionFromEuler(e[0], e[1], e[2]), nil
		}
		axis, err := s.axis(s.Axis)
		if err != nil {
			return nil, err
		}
		return transform.QuaternionFromAxisAngle(axis, s.Degrees)

	case "matrix":
		if len(s.Matrix) != 16 {
			return nil, fmt.Errorf("%w: matrix needs 16 values, got %d", mesh.ErrInvalidParameter, len(s.Matrix))
		}
		var m mgl64.Mat4
		copy(m[:], s.Matrix)
		return transform.Matrix{M: m}, nil

	case "twist":
		axis, err := s.axis(s.Axis)
		if err != nil {
			return nil, err
		}
		c, err := vec3("center", s.Center, mgl64.Vec3{})
		if err != nil {
			return nil, err
		}
		return transform.Twist{Axis: axis, DegreesPerUnit: s.Degrees, Center: c}, nil

	case "bend":
		axis, err := s.axis(s.Axis)
		if err != nil {
			return nil, err
		}
		dir, err := s.axis(s.Direction)
		if err != nil {
			return nil, err
		}
		return transform.Bend{Axis: axis, Direction: dir, Degrees: s.Degrees, Min: s.Min, Max: s.Max}, nil

	case "taper":
		axis, err := s.axis(s.Axis)
		if err != nil {
			return nil, err
		}
		start, err := vec2("start", s.Start, [2]float64{1, 1})
		if err != nil {
			return nil, err
		}
		end, err := vec2("end", s.End, [2]float64{1, 1})
		if err != nil {
			return nil, err
		}
		return transform.Taper{Axis: axis, StartScale: start, EndScale: end, Min: s.Min, Max: s.Max}, nil

	case "perspective":
		eye, err := vec3("eye", s.Eye, mgl64.Vec3{})
		if err != nil {
			return nil, err
		}
		p := transform.NewPerspective(eye, s.Focal)
		if s.FOV != 0 {
			if p, err = transform.PerspectiveFOV(eye, s.FOV); err != nil {
				return nil, err
			}
		}
		p.Near = s.Near
		p.PreserveDepth = s.PreserveDepth
		return p, nil

	case "orthographic":
		dir, err := s.axis(s.Axis)
		if err != nil {
			return nil, err
		}
		o := transform.Orthographic{Direction: dir, PreserveDepth: s.PreserveDepth}
		switch len(s.Bounds) {
		case 0:
		case 4:
			o = o.Within(transform.ViewBounds{MinU: s.Bounds[0], MaxU: s.Bounds[1], MinV: s.Bounds[2], MaxV: s.Bounds[3]})
		default:
			return nil, fmt.Errorf("%w: bounds needs 4 values, got %d", mesh.ErrInvalidParameter, len(s.Bounds))
		}
		return o, nil

	case "cylindrical":
		axis, err := s.axis(s.Axis)
		if err != nil {
			return nil, err
		}
		c, err := vec3("center", s.Center, mgl64.Vec3{})
		if err != nil {
			return nil, err
		}
		cyl := transform.Cylindrical{Axis: axis, Center: c, Radius: s.Radius}
		if s.Wrap {
			cyl = cyl.Wrapped()
		}
		return cyl, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, s.Transform)
}

// axis accepts x, y or z, or a vector given as "x,y,z". An empty name is Y.
func (s Step) axis(name string) (mgl64.Vec3, error) {
	if name == "" {
		return math.AxisY.Vec(), nil
	}
	if strings.Contains(name, ",") {
		return ParseVec3(name)
	}
	a, err := math.ParseAxis(name)
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("%w: %w", mesh.ErrInvalidParameter, err)
	}
	return a.Vec(), nil
}

func vec3(name string, values []float64, fallback mgl64.Vec3) (mgl64.Vec3, error) {
	switch len(values) {
	case 0:
		return fallback, nil
	case 3:
		return mgl64.Vec3{values[0], values[1], values[2]}, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("%w: %s needs 3 values, got %d", mesh.ErrInvalidParameter, name, len(values))
}

func vec2(name string, values []float64, fallback [2]float64) ([2]float64, error) {
	switch len(values) {
	case 0:
		return fallback, nil
	case 1:
		return [2]float64{values[0], values[0]}, nil
	case 2:
		return [2]float64{values[0], values[1]}, nil
	}
	return [2]float64{}, fmt.Errorf("%w: %s needs 1 or 2 values, got %d", mesh.ErrInvalidParameter, name, len(values))
}
