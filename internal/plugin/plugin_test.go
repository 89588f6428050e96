package plugin

import (
	"errors"
	"fmt"
	gomath "math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/meshcraft/internal/logger"
	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/internal/primitive"
	"github.com/Faultbox/meshcraft/internal/transform"
)

func cube(t *testing.T) *mesh.Model {
	t.Helper()
	m, err := primitive.DefaultCube().Build()
	require.NoError(t, err)
	return m
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(nil) })
	return logs
}

// recorder appends its name to a shared log when it runs.
func recorder(name string, log *[]string, err error) Plugin {
	return Func(name, "records "+name, func(*mesh.Model) error {
		*log = append(*log, name)
		return err
	})
}

func TestTransformPlugin(t *testing.T) {
	p := NewTransformPlugin("scale_down", "Scale model to 50%", transform.UniformScale(0.5))
	assert.Equal(t, "scale_down", p.Name())
	assert.Equal(t, "Scale model to 50%", p.Description())
	assert.Equal(t, transform.UniformScale(0.5), p.Transform())

	m := cube(t)
	require.NoError(t, p.Process(m))
	lo, hi := m.Mesh.Bounds()
	assert.InDelta(t, -0.25, lo.X(), 1e-9)
	assert.InDelta(t, 0.25, hi.Y(), 1e-9)
}

func TestTransformPluginError(t *testing.T) {
	p := NewTransformPlugin("bad", "", transform.Scale{X: gomath.NaN(), Y: 1, Z: 1})
	m := cube(t)
	before := m.Clone()
	err := p.Process(m)
	require.ErrorIs(t, err, mesh.ErrInvalidParameter)
	assert.Equal(t, before.Mesh.Vertices, m.Mesh.Vertices)
}

func TestSmoothNormals(t *testing.T) {
	m := cube(t)
	for i := range m.Mesh.Vertices {
		m.Mesh.Vertices[i].Normal = mgl64.Vec3{}
	}
	require.NoError(t, NewSmoothNormals().Process(m))
	for _, v := range m.Mesh.Vertices {
		assert.InDelta(t, 1, v.Normal.Len(), 1e-9)
		// Each cube vertex belongs to one side, so its normal points outward
		// along one axis.
		assert.Greater(t, v.Normal.Dot(v.Position), 0.0)
	}
}

func TestFuncPluginWithoutFunction(t *testing.T) {
	err := Func("empty", "", nil).Process(cube(t))
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
}

func TestCompositeRunsInOrder(t *testing.T) {
	var log []string
	c := NewComposite("pipeline", "three steps",
		recorder("a", &log, nil),
		recorder("b", &log, nil),
	).Add(recorder("c", &log, nil))

	require.NoError(t, c.Process(cube(t)))
	assert.Equal(t, []string{"a", "b", "c"}, log)
	assert.Len(t, c.Steps(), 3)
}

func TestCompositeStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	var log []string
	c := NewComposite("pipeline", "",
		recorder("a", &log, nil),
		recorder("b", &log, boom),
		recorder("c", &log, nil),
	)

	err := c.Process(cube(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompositeSubfailure)
	assert.ErrorIs(t, err, boom)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "pipeline", stepErr.Composite)
	assert.Equal(t, 1, stepErr.Step)
	assert.Equal(t, "b", stepErr.Plugin)
	assert.Equal(t, []string{"a", "b"}, log)
}

func TestCompositeDoesNotRollBack(t *testing.T) {
	c := NewComposite("move_then_fail", "",
		NewTransformPlugin("up", "", transform.Translate{Y: 1}),
		NewTransformPlugin("bad", "", transform.Scale{X: gomath.Inf(1), Y: 1, Z: 1}),
	)
	m := cube(t)
	err := c.Process(m)
	require.ErrorIs(t, err, mesh.ErrInvalidParameter)

	lo, _ := m.Mesh.Bounds()
	assert.InDelta(t, 0.5, lo.Y(), 1e-9)
}

func TestNestedComposite(t *testing.T) {
	boom := errors.New("boom")
	var log []string
	inner := NewComposite("inner", "", recorder("x", &log, boom))
	outer := NewComposite("outer", "", recorder("a", &log, nil), inner)

	err := outer.Process(cube(t))
	assert.ErrorIs(t, err, boom)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "outer", stepErr.Composite)
	assert.Equal(t, 1, stepErr.Step)
}

func TestCompositeLogsSteps(t *testing.T) {
	logs := observe(t)
	c := NewComposite("pipeline", "", NewSmoothNormals(), GroundPlugin{})
	require.NoError(t, c.Process(cube(t)))

	entries := logs.FilterMessage("composite step").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "smooth_normals", entries[0].ContextMap()["plugin"])
	assert.Equal(t, "ground", entries[1].ContextMap()["plugin"])
	assert.Equal(t, "plugin", entries[0].LoggerName)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Len())

	r.Register(NewSmoothNormals())
	r.Register(GroundPlugin{})

	p, ok := r.Get("ground")
	require.True(t, ok)
	assert.Equal(t, "ground", p.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)

	_, err := r.Lookup("missing")
	assert.ErrorIs(t, err, ErrPluginNotFound)

	assert.Equal(t, []string{"smooth_normals", "ground"}, r.Names())
	infos := r.List()
	require.Len(t, infos, 2)
	assert.Equal(t, "Place the model on the XZ plane", infos[1].Description)
}

func TestRegistryReplace(t *testing.T) {
	logs := observe(t)
	r := NewRegistry()
	r.Register(NewTransformPlugin("scale", "first", transform.UniformScale(2)))
	r.Register(GroundPlugin{})
	r.Register(NewTransformPlugin("scale", "second", transform.UniformScale(3)))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"scale", "ground"}, r.Names())

	p, err := r.Lookup("scale")
	require.NoError(t, err)
	assert.Equal(t, "second", p.Description())
	assert.Equal(t, 1, logs.FilterMessage("plugin replaced").Len())
}

func TestRegistryIgnoresNil(t *testing.T) {
	r := NewRegistry()
	assert.NotPanics(t, func() { r.Register(nil) })
	assert.Zero(t, r.Len())
	assert.Empty(t, r.List())
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("p%d", i%4)
			r.Register(Func(name, "", func(*mesh.Model) error { return nil }))
			_, _ = r.Lookup(name)
			_ = r.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, r.Len())
}

func TestMergePlugin(t *testing.T) {
	src := cube(t)
	src.SetMaterial(mesh.NewMaterial("red"))
	p := NewMerge("add_cube", "", src)

	// The plugin keeps its own copy.
	require.NoError(t, transform.Translate{X: 10}.Apply(src))

	m := cube(t)
	require.NoError(t, p.Process(m))
	assert.Len(t, m.Mesh.Vertices, 48)
	assert.Len(t, m.Mesh.Faces, 12)
	assert.Contains(t, m.Mesh.Materials, "red")
	require.NoError(t, m.Mesh.Validate())

	_, hi := m.Mesh.Bounds()
	assert.InDelta(t, 0.5, hi.X(), 1e-9)
}

func TestCenterAndGround(t *testing.T) {
	m := cube(t)
	require.NoError(t, transform.Translate{X: 3, Y: 4, Z: -2}.Apply(m))

	require.NoError(t, CenterPlugin{KeepY: true}.Process(m))
	lo, hi := m.Mesh.Bounds()
	assert.InDelta(t, 0, lo.X()+hi.X(), 1e-9)
	assert.InDelta(t, 0, lo.Z()+hi.Z(), 1e-9)
	assert.InDelta(t, 3.5, lo.Y(), 1e-9)

	require.NoError(t, GroundPlugin{}.Process(m))
	lo, _ = m.Mesh.Bounds()
	assert.InDelta(t, 0, lo.Y(), 1e-9)

	require.NoError(t, CenterPlugin{}.Process(m))
	lo, hi = m.Mesh.Bounds()
	assert.InDelta(t, 0, lo.Y()+hi.Y(), 1e-9)
	assert.Equal(t, "center", CenterPlugin{}.Name())
	assert.Equal(t, "center_xz", CenterPlugin{KeepY: true}.Name())
}

func TestSnowman(t *testing.T) {
	m := mesh.NewModel("snowman")
	require.NoError(t, NewSnowman().Process(m))
	require.NoError(t, m.Mesh.Validate())

	for _, name := range []string{MaterialSnow, MaterialCoal, MaterialCarrot, MaterialWood, MaterialHat} {
		assert.Contains(t, m.Mesh.Materials, name)
	}
	used := map[string]bool{}
	for _, mat := range m.Mesh.FaceMaterials {
		used[mat] = true
	}
	assert.Len(t, used, 5)

	lo, hi := m.Mesh.Bounds()
	assert.InDelta(t, 0, lo.Y(), 1e-9)
	assert.InDelta(t, 4.15, hi.Y(), 1e-9)

	// The carrot points forward out of the head.
	tip := gomath.Inf(-1)
	for fi, f := range m.Mesh.Faces {
		if m.Mesh.FaceMaterials[fi] != MaterialCarrot {
			continue
		}
		for _, idx := range f.Indices {
			tip = gomath.Max(tip, m.Mesh.Vertices[idx].Position.Z())
		}
	}
	assert.InDelta(t, 0.85, tip, 1e-9)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"smooth_normals", "center", "center_xz", "ground", "snowman"}, r.Names())
	for _, info := range r.List() {
		assert.NotEmpty(t, info.Description, info.Name)
	}
}
