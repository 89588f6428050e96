package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/internal/primitive"
)

func points(ps ...mgl64.Vec3) *mesh.Model {
	m := mesh.NewModel("points")
	for _, p := range ps {
		m.Mesh.AddVertex(mesh.NewVertex(p, mgl64.Vec3{}))
	}
	return m
}

func column(t *testing.T) *mesh.Model {
	t.Helper()
	c := primitive.DefaultCylinder()
	c.Radius = 0.5
	c.Segments = 12
	c.HeightSegments = 8
	m, err := c.Build()
	require.NoError(t, err)
	return m
}

func assertUnitNormals(t *testing.T, m *mesh.Model) {
	t.Helper()
	for i, v := range m.Mesh.Vertices {
		assert.InDelta(t, 1, v.Normal.Len(), tol, "vertex %d", i)
	}
}

func TestTwist(t *testing.T) {
	t.Run("zero rate is identity", func(t *testing.T) {
		m := column(t)
		orig := positions(m)
		require.NoError(t, m.Apply(TwistY(0)))
		assertPositions(t, orig, m, tol)
	})

	t.Run("angle grows with height", func(t *testing.T) {
		m := points(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 0}, mgl64.Vec3{1, 2, 0})
		require.NoError(t, m.Apply(TwistY(90)))
		assertVecInDelta(t, mgl64.Vec3{1, 0, 0}, m.Mesh.Vertices[0].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{0, 1, -1}, m.Mesh.Vertices[1].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{-1, 2, 0}, m.Mesh.Vertices[2].Position, tol)
	})

	t.Run("center", func(t *testing.T) {
		m := points(mgl64.Vec3{2, 1, 0}, mgl64.Vec3{2, 2, 0})
		require.NoError(t, m.Apply(TwistY(180).At(mgl64.Vec3{1, 1, 0})))
		assertVecInDelta(t, mgl64.Vec3{2, 1, 0}, m.Mesh.Vertices[0].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{0, 2, 0}, m.Mesh.Vertices[1].Position, tol)
	})

	t.Run("keeps distance from axis", func(t *testing.T) {
		m := column(t)
		require.NoError(t, m.Apply(TwistY(45)))
		for _, v := range m.Mesh.Vertices {
			r := math.Hypot(v.Position.X(), v.Position.Z())
			if r > 1e-6 {
				assert.InDelta(t, 0.5, r, tol)
			}
		}
		assertUnitNormals(t, m)
	})

	assert.ErrorIs(t, Twist{DegreesPerUnit: 1}.Apply(column(t)), mesh.ErrInvalidParameter)
}

func TestBend(t *testing.T) {
	r := 2 / math.Pi // radius for 90 degrees over one unit

	t.Run("zero angle is identity", func(t *testing.T) {
		m := column(t)
		orig := positions(m)
		require.NoError(t, m.Apply(BendX(0, -1, 1)))
		assertPositions(t, orig, m, 0)
	})

	t.Run("regions", func(t *testing.T) {
		m := points(
			mgl64.Vec3{0, -1, 0},  // before the range
			mgl64.Vec3{0, 0, 0},   // at the start
			mgl64.Vec3{0, 0.5, 0}, // halfway
			mgl64.Vec3{3, 1, 0},   // at the end, off-centre in X
			mgl64.Vec3{0, 2, 0},   // past the end
		)
		require.NoError(t, m.Apply(BendX(90, 0, 1)))
		v := m.Mesh.Vertices
		assertVecInDelta(t, mgl64.Vec3{0, -1, 0}, v[0].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{0, 0, 0}, v[1].Position, tol)
		s := math.Sqrt2 / 2
		assertVecInDelta(t, mgl64.Vec3{0, r * s, r - r*s}, v[2].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{3, r, r}, v[3].Position, tol)
		// Carried rigidly along the end tangent, which now points along Z.
		assertVecInDelta(t, mgl64.Vec3{0, r, r + 1}, v[4].Position, tol)
	})

	t.Run("neutral line keeps its length", func(t *testing.T) {
		const steps = 200
		var ps []mgl64.Vec3
		for i := 0; i <= steps; i++ {
			ps = append(ps, mgl64.Vec3{0, float64(i) / steps * 2, 0})
		}
		m := points(ps...)
		require.NoError(t, m.Apply(BendX(120, 0.5, 1.5)))
		length := 0.0
		for i := 1; i <= steps; i++ {
			length += m.Mesh.Vertices[i].Position.Sub(m.Mesh.Vertices[i-1].Position).Len()
		}
		assert.InDelta(t, 2, length, 1e-4)
	})

	t.Run("negative angle bends the other way", func(t *testing.T) {
		m := points(mgl64.Vec3{0, 1, 0})
		require.NoError(t, m.Apply(BendX(-90, 0, 1)))
		assertVecInDelta(t, mgl64.Vec3{0, r, -r}, m.Mesh.Vertices[0].Position, tol)
	})

	t.Run("mesh normals", func(t *testing.T) {
		m := column(t)
		require.NoError(t, m.Apply(BendZ(60, -0.5, 0.5)))
		assertUnitNormals(t, m)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, b := range []Bend{
			BendX(45, 1, 1),
			BendX(45, 2, 1),
			{Axis: mgl64.Vec3{1, 0, 0}, Direction: mgl64.Vec3{2, 0, 0}, Degrees: 45, Min: 0, Max: 1},
			{Direction: mgl64.Vec3{0, 1, 0}, Degrees: 45, Min: 0, Max: 1},
		} {
			m := column(t)
			orig := positions(m)
			assert.ErrorIs(t, b.Apply(m), mesh.ErrInvalidParameter)
			assertPositions(t, orig, m, 0)
		}
	})
}

func TestTaper(t *testing.T) {
	t.Run("unit scales are identity", func(t *testing.T) {
		m := cube(t)
		orig := positions(m)
		require.NoError(t, m.Apply(TaperY([2]float64{1, 1}, [2]float64{1, 1}, -0.5, 0.5)))
		assertPositions(t, orig, m, 0)
	})

	t.Run("clamped outside the range", func(t *testing.T) {
		m := points(mgl64.Vec3{1, -1, 1}, mgl64.Vec3{1, 0.5, 1}, mgl64.Vec3{1, 5, 1})
		require.NoError(t, m.Apply(TaperY([2]float64{2, 2}, [2]float64{0.5, 0.5}, 0, 1)))
		assertVecInDelta(t, mgl64.Vec3{2, -1, 2}, m.Mesh.Vertices[0].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{1.25, 0.5, 1.25}, m.Mesh.Vertices[1].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{0.5, 5, 0.5}, m.Mesh.Vertices[2].Position, tol)
	})

	t.Run("scale pair follows the perpendicular basis", func(t *testing.T) {
		m := points(mgl64.Vec3{0.5, 1, 1})
		require.NoError(t, m.Apply(TaperX([2]float64{2, 3}, [2]float64{2, 3}, 0, 1)))
		assertVecInDelta(t, mgl64.Vec3{0.5, 2, 3}, m.Mesh.Vertices[0].Position, tol)
	})

	t.Run("zero end scale makes a cone", func(t *testing.T) {
		m := cube(t)
		require.NoError(t, m.Apply(TaperY([2]float64{1, 1}, [2]float64{0, 0}, -0.5, 0.5)))
		for _, v := range m.Mesh.Vertices {
			for k := 0; k < 3; k++ {
				assert.False(t, math.IsNaN(v.Position[k]) || math.IsNaN(v.Normal[k]))
			}
			if v.Position.Y() > 0 {
				assert.InDelta(t, 0, v.Position.X(), tol)
				assert.InDelta(t, 0, v.Position.Z(), tol)
			}
		}
		assertUnitNormals(t, m)
	})

	t.Run("invalid range", func(t *testing.T) {
		err := TaperZ([2]float64{1, 1}, [2]float64{2, 2}, 3, 3).Apply(cube(t))
		assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
	})
}
