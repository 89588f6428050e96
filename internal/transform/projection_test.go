package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

func TestPerspective(t *testing.T) {
	t.Run("projects onto the image plane", func(t *testing.T) {
		m := points(mgl64.Vec3{1, 2, 5})
		require.NoError(t, m.Apply(NewPerspective(mgl64.Vec3{0, 0, -5}, 1)))
		assertVecInDelta(t, mgl64.Vec3{0.1, 0.2, math.Sqrt(105)}, m.Mesh.Vertices[0].Position, tol)
	})

	t.Run("keeps distance from the eye", func(t *testing.T) {
		m := points(mgl64.Vec3{0, 0, 2}, mgl64.Vec3{1, 0, 5})
		require.NoError(t, m.Apply(NewPerspective(mgl64.Vec3{}, 1)))
		assert.InDelta(t, 2, m.Mesh.Vertices[0].Position.Z(), tol)
		assert.InDelta(t, math.Sqrt(26), m.Mesh.Vertices[1].Position.Z(), tol)
		assert.InDelta(t, 0.2, m.Mesh.Vertices[1].Position.X(), tol)
	})

	t.Run("preserve depth", func(t *testing.T) {
		m := points(mgl64.Vec3{1, 2, 5})
		p := NewPerspective(mgl64.Vec3{0, 0, -5}, 1)
		p.PreserveDepth = true
		require.NoError(t, m.Apply(p))
		assertVecInDelta(t, mgl64.Vec3{0.1, 0.2, 5}, m.Mesh.Vertices[0].Position, tol)
	})

	t.Run("behind the eye fails untouched", func(t *testing.T) {
		m := cube(t)
		orig := positions(m)
		err := m.Apply(NewPerspective(mgl64.Vec3{}, 1))
		assert.ErrorIs(t, err, mesh.ErrDegenerateGeometry)
		assertPositions(t, orig, m, 0)
	})

	t.Run("near plane", func(t *testing.T) {
		p := NewPerspective(mgl64.Vec3{0, 0, -1}, 1)
		p.Near = 0.75
		assert.ErrorIs(t, p.Apply(cube(t)), mesh.ErrDegenerateGeometry)
		p.Near = 0.25
		assert.NoError(t, p.Apply(cube(t)))
	})

	t.Run("field of view", func(t *testing.T) {
		p, err := PerspectiveFOV(mgl64.Vec3{}, 90)
		require.NoError(t, err)
		assert.InDelta(t, 1, p.FocalLength, tol)

		for _, fov := range []float64{0, 180, -10, math.NaN()} {
			_, err := PerspectiveFOV(mgl64.Vec3{}, fov)
			assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
		}
	})

	t.Run("invalid parameters", func(t *testing.T) {
		assert.ErrorIs(t, NewPerspective(mgl64.Vec3{0, 0, -5}, 0).Apply(cube(t)), mesh.ErrInvalidParameter)
		p := NewPerspective(mgl64.Vec3{0, 0, -5}, 1)
		p.Near = -1
		assert.ErrorIs(t, p.Apply(cube(t)), mesh.ErrInvalidParameter)
	})
}

func TestOrthographic(t *testing.T) {
	t.Run("flattens", func(t *testing.T) {
		m := cube(t)
		require.NoError(t, m.Apply(OntoXY()))
		for _, v := range m.Mesh.Vertices {
			assert.Equal(t, 0.0, v.Position.Z())
			assert.InDelta(t, 0.5, math.Abs(v.Position.X()), tol)
		}
	})

	t.Run("preserve depth is identity for axis directions", func(t *testing.T) {
		m := cube(t)
		orig := positions(m)
		o := OntoXZ()
		o.PreserveDepth = true
		require.NoError(t, m.Apply(o))
		assertPositions(t, orig, m, tol)
	})

	t.Run("view bounds", func(t *testing.T) {
		m := points(mgl64.Vec3{2, 1, 5}, mgl64.Vec3{-2, -1, 5}, mgl64.Vec3{0, 0, 0})
		require.NoError(t, m.Apply(OntoXY().Within(ViewBounds{MinU: -2, MaxU: 2, MinV: -1, MaxV: 1})))
		assertVecInDelta(t, mgl64.Vec3{1, 1, 0}, m.Mesh.Vertices[0].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{-1, -1, 0}, m.Mesh.Vertices[1].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{0, 0, 0}, m.Mesh.Vertices[2].Position, tol)
	})

	t.Run("invalid", func(t *testing.T) {
		assert.ErrorIs(t, Orthographic{}.Apply(cube(t)), mesh.ErrInvalidParameter)
		bad := OntoYZ().Within(ViewBounds{MinU: 1, MaxU: 1, MinV: 0, MaxV: 1})
		assert.ErrorIs(t, bad.Apply(cube(t)), mesh.ErrInvalidParameter)
	})
}

func TestCylindrical(t *testing.T) {
	t.Run("project", func(t *testing.T) {
		m := points(mgl64.Vec3{1, 5, 0}, mgl64.Vec3{0, 3, -4}, mgl64.Vec3{0, 3, 0})
		require.NoError(t, m.Apply(CylindricalY(2)))
		assertVecInDelta(t, mgl64.Vec3{2, 5, 0}, m.Mesh.Vertices[0].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{0, 3, -2}, m.Mesh.Vertices[1].Position, tol)
		// On the axis: left in place.
		assertVecInDelta(t, mgl64.Vec3{0, 3, 0}, m.Mesh.Vertices[2].Position, 0)
	})

	t.Run("offset center", func(t *testing.T) {
		c := CylindricalZ(1)
		c.Center = mgl64.Vec3{5, 5, 0}
		m := points(mgl64.Vec3{8, 5, 2})
		require.NoError(t, m.Apply(c))
		assertVecInDelta(t, mgl64.Vec3{6, 5, 2}, m.Mesh.Vertices[0].Position, tol)
	})

	t.Run("wrap keeps arc length", func(t *testing.T) {
		m := points(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{math.Pi / 2, 7, 1}, mgl64.Vec3{math.Pi, 0, 2})
		require.NoError(t, m.Apply(CylindricalY(1).Wrapped()))
		assertVecInDelta(t, mgl64.Vec3{0, 0, 1}, m.Mesh.Vertices[0].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{1, 7, 0}, m.Mesh.Vertices[1].Position, tol)
		assertVecInDelta(t, mgl64.Vec3{0, 0, -2}, m.Mesh.Vertices[2].Position, tol)
	})

	t.Run("wrap rejects points behind the axis", func(t *testing.T) {
		m := points(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1})
		orig := positions(m)
		assert.ErrorIs(t, m.Apply(CylindricalY(1).Wrapped()), mesh.ErrDegenerateGeometry)
		assertPositions(t, orig, m, 0)
	})

	t.Run("invalid", func(t *testing.T) {
		assert.ErrorIs(t, CylindricalX(0).Apply(cube(t)), mesh.ErrInvalidParameter)
		assert.ErrorIs(t, Cylindrical{Radius: 1}.Apply(cube(t)), mesh.ErrInvalidParameter)
	})
}
