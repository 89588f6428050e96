package primitive

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// assertOutward checks that every non-degenerate face normal points away
// from center.
func assertOutward(t *testing.T, m *mesh.Model, center mgl64.Vec3) {
	t.Helper()
	for i, f := range m.Mesh.Faces {
		n, err := m.Mesh.FaceNormal(i)
		if err != nil {
			continue
		}
		var centroid mgl64.Vec3
		for _, idx := range f.Indices {
			centroid = centroid.Add(m.Mesh.Vertices[idx].Position)
		}
		centroid = centroid.Mul(1 / float64(len(f.Indices)))
		assert.Greater(t, n.Dot(centroid.Sub(center)), 0.0, "face %d points inwards", i)
	}
}

func TestCubeUnit(t *testing.T) {
	m, err := DefaultCube().Build()
	require.NoError(t, err)
	assert.Equal(t, "cube", m.Name)
	assert.Len(t, m.Mesh.Vertices, 24)
	assert.Len(t, m.Mesh.Faces, 6)
	require.NoError(t, m.Mesh.Validate())

	for _, v := range m.Mesh.Vertices {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, 0.5, math.Abs(v.Position[k]), 1e-12)
		}
		assert.True(t, v.HasTexCoord)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-12)
	}
	assertOutward(t, m, mgl64.Vec3{})
}

func TestCubeCenterAndNoUVs(t *testing.T) {
	c := DefaultCube()
	c.Size = 2
	c.Center = mgl64.Vec3{5, 0, 0}
	c.UVs = false
	m, err := c.Build()
	require.NoError(t, err)

	lo, hi := m.Mesh.Bounds()
	assert.Equal(t, mgl64.Vec3{4, -1, -1}, lo)
	assert.Equal(t, mgl64.Vec3{6, 1, 1}, hi)
	assert.False(t, m.Mesh.Vertices[0].HasTexCoord)
	assertOutward(t, m, c.Center)
}

func TestSphere(t *testing.T) {
	s := DefaultSphere()
	s.Segments = 8
	s.Rings = 4
	s.Radius = 2
	m, err := s.Build()
	require.NoError(t, err)

	assert.Len(t, m.Mesh.Vertices, (8+1)*(4+1))
	// Two pole rows of 8 triangles and two middle rows of 16.
	assert.Len(t, m.Mesh.Faces, 8*2*(4-1))
	require.NoError(t, m.Mesh.Validate())
	for _, v := range m.Mesh.Vertices {
		assert.InDelta(t, 2, v.Position.Len(), 1e-9)
	}
	assertOutward(t, m, mgl64.Vec3{})
}

func TestCylinder(t *testing.T) {
	c := DefaultCylinder()
	c.Segments = 6
	c.HeightSegments = 3
	m, err := c.Build()
	require.NoError(t, err)

	side := (3 + 1) * (6 + 1)
	caps := 2 * (6 + 1)
	assert.Len(t, m.Mesh.Vertices, side+caps)
	assert.Len(t, m.Mesh.Faces, 6*3+2*6)
	require.NoError(t, m.Mesh.Validate())

	lo, hi := m.Mesh.Bounds()
	assert.InDelta(t, -1, lo.Y(), 1e-12)
	assert.InDelta(t, 1, hi.Y(), 1e-12)
	assertOutward(t, m, mgl64.Vec3{})

	c.Caps = false
	m, err = c.Build()
	require.NoError(t, err)
	assert.Len(t, m.Mesh.Faces, 6*3)
}

func TestPlane(t *testing.T) {
	p := DefaultPlane()
	p.SegmentsX = 4
	p.SegmentsZ = 2
	m, err := p.Build()
	require.NoError(t, err)

	assert.Len(t, m.Mesh.Vertices, 5*3)
	assert.Len(t, m.Mesh.Faces, 8)
	for i := range m.Mesh.Faces {
		n, err := m.Mesh.FaceNormal(i)
		require.NoError(t, err)
		assert.InDelta(t, 1, n.Y(), 1e-12)
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*mesh.Model, error)
	}{
		{"cube size", Cube{Size: 0}.Build},
		{"cube nan", Cube{Size: math.NaN()}.Build},
		{"sphere radius", Sphere{Radius: -1, Segments: 8, Rings: 4}.Build},
		{"sphere segments", Sphere{Radius: 1, Segments: 2, Rings: 4}.Build},
		{"sphere rings", Sphere{Radius: 1, Segments: 8, Rings: 1}.Build},
		{"cylinder height", Cylinder{Radius: 1, Height: 0, Segments: 8, HeightSegments: 1}.Build},
		{"cylinder rows", Cylinder{Radius: 1, Height: 1, Segments: 8}.Build},
		{"plane segments", Plane{Width: 1, Depth: 1, SegmentsX: 0, SegmentsZ: 1}.Build},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.build()
			assert.Nil(t, m)
			assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
		})
	}
}
