package transform

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/pkg/math"
)

// Quaternion rotates positions and normals about the origin.
type Quaternion struct {
	Q mgl64.Quat
}

// QuaternionFromAxisAngle rotates by degrees about axis.
func QuaternionFromAxisAngle(axis mgl64.Vec3, degrees float64) (Quaternion, error) {
	q, err := math.QuatFromAxisAngle(axis, degrees)
	if err != nil {
		return Quaternion{}, fmt.Errorf("%w: rotation axis: %v", mesh.ErrInvalidParameter, err)
	}
	return Quaternion{Q: q}, nil
}

// QuaternionFromEuler builds a rotation from roll, pitch and yaw in degrees.
// Roll about X is applied first, then pitch about Y, then yaw about Z, all
// about the fixed world axes.
func QuaternionFromEuler(roll, pitch, yaw float64) Quaternion {
	return Quaternion{Q: math.QuatFromEuler(roll, pitch, yaw)}
}

// QuaternionFromDirections builds the shortest rotation taking from onto to.
func QuaternionFromDirections(from, to mgl64.Vec3) (Quaternion, error) {
	q, err := math.QuatBetween(from, to)
	if err != nil {
		return Quaternion{}, fmt.Errorf("%w: direction: %v", mesh.ErrInvalidParameter, err)
	}
	return Quaternion{Q: q}, nil
}

// Then returns the rotation that applies q first and next second.
func (q Quaternion) Then(next Quaternion) Quaternion {
	return Quaternion{Q: next.Q.Mul(q.Q).Normalize()}
}

// Slerp interpolates between q and to; t=0 yields q and t=1 yields to.
func (q Quaternion) Slerp(to Quaternion, t float64) Quaternion {
	return Quaternion{Q: mgl64.QuatSlerp(q.Q.Normalize(), to.Q.Normalize(), t)}
}

// Apply implements mesh.Transform.
func (q Quaternion) Apply(m *mesh.Model) error {
	if err := checkFinite("quaternion", q.Q.W, q.Q.V[0], q.Q.V[1], q.Q.V[2]); err != nil {
		return err
	}
	if q.Q.Len() < math.Epsilon {
		return fmt.Errorf("%w: zero quaternion", mesh.ErrInvalidParameter)
	}
	unit := q.Q.Normalize()
	for i := range m.Mesh.Vertices {
		v := &m.Mesh.Vertices[i]
		v.Position = unit.Rotate(v.Position)
		v.Normal = unit.Rotate(v.Normal)
	}
	return nil
}
