package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// QuatFromAxisAngle creates a unit quaternion rotating by degrees about axis.
// The axis need not be normalized.
func QuatFromAxisAngle(axis mgl64.Vec3, degrees float64) (mgl64.Quat, error) {
	if IsZero(axis) {
		return mgl64.QuatIdent(), ErrZeroVector
	}
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), axis.Normalize()), nil
}

// QuatFromEuler creates a quaternion from roll, pitch and yaw in degrees.
// Roll is applied first about the fixed X axis, then pitch about fixed Y,
// then yaw about fixed Z.
func QuatFromEuler(roll, pitch, yaw float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(roll), AxisX.Vec())
	qy := mgl64.QuatRotate(mgl64.DegToRad(pitch), AxisY.Vec())
	qz := mgl64.QuatRotate(mgl64.DegToRad(yaw), AxisZ.Vec())
	return qz.Mul(qy).Mul(qx).Normalize()
}

// QuatBetween returns the shortest rotation taking direction from onto
// direction to. Opposite directions rotate by pi about an axis perpendicular
// to from: from x X when |from.x| < |from.y|, otherwise from x Y.
func QuatBetween(from, to mgl64.Vec3) (mgl64.Quat, error) {
	if IsZero(from) || IsZero(to) {
		return mgl64.QuatIdent(), ErrZeroVector
	}
	f := from.Normalize()
	t := to.Normalize()
	d := f.Dot(t)

	if d >= 1-1e-9 {
		return mgl64.QuatIdent(), nil
	}
	if d <= -1+1e-9 {
		var axis mgl64.Vec3
		if math.Abs(f[0]) < math.Abs(f[1]) {
			axis = f.Cross(AxisX.Vec())
		} else {
			axis = f.Cross(AxisY.Vec())
		}
		return mgl64.QuatRotate(math.Pi, axis.Normalize()), nil
	}

	return mgl64.Quat{W: 1 + d, V: f.Cross(t)}.Normalize(), nil
}

// RotateAbout rotates p by angle radians about the unit axis through center.
func RotateAbout(p, axis mgl64.Vec3, angle float64, center mgl64.Vec3) mgl64.Vec3 {
	q := mgl64.QuatRotate(angle, axis)
	return center.Add(q.Rotate(p.Sub(center)))
}
