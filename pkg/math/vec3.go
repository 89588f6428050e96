// Package math provides float64 geometry helpers on top of mgl64.
package math

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

var (
	ErrZeroVector  = errors.New("zero-length vector")
	ErrUnknownAxis = errors.New("unknown axis")
)

// Axis names one of the three principal axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vec returns the unit vector of the axis.
func (a Axis) Vec() mgl64.Vec3 {
	switch a {
	case AxisY:
		return mgl64.Vec3{0, 1, 0}
	case AxisZ:
		return mgl64.Vec3{0, 0, 1}
	default:
		return mgl64.Vec3{1, 0, 0}
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// ParseAxis parses "x", "y" or "z" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// IsZero reports whether v is too short to normalize.
func IsZero(v mgl64.Vec3) bool {
	return v.Len() < Epsilon
}

// NormalizeOr returns v normalized, or fallback if v is too short.
func NormalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return fallback
	}
	return v.Mul(1 / l)
}

// Decompose splits v into its signed length along the unit axis and the
// perpendicular remainder.
func Decompose(v, axis mgl64.Vec3) (float64, mgl64.Vec3) {
	along := v.Dot(axis)
	return along, v.Sub(axis.Mul(along))
}

// Basis returns two unit vectors perpendicular to the unit axis n and to each
// other. Principal axes get the remaining principal axes in x, y, z order,
// so X yields (Y, Z), Y yields (X, Z) and Z yields (X, Y).
func Basis(n mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	const tol = 1e-12
	ax, ay, az := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2])
	switch {
	case ay < tol && az < tol:
		return AxisY.Vec(), AxisZ.Vec()
	case ax < tol && az < tol:
		return AxisX.Vec(), AxisZ.Vec()
	case ax < tol && ay < tol:
		return AxisX.Vec(), AxisY.Vec()
	}

	pick := AxisX.Vec()
	if ax > 0.9 {
		pick = AxisY.Vec()
	}
	u := n.Cross(pick).Normalize()
	v := n.Cross(u).Normalize()
	return u, v
}

// Orthogonalize removes the component of v along the unit axis and
// normalizes the rest.
func Orthogonalize(v, axis mgl64.Vec3) (mgl64.Vec3, error) {
	_, perp := Decompose(v, axis)
	if IsZero(perp) {
		return mgl64.Vec3{}, ErrZeroVector
	}
	return perp.Normalize(), nil
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates between two vectors.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual reports whether a and b differ by at most tol per component.
func ApproxEqual(a, b mgl64.Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
