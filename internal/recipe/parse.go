package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// ParseVec3 parses "x,y,z".
func ParseVec3(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("%w: %q is not x,y,z", mesh.ErrInvalidParameter, s)
	}
	var v mgl64.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("%w: %q: %v", mesh.ErrInvalidParameter, s, err)
		}
		v[i] = f
	}
	return v, nil
}

// ParseAxisAngle parses "axis,degrees" where axis is x, y or z.
func ParseAxisAngle(s string) (mgl64.Vec3, float64, error) {
	name, deg, ok := strings.Cut(s, ",")
	if !ok {
		return mgl64.Vec3{}, 0, fmt.Errorf("%w: %q is not axis,degrees", mesh.ErrInvalidParameter, s)
	}
	axis, err := Step{}.axis(strings.TrimSpace(name))
	if err != nil {
		return mgl64.Vec3{}, 0, err
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(deg), 64)
	if err != nil {
		return mgl64.Vec3{}, 0, fmt.Errorf("%w: %q: %v", mesh.ErrInvalidParameter, s, err)
	}
	return axis, d, nil
}
