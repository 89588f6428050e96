// Package primitive builds ready-to-transform models for basic shapes.
// Each shape is a config struct; start from its Default function, override
// fields, then call Build.
package primitive

import (
	"fmt"
	"math"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", mesh.ErrInvalidParameter, name, v)
	}
	return nil
}

func atLeast(name string, v, min int) error {
	if v < min {
		return fmt.Errorf("%w: %s must be at least %d, got %d", mesh.ErrInvalidParameter, name, min, v)
	}
	return nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
