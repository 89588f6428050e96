package transform

import (
	"fmt"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// Chain applies transforms in order as a single transform, so
// Chain(a, b) behaves like applying a and then b.
type Chain []mesh.Transform

// Sequence builds a Chain.
func Sequence(ts ...mesh.Transform) Chain {
	return Chain(ts)
}

// Apply implements mesh.Transform. It stops at the first failure without
// undoing earlier steps.
func (c Chain) Apply(m *mesh.Model) error {
	for i, t := range c {
		if err := t.Apply(m); err != nil {
			return fmt.Errorf("chain step %d: %w", i, err)
		}
	}
	return nil
}
