package plugin

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshcraft/internal/logger"
	"github.com/Faultbox/meshcraft/internal/mesh"
)

// StepError reports which step of a composite failed.
type StepError struct {
	Composite string
	Step      int
	Plugin    string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %d (%s): %v", e.Composite, e.Step, e.Plugin, e.Err)
}

// Unwrap exposes the step's own error.
func (e *StepError) Unwrap() error { return e.Err }

// Is reports ErrCompositeSubfailure so callers can test the kind directly.
func (e *StepError) Is(target error) bool { return target == ErrCompositeSubfailure }

// CompositePlugin runs sub-plugins in order. The first failure stops it and
// is returned as a *StepError; steps that already ran are not undone.
type CompositePlugin struct {
	name        string
	description string
	steps       []Plugin
}

// NewComposite creates a composite of the given steps.
func NewComposite(name, description string, steps ...Plugin) *CompositePlugin {
	return &CompositePlugin{name: name, description: description, steps: append([]Plugin(nil), steps...)}
}

// Add appends a step and returns c for chaining.
func (c *CompositePlugin) Add(p Plugin) *CompositePlugin {
	c.steps = append(c.steps, p)
	return c
}

func (c *CompositePlugin) Name() string        { return c.name }
func (c *CompositePlugin) Description() string { return c.description }

// Steps returns the sub-plugins in order.
func (c *CompositePlugin) Steps() []Plugin {
	return append([]Plugin(nil), c.steps...)
}

// Process runs every step against m.
func (c *CompositePlugin) Process(m *mesh.Model) error {
	log := logger.Named("plugin")
	for i, p := range c.steps {
		log.Debug("composite step",
			zap.String("composite", c.name),
			zap.Int("step", i),
			zap.String("plugin", p.Name()),
			zap.String("model", m.Name))
		if err := p.Process(m); err != nil {
			return &StepError{Composite: c.name, Step: i, Plugin: p.Name(), Err: err}
		}
	}
	return nil
}
