package wizard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// StepBody persists the data entered at one step. Submit returning nil error
// is the only signal that lets the wizard advance.
type StepBody interface {
	ID() StepID
	Submit(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (any, error)
}

// Registry binds every step to exactly one body.
type Registry struct {
	steps  []Step
	bodies map[StepID]StepBody
}

// NewRegistry fails unless each of s has exactly one body and no body is
// left over.
func NewRegistry(s []Step, bodies ...StepBody) (*Registry, error) {
	known := make(map[StepID]struct{}, len(s))
	for _, st := range s {
		known[st.ID] = struct{}{}
	}
	m := make(map[StepID]StepBody, len(bodies))
	for _, b := range bodies {
		id := b.ID()
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("wizard: body for unknown step %q", id)
		}
		if _, dup := m[id]; dup {
			return nil, fmt.Errorf("wizard: duplicate body for step %q", id)
		}
		m[id] = b
	}
	for _, st := range s {
		if _, ok := m[st.ID]; !ok {
			return nil, fmt.Errorf("wizard: no body for step %q", st.ID)
		}
	}
	return &Registry{steps: s, bodies: m}, nil
}

func (r *Registry) Steps() []Step { return r.steps }

func (r *Registry) Body(id StepID) (StepBody, bool) {
	b, ok := r.bodies[id]
	return b, ok
}
