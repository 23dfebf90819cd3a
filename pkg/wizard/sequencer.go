// Package wizard drives the guided first-time setup: a fixed sequence of
// steps, each backed by a step body that persists its own record.
package wizard

import (
	"errors"

	"github.com/google/uuid"
)

type StepID string

const (
	StepProfile  StepID = "profile"
	StepProjects StepID = "projects"
	StepSkills   StepID = "skills"
	StepResume   StepID = "resume"
)

type Step struct {
	ID          StepID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var steps = []Step{
	{ID: StepProfile, Title: "Personal Information", Description: "Enter your basic information to get started"},
	{ID: StepProjects, Title: "Add Projects", Description: "Showcase your best work"},
	{ID: StepSkills, Title: "Add Skills", Description: "Highlight your expertise"},
	{ID: StepResume, Title: "Build Resume", Description: "Create your professional resume"},
}

// Steps returns the step descriptors in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

var ErrComplete = errors.New("wizard is already complete")

// Sequencer tracks the position in a fixed list of steps. After the last step
// it is Complete, which is terminal.
type Sequencer struct {
	steps    []Step
	index    int
	complete bool
}

func NewSequencer(s []Step) *Sequencer {
	return &Sequencer{steps: s}
}

// Restore rebuilds a sequencer at a persisted position; an out-of-range index
// is clamped.
func Restore(s []Step, index int, complete bool) *Sequencer {
	if index < 0 {
		index = 0
	}
	if index > len(s)-1 {
		index = len(s) - 1
	}
	return &Sequencer{steps: s, index: index, complete: complete}
}

// Current reports the active step; ok is false once complete.
func (q *Sequencer) Current() (step Step, ok bool) {
	if q.complete || len(q.steps) == 0 {
		return Step{}, false
	}
	return q.steps[q.index], true
}

func (q *Sequencer) Index() int     { return q.index }
func (q *Sequencer) Complete() bool { return q.complete }

// Advance moves to the next step, or to Complete from the last one.
func (q *Sequencer) Advance() error {
	if q.complete {
		return ErrComplete
	}
	if q.index < len(q.steps)-1 {
		q.index++
		return nil
	}
	q.complete = true
	return nil
}

// Retreat moves back one step; at the first step it does nothing.
func (q *Sequencer) Retreat() error {
	if q.complete {
		return ErrComplete
	}
	if q.index > 0 {
		q.index--
	}
	return nil
}

// Skip leaves the current step's data empty and moves on exactly like Advance.
func (q *Sequencer) Skip() error {
	return q.Advance()
}

// ResultURL is the public portfolio location shown after completion.
func ResultURL(ownerID uuid.UUID) string {
	return "/portfolio/" + ownerID.String()
}
