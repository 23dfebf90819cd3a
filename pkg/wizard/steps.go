package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/folio/pkg/portfolio"
	"github.com/artem13815/folio/pkg/profile"
	"github.com/artem13815/folio/pkg/project"
	"github.com/artem13815/folio/pkg/resume"
	"github.com/artem13815/folio/pkg/skill"
)

var ErrBadPayload = errors.New("invalid step payload")

func decode(payload json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

type profileStep struct{ uc profile.UseCase }

func NewProfileStep(uc profile.UseCase) StepBody { return profileStep{uc: uc} }

func (profileStep) ID() StepID { return StepProfile }

func (b profileStep) Submit(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (any, error) {
	var in profile.Input
	if err := decode(payload, &in); err != nil {
		return nil, err
	}
	return b.uc.Save(ctx, ownerID, in)
}

type projectStep struct{ uc project.UseCase }

func NewProjectStep(uc project.UseCase) StepBody { return projectStep{uc: uc} }

func (projectStep) ID() StepID { return StepProjects }

func (b projectStep) Submit(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (any, error) {
	in := project.DefaultInput()
	if err := decode(payload, &in); err != nil {
		return nil, err
	}
	return b.uc.Create(ctx, ownerID, in)
}

type skillStep struct{ uc skill.UseCase }

func NewSkillStep(uc skill.UseCase) StepBody { return skillStep{uc: uc} }

func (skillStep) ID() StepID { return StepSkills }

func (b skillStep) Submit(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (any, error) {
	in := skill.DefaultInput()
	if err := decode(payload, &in); err != nil {
		return nil, err
	}
	return b.uc.Create(ctx, ownerID, in)
}

// ResumeResult is the preview produced by the last step.
type ResumeResult struct {
	Draft    resume.Draft    `json:"draft"`
	Document resume.Document `json:"document"`
}

func (r ResumeResult) WizardDraft() resume.Draft { return r.Draft }

type resumeStep struct{ records portfolio.UseCase }

// NewResumeStep builds the resume from the owner's current records and the submitted draft.
func NewResumeStep(records portfolio.UseCase) StepBody { return resumeStep{records: records} }

func (resumeStep) ID() StepID { return StepResume }

func (b resumeStep) Submit(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (any, error) {
	var d resume.Draft
	if err := decode(payload, &d); err != nil {
		return nil, err
	}
	d.Normalize()
	if err := d.Validate().Err(); err != nil {
		return nil, err
	}
	snap, err := b.records.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ResumeResult{
		Draft:    d,
		Document: resume.Generate(snap.Profile, snap.Skills, snap.Projects, d),
	}, nil
}

// Bodies returns one body per step, wired to the entity use cases.
func Bodies(profiles profile.UseCase, projects project.UseCase, skills skill.UseCase, records portfolio.UseCase) []StepBody {
	return []StepBody{
		NewProfileStep(profiles),
		NewProjectStep(projects),
		NewSkillStep(skills),
		NewResumeStep(records),
	}
}
