package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/folio/pkg/resume"
)

var (
	ErrSubmissionInFlight = errors.New("a wizard submission is already in progress")
	ErrSessionChanged     = errors.New("session changed before the step finished saving")
	ErrStepMismatch       = errors.New("step is not the current wizard step")
)

// View is what clients render: the step list, the position and, once
// complete, where the finished portfolio lives.
type View struct {
	Steps     []Step       `json:"steps"`
	Index     int          `json:"index"`
	Current   *Step        `json:"current,omitempty"`
	Complete  bool         `json:"complete"`
	ResultURL string       `json:"resultUrl,omitempty"`
	Draft     resume.Draft `json:"draft"`
}

// Outcome of a successful step submission.
type Outcome struct {
	Wizard View `json:"wizard"`
	Result any  `json:"result,omitempty"`
}

// DraftCarrier is implemented by step results that replace the stored resume draft.
type DraftCarrier interface {
	WizardDraft() resume.Draft
}

type UseCase interface {
	State(ctx context.Context, ownerID uuid.UUID) (View, error)
	// Submit runs the body of the current step and advances only if it succeeds.
	Submit(ctx context.Context, ownerID uuid.UUID, step StepID, payload json.RawMessage) (Outcome, error)
	Skip(ctx context.Context, ownerID uuid.UUID) (View, error)
	Back(ctx context.Context, ownerID uuid.UUID) (View, error)
	// Restart returns an unfinished wizard to its first step.
	Restart(ctx context.Context, ownerID uuid.UUID) (View, error)
	EditDraft(ctx context.Context, ownerID uuid.UUID, edit func(*resume.Draft) error) (View, error)
	// Discard drops the owner's state; a submission still running is not applied.
	Discard(ctx context.Context, ownerID uuid.UUID) error
}

type service struct {
	store    StateStore
	registry *Registry
	log      *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

func NewService(store StateStore, registry *Registry, log *zap.Logger) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		store:    store,
		registry: registry,
		log:      log,
		now:      time.Now,
		inflight: make(map[uuid.UUID]struct{}),
	}
}

func (s *service) load(ctx context.Context, ownerID uuid.UUID) (State, error) {
	st, err := s.store.Load(ctx, ownerID)
	if errors.Is(err, ErrNoState) {
		return NewState(ownerID), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load wizard state: %w", err)
	}
	st.Draft.Normalize()
	return st, nil
}

func (s *service) save(ctx context.Context, st State) error {
	st.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, st); err != nil {
		return fmt.Errorf("save wizard state: %w", err)
	}
	return nil
}

func (s *service) view(st State) View {
	v := View{
		Steps:    s.registry.Steps(),
		Index:    st.Index,
		Complete: st.Complete,
		Draft:    st.Draft,
	}
	if st.Complete {
		v.ResultURL = ResultURL(st.OwnerID)
		return v
	}
	if cur, ok := Restore(v.Steps, st.Index, false).Current(); ok {
		v.Current = &cur
	}
	return v
}

func (s *service) State(ctx context.Context, ownerID uuid.UUID) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(ctx, ownerID)
	if err != nil {
		return View{}, err
	}
	return s.view(st), nil
}

func (s *service) Submit(ctx context.Context, ownerID uuid.UUID, step StepID, payload json.RawMessage) (Outcome, error) {
	st, err := s.begin(ctx, ownerID, step)
	if err != nil {
		return Outcome{}, err
	}
	defer s.finish(ownerID)

	body, ok := s.registry.Body(step)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrStepMismatch, step)
	}
	if len(bytes.TrimSpace(payload)) == 0 && step == StepResume {
		payload, _ = json.Marshal(st.Draft)
	}

	result, err := body.Submit(ctx, ownerID, payload)
	if err != nil {
		return Outcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.load(ctx, ownerID)
	if err != nil {
		return Outcome{}, err
	}
	if cur.Generation != st.Generation || cur.Index != st.Index || cur.Complete {
		s.log.Info("wizard step result discarded",
			zap.String("owner", ownerID.String()),
			zap.String("step", string(step)),
		)
		return Outcome{}, ErrSessionChanged
	}
	if dc, ok := result.(DraftCarrier); ok {
		cur.Draft = dc.WizardDraft()
	}
	q := Restore(s.registry.Steps(), cur.Index, cur.Complete)
	if err := q.Advance(); err != nil {
		return Outcome{}, err
	}
	cur.Index, cur.Complete = q.Index(), q.Complete()
	if err := s.save(ctx, cur); err != nil {
		return Outcome{}, err
	}
	return Outcome{Wizard: s.view(cur), Result: result}, nil
}

// begin checks the position and marks ownerID busy until finish.
func (s *service) begin(ctx context.Context, ownerID uuid.UUID, step StepID) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[ownerID]; busy {
		return State{}, ErrSubmissionInFlight
	}
	st, err := s.load(ctx, ownerID)
	if err != nil {
		return State{}, err
	}
	cur, ok := Restore(s.registry.Steps(), st.Index, st.Complete).Current()
	if !ok {
		return State{}, ErrComplete
	}
	if cur.ID != step {
		return State{}, fmt.Errorf("%w: expected %s, got %s", ErrStepMismatch, cur.ID, step)
	}
	s.inflight[ownerID] = struct{}{}
	return st, nil
}

func (s *service) finish(ownerID uuid.UUID) {
	s.mu.Lock()
	delete(s.inflight, ownerID)
	s.mu.Unlock()
}

func (s *service) Skip(ctx context.Context, ownerID uuid.UUID) (View, error) {
	return s.move(ctx, ownerID, (*Sequencer).Skip)
}

func (s *service) Back(ctx context.Context, ownerID uuid.UUID) (View, error) {
	return s.move(ctx, ownerID, (*Sequencer).Retreat)
}

func (s *service) move(ctx context.Context, ownerID uuid.UUID, fn func(*Sequencer) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[ownerID]; busy {
		return View{}, ErrSubmissionInFlight
	}
	st, err := s.load(ctx, ownerID)
	if err != nil {
		return View{}, err
	}
	q := Restore(s.registry.Steps(), st.Index, st.Complete)
	if err := fn(q); err != nil {
		return View{}, err
	}
	st.Index, st.Complete = q.Index(), q.Complete()
	if err := s.save(ctx, st); err != nil {
		return View{}, err
	}
	return s.view(st), nil
}

func (s *service) Restart(ctx context.Context, ownerID uuid.UUID) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(ctx, ownerID)
	if err != nil {
		return View{}, err
	}
	if st.Complete {
		return View{}, ErrComplete
	}
	next := reset(st)
	if err := s.save(ctx, next); err != nil {
		return View{}, err
	}
	return s.view(next), nil
}

func (s *service) EditDraft(ctx context.Context, ownerID uuid.UUID, edit func(*resume.Draft) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(ctx, ownerID)
	if err != nil {
		return View{}, err
	}
	if st.Complete {
		return View{}, ErrComplete
	}
	if err := edit(&st.Draft); err != nil {
		return View{}, err
	}
	st.Draft.Normalize()
	if err := s.save(ctx, st); err != nil {
		return View{}, err
	}
	return s.view(st), nil
}

func (s *service) Discard(ctx context.Context, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(ctx, ownerID)
	if err != nil {
		return err
	}
	s.log.Debug("wizard state discarded", zap.String("owner", ownerID.String()))
	return s.save(ctx, reset(st))
}

func reset(st State) State {
	next := NewState(st.OwnerID)
	next.Generation = st.Generation + 1
	return next
}
