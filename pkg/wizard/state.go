package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/folio/pkg/resume"
)

// State is the persisted wizard position of one owner. Generation changes
// whenever the state is reset so late step results can be recognised.
type State struct {
	OwnerID    uuid.UUID    `json:"ownerId"`
	Index      int          `json:"index"`
	Complete   bool         `json:"complete"`
	Generation uint64       `json:"generation"`
	Draft      resume.Draft `json:"draft"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

func NewState(ownerID uuid.UUID) State {
	return State{OwnerID: ownerID, Draft: resume.NewDraft()}
}

var ErrNoState = errors.New("wizard state not found")

// StateStore is the port to wizard state persistence.
type StateStore interface {
	// Load returns ErrNoState when nothing was saved for ownerID.
	Load(ctx context.Context, ownerID uuid.UUID) (State, error)
	Save(ctx context.Context, st State) error
}

// MemoryStore keeps state in process; used when no Redis is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[uuid.UUID]State)}
}

func (m *MemoryStore) Load(_ context.Context, ownerID uuid.UUID) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.rows[ownerID]
	if !ok {
		return State{}, ErrNoState
	}
	st.Draft = cloneDraft(st.Draft)
	return st, nil
}

func (m *MemoryStore) Save(_ context.Context, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st.Draft = cloneDraft(st.Draft)
	m.rows[st.OwnerID] = st
	return nil
}

func cloneDraft(d resume.Draft) resume.Draft {
	d.Education = append([]resume.Education(nil), d.Education...)
	d.WorkExperience = append([]resume.WorkExperience(nil), d.WorkExperience...)
	return d
}
