package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/artem13815/folio/pkg/wizard"
)

// WizardStateStore implements wizard.StateStore. Entries expire after ttl of
// inactivity.
type WizardStateStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewWizardStateStore(client *goredis.Client, ttl time.Duration) *WizardStateStore {
	return &WizardStateStore{client: client, ttl: ttl}
}

func wizardKey(ownerID uuid.UUID) string {
	return keyPrefix + "wizard:" + ownerID.String()
}

func (s *WizardStateStore) Load(ctx context.Context, ownerID uuid.UUID) (wizard.State, error) {
	raw, err := s.client.Get(ctx, wizardKey(ownerID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return wizard.State{}, wizard.ErrNoState
	}
	if err != nil {
		return wizard.State{}, err
	}
	var st wizard.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return wizard.State{}, fmt.Errorf("decode wizard state: %w", err)
	}
	return st, nil
}

func (s *WizardStateStore) Save(ctx context.Context, st wizard.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode wizard state: %w", err)
	}
	return s.client.Set(ctx, wizardKey(st.OwnerID), raw, s.ttl).Err()
}
