package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/folio/pkg/validation"
)

type fakeRepo struct {
	rows    map[uuid.UUID]Profile
	upserts int
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: map[uuid.UUID]Profile{}} }

func (f *fakeRepo) Get(_ context.Context, id uuid.UUID) (Profile, error) {
	p, ok := f.rows[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) Upsert(_ context.Context, p Profile) error {
	f.upserts++
	p.AvatarURL = f.rows[p.ID].AvatarURL
	f.rows[p.ID] = p
	return nil
}

func (f *fakeRepo) SetAvatarURL(_ context.Context, id uuid.UUID, url string, at time.Time) error {
	p, ok := f.rows[id]
	if !ok {
		return ErrNotFound
	}
	p.AvatarURL = url
	p.UpdatedAt = at
	f.rows[id] = p
	return nil
}

func TestValidate(t *testing.T) {
	v := Input{FullName: "J", Email: "nope", Website: "x", GitHub: "", LinkedIn: "https://linkedin.com/in/j"}.Validate()
	assert.Contains(t, v, "fullName")
	assert.Contains(t, v, "email")
	assert.Contains(t, v, "website")
	assert.NotContains(t, v, "github")
	assert.NotContains(t, v, "linkedin")

	assert.True(t, Input{FullName: "Jane Doe"}.Validate().Empty())
}

func TestSave_UpsertKeepsAvatar(t *testing.T) {
	repo := newFakeRepo()
	uc := NewService(repo)
	ctx := context.Background()
	owner := uuid.New()

	require.NoError(t, uc.Seed(ctx, owner, "Jane Doe", "jane@example.com"))
	require.NoError(t, uc.SetAvatar(ctx, owner, "https://cdn.example.com/avatars/a.png"))

	p, err := uc.Save(ctx, owner, Input{FullName: " Jane Q. Doe ", Headline: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, owner, p.ID)
	assert.Equal(t, "Jane Q. Doe", p.FullName)
	assert.Equal(t, "Engineer", p.Headline)
	assert.Equal(t, "https://cdn.example.com/avatars/a.png", p.AvatarURL)
}

func TestSave_CreatesOnFirstSave(t *testing.T) {
	repo := newFakeRepo()
	owner := uuid.New()
	p, err := NewService(repo).Save(context.Background(), owner, Input{FullName: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", p.FullName)
}

func TestSave_InvalidDoesNotWrite(t *testing.T) {
	repo := newFakeRepo()
	_, err := NewService(repo).Save(context.Background(), uuid.New(), Input{FullName: "Jane", Email: "bad@"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Zero(t, repo.upserts)
}

func TestInputFromRoundTrip(t *testing.T) {
	p := Profile{FullName: "Jane", Headline: "H", GitHub: "https://github.com/jane"}
	in := InputFrom(p)
	assert.Equal(t, "Jane", in.FullName)
	assert.Equal(t, "https://github.com/jane", in.GitHub)
}
