package project

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/folio/pkg/validation"
)

type fakeRepo struct {
	items   []Project
	creates int
}

func (f *fakeRepo) Create(_ context.Context, p Project) error {
	f.creates++
	f.items = append([]Project{p}, f.items...)
	return nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]Project, error) {
	var out []Project
	for _, p := range f.items {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	for i, p := range f.items {
		if p.ID == id && p.OwnerID == ownerID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func TestParseTechStack(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"React, Vite, Tailwind ", []string{"React", "Vite", "Tailwind"}},
		{"", []string{}},
		{" , ,,", []string{}},
		{"Go,,Postgres , Redis", []string{"Go", "Postgres", "Redis"}},
		{"b, a, b", []string{"b", "a", "b"}},
	}
	for _, tt := range tests {
		got := ParseTechStack(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, got, ParseTechStack(strings.Join(got, ", ")), "re-split of %q", tt.in)
	}
}

func TestCreate_PortfolioSiteScenario(t *testing.T) {
	repo := &fakeRepo{}
	owner := uuid.New()
	p, err := NewService(repo).Create(context.Background(), owner, Input{
		Title:     "Portfolio Site",
		TechStack: "React, Vite, Tailwind ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "Vite", "Tailwind"}, p.TechStack)
	assert.Empty(t, p.Description)
	require.Len(t, repo.items, 1)
	assert.Equal(t, []string{"React", "Vite", "Tailwind"}, repo.items[0].TechStack)
}

func TestCreate_Validation(t *testing.T) {
	repo := &fakeRepo{}
	_, err := NewService(repo).Create(context.Background(), uuid.New(), Input{
		Title:      "P",
		ImageURL:   "not-a-url",
		ProjectURL: "",
		GitHubURL:  "https://github.com/x/y",
	})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "imageUrl")
	assert.NotContains(t, verr.Fields, "projectUrl")
	assert.NotContains(t, verr.Fields, "githubUrl")
	assert.Zero(t, repo.creates)
}

func TestListAndDelete(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewService(repo)
	ctx := context.Background()
	owner := uuid.New()

	first, err := uc.Create(ctx, owner, Input{Title: "First"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, owner, Input{Title: "Second"})
	require.NoError(t, err)

	items, err := uc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Title)

	assert.ErrorIs(t, uc.Delete(ctx, uuid.New(), first.ID), ErrNotFound)
	require.NoError(t, uc.Delete(ctx, owner, first.ID))
	items, _ = uc.List(ctx, owner)
	assert.Len(t, items, 1)
}
