// api/dao/memory_dao_test.go
package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api_errors "github.com/projecthub-io/api/errors"
	"github.com/projecthub-io/api/model"
)

func seedProject(t *testing.T, store *MemoryStore, id, slug, owner string) *model.Project {
	t.Helper()
	project, err := store.CreateProject(context.Background(), model.Project{
		ID:         id,
		Name:       "Project " + id,
		Slug:       slug,
		ClientName: "Acme",
		OwnerID:    owner,
	})
	require.NoError(t, err)
	return project
}

func TestMemoryStoreProjectLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created := seedProject(t, store, "p1", "demo", "u1")
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Slug)

	// Duplicate ID and duplicate slug both conflict.
	_, err = store.CreateProject(ctx, model.Project{ID: "p1", Name: "x", Slug: "other"})
	assert.ErrorIs(t, err, api_errors.ErrProjectConflict)
	_, err = store.CreateProject(ctx, model.Project{ID: "p2", Name: "x", Slug: "demo"})
	assert.ErrorIs(t, err, api_errors.ErrProjectConflict)

	updated, err := store.UpdateProject(ctx, model.Project{ID: "p1", Name: "Renamed", Slug: "demo"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "u1", updated.OwnerID, "owner is immutable through updates")

	require.NoError(t, store.DeleteProject(ctx, "p1"))
	_, err = store.GetProject(ctx, "p1")
	assert.ErrorIs(t, err, api_errors.ErrProjectNotFound)
	assert.ErrorIs(t, store.DeleteProject(ctx, "p1"), api_errors.ErrProjectNotFound)
}

func TestMemoryStoreCreatorBecomesOwnerMember(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seedProject(t, store, "p1", "demo", "u1")

	member, err := store.GetMember(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, member.Role)
}

func TestMemoryStoreMembership(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seedProject(t, store, "p1", "demo", "u1")

	_, err := store.AddMember(ctx, model.ProjectMember{UserID: "u2", ProjectID: "p1", Role: model.RoleViewer})
	require.NoError(t, err)

	_, err = store.AddMember(ctx, model.ProjectMember{UserID: "u2", ProjectID: "p1", Role: model.RoleEditor})
	assert.ErrorIs(t, err, api_errors.ErrMemberConflict)

	_, err = store.AddMember(ctx, model.ProjectMember{UserID: "u2", ProjectID: "missing", Role: model.RoleViewer})
	assert.ErrorIs(t, err, api_errors.ErrProjectNotFound)

	updated, err := store.UpdateMemberRole(ctx, "p1", "u2", model.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEditor, updated.Role)

	members, err := store.ListMembers(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "u1", members[0].UserID)
	assert.Equal(t, "u2", members[1].UserID)

	require.NoError(t, store.RemoveMember(ctx, "p1", "u2"))
	assert.ErrorIs(t, store.RemoveMember(ctx, "p1", "u2"), api_errors.ErrMemberNotFound)
}

func TestMemoryStoreListProjectsForUser(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seedProject(t, store, "p1", "alpha", "u1")
	seedProject(t, store, "p2", "beta", "u2")

	_, err := store.AddMember(ctx, model.ProjectMember{UserID: "u1", ProjectID: "p2", Role: model.RoleViewer})
	require.NoError(t, err)

	accesses, err := store.ListProjectsForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, accesses, 2)
	assert.Equal(t, "p1", accesses[0].ProjectID)
	assert.Equal(t, model.RoleOwner, accesses[0].Role)
	assert.Equal(t, "alpha", accesses[0].Slug)
	assert.Equal(t, "p2", accesses[1].ProjectID)
	assert.Equal(t, model.RoleViewer, accesses[1].Role)

	accesses, err = store.ListProjectsForUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, accesses)
}
