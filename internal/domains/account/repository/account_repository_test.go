package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookstore-api/internal/domains/account"
	"bookstore-api/internal/domains/account/model"
	"bookstore-api/internal/testutil"
)

func newTestRepo(t *testing.T) account.Repository {
	t.Helper()
	return NewSQLRepository(testutil.NewSQLiteDB(t), account.NewBcryptHasher(bcrypt.MinCost))
}

func TestCreateAndFindByEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "  Jane@Example.com ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.NotEqual(t, "secret1", created.PasswordHash)
	assert.Empty(t, created.Roles)

	found, err := repo.FindByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.PasswordHash, found.PasswordHash)
	assert.Empty(t, found.Roles)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte("secret1")))
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "A@B.com", "other12")
	assert.ErrorIs(t, err, model.ErrDuplicateAccount)
}

func TestFindByEmailNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByEmail(context.Background(), "nobody@b.com")
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestAssignAndListRoles(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, "admin@b.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, repo.AssignRoles(ctx, a.ID, model.RoleCustomer, model.RoleAdministrator))
	// granting again is a no-op
	require.NoError(t, repo.AssignRoles(ctx, a.ID, model.RoleCustomer))

	roles, err := repo.ListRoles(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Role{model.RoleAdministrator, model.RoleCustomer}, roles)

	found, err := repo.FindByEmail(ctx, "admin@b.com")
	require.NoError(t, err)
	assert.True(t, found.HasRole(model.RoleAdministrator))
}

func TestAssignRolesUnknownAccount(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.AssignRoles(context.Background(), "00000000-0000-0000-0000-000000000000", model.RoleCustomer)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestAssignRolesRejectsUnknownRole(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, "c@b.com", "secret1")
	require.NoError(t, err)

	err = repo.AssignRoles(ctx, a.ID, model.Role("Root"))
	assert.ErrorIs(t, err, model.ErrInvalidRole)

	roles, err := repo.ListRoles(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}
