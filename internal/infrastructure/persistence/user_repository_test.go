package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poslite/backend/internal/domain/identity"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/docstore"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewDocUserRepository(docstore.NewMemoryStore())

	user, err := identity.NewUser("Owner@Example.com", "Owner", "hash")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", byID.Email, "email stored normalized")
	assert.Equal(t, "Owner", byID.Name)
	assert.Equal(t, "hash", byID.PasswordHash)
	assert.False(t, byID.CreatedAt.IsZero())

	// Lookup is case-insensitive on the caller side too
	byEmail, err := repo.FindByEmail(ctx, "OWNER@example.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepositoryMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewDocUserRepository(docstore.NewMemoryStore())

	_, err := repo.FindByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUserRepositoryExistsByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewDocUserRepository(docstore.NewMemoryStore())

	exists, err := repo.ExistsByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	user, err := identity.NewUser("owner@example.com", "Owner", "hash")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	exists, err = repo.ExistsByEmail(ctx, "Owner@Example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNewUserValidation(t *testing.T) {
	_, err := identity.NewUser("  ", "Owner", "hash")
	assert.Error(t, err)

	_, err = identity.NewUser("owner@example.com", "Owner", "")
	assert.Error(t, err)
}
