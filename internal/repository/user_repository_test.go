package repository

import (
	"context"
	"testing"

	"friend-service/internal/models"
	"friend-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, repo UserRepository, email, name string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: name, Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepositoryCreateNormalizesEmail(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	user := createUser(t, repo, "  Alice@Example.COM ", "Alice")
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	found, err := repo.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))

	createUser(t, repo, "bob@example.com", "Bob")

	err := repo.Create(context.Background(), &models.User{Email: "BOB@example.com", Name: "Bobby", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepositoryFindByIDNotFound(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositorySearch(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	alice := createUser(t, repo, "alice@example.com", "Alice Smith")
	createUser(t, repo, "bob@example.com", "Bob Jones")
	carol := createUser(t, repo, "carol@example.com", "Carol SMITHERS")
	createUser(t, repo, "percent@example.com", "100% Real")

	t.Run("name substring is case-insensitive", func(t *testing.T) {
		users, err := repo.SearchByName(ctx, "smith", 50)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, alice.ID, users[0].ID)
		assert.Equal(t, carol.ID, users[1].ID)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		users, err := repo.SearchByName(ctx, "0%", 50)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "100% Real", users[0].Name)

		users, err = repo.SearchByName(ctx, "_", 50)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("email is an exact match", func(t *testing.T) {
		users, err := repo.SearchByEmail(ctx, "ALICE@example.com", 50)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, alice.ID, users[0].ID)

		users, err = repo.SearchByEmail(ctx, "alice@example", 50)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("limit caps results", func(t *testing.T) {
		users, err := repo.SearchByName(ctx, "", 2)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}
