package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketsim/internal/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := NewUserStore(nil)

	user, err := store.Register(RegisterParams{
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "alice", user.DisplayName) // derived from the email local part
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	// Email lookup is case-insensitive.
	got, err := store.Authenticate("alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)

	_, err = store.Authenticate("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = store.Authenticate("nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUsernameCaseInsensitive(t *testing.T) {
	store := NewUserStore(nil)

	user, err := store.Register(RegisterParams{Username: "Bob", Password: "password1"})
	require.NoError(t, err)
	require.NotNil(t, user.Username)
	assert.Equal(t, "bob", *user.Username) // stored lowercase

	for _, login := range []string{"bob", "Bob", "BOB"} {
		got, err := store.Authenticate(login, "password1")
		require.NoError(t, err, login)
		assert.Equal(t, user.UserID, got.UserID)
	}

	// Case variants collide on registration too.
	_, err = store.Register(RegisterParams{Username: "BOB", Password: "password2"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterValidation(t *testing.T) {
	store := NewUserStore(nil)

	_, err := store.Register(RegisterParams{Password: "long enough"})
	assert.ErrorContains(t, err, "email or username")

	_, err = store.Register(RegisterParams{Username: "bob", Password: "short"})
	assert.ErrorContains(t, err, "at least 8")
}

func TestDuplicateRegistration(t *testing.T) {
	store := NewUserStore(nil)

	_, err := store.Register(RegisterParams{Username: "bob", Password: "password1"})
	require.NoError(t, err)
	_, err = store.Register(RegisterParams{Username: "bob", Password: "password2"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestFindByID(t *testing.T) {
	store := NewUserStore(nil)
	user, err := store.Register(RegisterParams{Username: "bob", Password: "password1"})
	require.NoError(t, err)

	got, err := store.FindByID(user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.DisplayName)

	_, err = store.FindByID("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecordGameStats(t *testing.T) {
	store := NewUserStore(nil)
	user, err := store.Register(RegisterParams{Username: "bob", Password: "password1"})
	require.NoError(t, err)

	got, err := store.RecordGame(user.UserID, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, got.GamesPlayed)
	assert.InDelta(t, 10, got.BestReturn, 1e-9)
	assert.InDelta(t, 10, got.AverageReturn, 1e-9)

	got, err = store.RecordGame(user.UserID, -4)
	require.NoError(t, err)
	assert.Equal(t, 2, got.GamesPlayed)
	assert.InDelta(t, 10, got.BestReturn, 1e-9)
	assert.InDelta(t, 3, got.AverageReturn, 1e-9)
}

func TestSeedIdempotent(t *testing.T) {
	store := NewUserStore(nil)

	require.NoError(t, store.Seed("admin", "supersecret", models.RoleAdmin))
	require.NoError(t, store.Seed("admin", "changed", models.RoleAdmin))

	// The original password survives a re-seed.
	got, err := store.Authenticate("admin", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)

	// Blank credentials are a no-op, not an error.
	assert.NoError(t, store.Seed("", "", models.RoleTester))
}
