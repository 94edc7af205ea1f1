package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akumar-dev/tweetpulse-be/internal/database"
)

func newTestDB(t *testing.T) *testDB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return &testDB{DB: db}
}

func TestSignupCreatesHashedRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db.DB)

	user, err := svc.Signup("alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "user", user.Role)
	assert.Empty(t, user.PasswordHash, "hash must not leak out of the service")

	// Exactly one record, and the stored password is a bcrypt hash.
	assert.Equal(t, 1, db.countUsers(t, "alice"))
	stored := db.passwordHash(t, "alice")
	assert.NotEqual(t, "pw123", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("pw123")))
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db.DB)

	_, err := svc.Signup("alice", "pw123")
	require.NoError(t, err)

	_, err = svc.Signup("alice", "different")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, 1, db.countUsers(t, "alice"), "failed signup must not create a record")
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db.DB)

	created, err := svc.Signup("alice", "pw123")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		user, err := svc.Login("alice", "pw123")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login("bob", "pw123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db.DB)

	created, err := svc.Signup("alice", "pw123")
	require.NoError(t, err)

	user, err := svc.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetUserByID("missing")
	assert.Error(t, err)
}
