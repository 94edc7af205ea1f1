package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// testDB wraps an in-memory database with query helpers for assertions.
type testDB struct {
	DB *sql.DB
}

func (d *testDB) countUsers(t *testing.T, username string) int {
	t.Helper()
	var n int
	err := d.DB.QueryRow("SELECT COUNT(1) FROM users WHERE username = ?", username).Scan(&n)
	require.NoError(t, err)
	return n
}

func (d *testDB) passwordHash(t *testing.T, username string) string {
	t.Helper()
	var hash string
	err := d.DB.QueryRow("SELECT password_hash FROM users WHERE username = ?", username).Scan(&hash)
	require.NoError(t, err)
	return hash
}
