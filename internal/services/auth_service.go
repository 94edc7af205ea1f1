package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

// bcryptCost matches the original deployment's hashing cost.
const bcryptCost = 10

// ErrUsernameTaken is returned by Signup for duplicate usernames.
var ErrUsernameTaken = errors.New("username already exists")

// ErrInvalidCredentials is returned by Login for unknown users or wrong
// passwords. The two cases are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthServiceProvider defines the interface for credential services.
type AuthServiceProvider interface {
	Signup(username, password string) (models.User, error)
	Login(username, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// AuthService provides signup and login over the credential store.
type AuthService struct {
	db *sql.DB
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{db: db}
}

// Signup creates a new user with a hashed password. A failed signup leaves
// no partial record: the single INSERT either lands or it doesn't, and the
// unique index on username rejects duplicates atomically.
func (s *AuthService) Signup(username, password string) (models.User, error) {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE username = ?", username).Scan(&exists)
	if err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         "user",
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.db.Exec("INSERT INTO users(id, username, password_hash, role, created_at) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt.Format(time.RFC3339))
	if err != nil {
		// The SELECT above races with concurrent signups; the unique
		// index is the authority.
		return models.User{}, ErrUsernameTaken
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies a user's credentials.
func (s *AuthService) Login(username, password string) (models.User, error) {
	var user models.User
	var createdAt string
	row := s.db.QueryRow("SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *AuthService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var createdAt string
	row := s.db.QueryRow("SELECT id, username, role, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Role, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user with ID %s not found", id)
		}
		return models.User{}, err
	}
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return user, nil
}
