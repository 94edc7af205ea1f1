package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokenService("test-secret")

	token, err := tokens.Issue("user-1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	// The expiry is one hour out.
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, TokenTTL.Seconds(), remaining.Seconds(), 5)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens := NewTokenService("test-secret")

	// Sign a token that expired an hour ago with the same secret.
	claims := &Claims{
		UserID:   "user-1",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(expired)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue("user-1", "alice")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	_, err := NewTokenService("test-secret").Verify("not.a.token")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokenService("test-secret")
	token, err := tokens.Issue("user-1", "alice")
	require.NoError(t, err)

	var gotClaims *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := tokens.Middleware()(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"No token provided"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"error":"No token provided"}`},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized, `{"error":"Invalid Token"}`},
		{"valid token", "Bearer " + token, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil
			r := httptest.NewRequest(http.MethodGet, "/api/sentiment/tweets/alice", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, gotClaims)
				assert.Equal(t, "alice", gotClaims.Username)
			}
		})
	}
}
