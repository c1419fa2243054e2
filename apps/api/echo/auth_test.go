package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazadi/elimu/core/role"
)

func TestAuthGuard(t *testing.T) {
	ts := setupServer(t, nil)
	_, token := ts.seedUser(t, "guarded@test.cd", role.Student)

	tests := []struct {
		name     string
		auth     string
		wantCode int
		wantErr  string
	}{
		{"no header", "", http.StatusUnauthorized, "unauthorized"},
		{"not bearer", "Basic abc123", http.StatusUnauthorized, "unauthorized"},
		{"garbage token", "Bearer not.a.jwt", http.StatusForbidden, "invalid token"},
		{"valid token", "Bearer " + token, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(http.MethodGet, "/enrolled-course", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := ts.do(req)
			checkCode(t, rec, tt.wantCode)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorField(t, rec))
			}
		})
	}

	t.Run("expired token", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "some-user",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
			Role: RoleClaim{Name: role.Student},
		}
		expired, err := GenerateToken(testConf, claims)
		require.NoError(t, err)

		rec := ts.do(newAuthRequest(http.MethodGet, "/enrolled-course", expired, nil))
		checkCode(t, rec, http.StatusForbidden)
		assert.Equal(t, "invalid token", errorField(t, rec))
	})

	t.Run("payload without role", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "some-user",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		bare, err := GenerateToken(testConf, claims)
		require.NoError(t, err)

		rec := ts.do(newAuthRequest(http.MethodGet, "/enrolled-course", bare, nil))
		checkCode(t, rec, http.StatusForbidden)
		assert.Equal(t, "invalid token payload", errorField(t, rec))
	})
}

func TestHealth(t *testing.T) {
	ts := setupServer(t, nil)

	rec := ts.do(newRequest(http.MethodGet, "/health", nil))
	checkCode(t, rec, http.StatusOK)

	var resp MessageResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "OK", resp.Message)
}
