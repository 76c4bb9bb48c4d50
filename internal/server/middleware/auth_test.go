package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct {
	credential string
}

func (c *stubClaims) GetCredential() string { return c.credential }

type stubValidator struct {
	valid map[string]string // token -> credential
}

func (v *stubValidator) ValidateToken(tokenString string) (CredentialGetter, error) {
	if cred, ok := v.valid[tokenString]; ok {
		return &stubClaims{credential: cred}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func TestAuthMiddleware(t *testing.T) {
	validator := &stubValidator{valid: map[string]string{"good-token": "ghp_cred"}}
	mw := AuthMiddleware(validator)

	var gotCredential string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred, err := GetCredential(r)
		require.NoError(t, err)
		gotCredential = cred
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/state", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ghp_cred", gotCredential)
	})

	t.Run("case-insensitive scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/state", nil)
		req.Header.Set("Authorization", "bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good-token"},
		{"no token", "Bearer"},
		{"invalid token", "Bearer bad-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/state", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGetCredential_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetCredential(req)
	assert.Error(t, err)
}
