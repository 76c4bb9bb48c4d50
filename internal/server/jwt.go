// Package server provides the HTTP surface of the portfolio: the public
// read path and the admin editing API.
package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nijanthan/portfolio-cms/internal/config"
	"github.com/nijanthan/portfolio-cms/internal/server/middleware"
)

// Claims represents session claims carrying the GitHub credential. The
// session token is plumbing, not access control: possession of the
// credential is what authorizes publishing, the JWT just keeps it out
// of every request body.
type Claims struct {
	Credential string `json:"credential"`
	jwt.RegisteredClaims
}

// GetCredential returns the wrapped GitHub credential.
// This implements the middleware.CredentialGetter interface.
func (c *Claims) GetCredential() string {
	return c.Credential
}

// AsTokenValidator returns a TokenValidator adapter for this SessionService.
// This allows the service to be used with middleware without creating
// import cycles.
func (s *SessionService) AsTokenValidator() middleware.TokenValidator {
	return &sessionServiceValidator{service: s}
}

type sessionServiceValidator struct {
	service *SessionService
}

func (v *sessionServiceValidator) ValidateToken(tokenString string) (middleware.CredentialGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// SessionService provides session token generation and validation.
type SessionService struct {
	config *config.SessionConfig
}

// NewSessionService creates a session service with the given configuration.
func NewSessionService(cfg *config.SessionConfig) *SessionService {
	return &SessionService{
		config: cfg,
	}
}

// GenerateToken generates a session token wrapping the given credential.
func (s *SessionService) GenerateToken(credential string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		Credential: credential,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a session token and returns the claims.
func (s *SessionService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return nil, fmt.Errorf("invalid token signature: %w", err)
		}
		if err == jwt.ErrTokenExpired {
			return nil, fmt.Errorf("token expired: %w", err)
		}
		if err == jwt.ErrTokenMalformed {
			return nil, fmt.Errorf("malformed token: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}
