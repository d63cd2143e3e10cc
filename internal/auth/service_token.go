// Package auth issues and validates the HS256 service tokens that the
// raw-review loader and the enrichment classifier present when calling the
// mutating endpoints. There are no end users; every caller is a service
// identified by its `svc` claim.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/etbank-analytics/bankreviews-backend/internal/config"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// Token errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrInvalidTokenClaims   = errors.New("invalid token claims")
)

// DefaultTokenExpiry bounds the lifetime of issued service tokens.
const DefaultTokenExpiry = 24 * time.Hour

// ServiceClaims represents the claims in a service token.
type ServiceClaims struct {
	// Service names the calling service, e.g. "review-loader" or "enricher"
	Service string `json:"svc"`
	jwt.RegisteredClaims
}

// TokenService issues and validates service tokens.
type TokenService struct {
	config *config.AuthSettings
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.AuthSettings) *TokenService {
	return &TokenService{
		config: cfg,
	}
}

// IssueToken signs a new token for the named service, returning the token
// string and its unique ID.
func (s *TokenService) IssueToken(service string) (string, string, error) {
	jwtID := uuid.New().String()

	now := time.Now()
	claims := ServiceClaims{
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   service,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(DefaultTokenExpiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jwtID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.config.ServiceTokenSecret))
	if err != nil {
		return "", "", err
	}

	return tokenString, jwtID, nil
}

// ValidateToken validates a service token and returns its claims.
func (s *TokenService) ValidateToken(tokenString string) (*ServiceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ServiceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(s.config.ServiceTokenSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	if !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*ServiceClaims)
	if !ok || claims.Service == "" {
		return nil, utils.NewInvalidTokenError()
	}

	if s.config.Issuer != "" && claims.Issuer != s.config.Issuer {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}
