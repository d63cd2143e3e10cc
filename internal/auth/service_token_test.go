package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etbank-analytics/bankreviews-backend/internal/config"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

func testAuthSettings() *config.AuthSettings {
	return &config.AuthSettings{
		ServiceTokenSecret: "test-secret-key",
		Issuer:             "bankreviews-api",
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	// Arrange
	svc := NewTokenService(testAuthSettings())

	// Act
	tokenString, jwtID, err := svc.IssueToken("review-loader")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.NotEmpty(t, jwtID)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "review-loader", claims.Service)
	assert.Equal(t, "bankreviews-api", claims.Issuer)
	assert.Equal(t, jwtID, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Run("Rejects Wrong Secret", func(t *testing.T) {
		// Arrange
		issuer := NewTokenService(&config.AuthSettings{ServiceTokenSecret: "other-secret", Issuer: "bankreviews-api"})
		validator := NewTokenService(testAuthSettings())

		tokenString, _, err := issuer.IssueToken("enricher")
		require.NoError(t, err)

		// Act
		claims, err := validator.ValidateToken(tokenString)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Rejects Expired Token", func(t *testing.T) {
		// Arrange
		cfg := testAuthSettings()
		svc := NewTokenService(cfg)

		now := time.Now()
		claims := ServiceClaims{
			Service: "enricher",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    cfg.Issuer,
				IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(cfg.ServiceTokenSecret))
		require.NoError(t, err)

		// Act
		result, err := svc.ValidateToken(tokenString)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, result)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.ErrorIs(t, appErr.Err, utils.ErrExpiredToken)
	})

	t.Run("Rejects Wrong Issuer", func(t *testing.T) {
		// Arrange
		issuer := NewTokenService(&config.AuthSettings{ServiceTokenSecret: "test-secret-key", Issuer: "someone-else"})
		validator := NewTokenService(testAuthSettings())

		tokenString, _, err := issuer.IssueToken("review-loader")
		require.NoError(t, err)

		// Act
		claims, err := validator.ValidateToken(tokenString)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Rejects Missing Service Claim", func(t *testing.T) {
		// Arrange
		cfg := testAuthSettings()
		svc := NewTokenService(cfg)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		tokenString, err := token.SignedString([]byte(cfg.ServiceTokenSecret))
		require.NoError(t, err)

		// Act
		claims, err := svc.ValidateToken(tokenString)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Rejects Garbage", func(t *testing.T) {
		// Arrange
		svc := NewTokenService(testAuthSettings())

		// Act
		claims, err := svc.ValidateToken("not-a-token")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
