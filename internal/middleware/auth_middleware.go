// Package middleware provides the HTTP middleware stack: service token
// authentication, panic recovery and request logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/etbank-analytics/bankreviews-backend/internal/auth"
	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// contextKey is a private type for request context keys.
type contextKey string

// serviceClaimsKey stores the validated service claims in the request context.
const serviceClaimsKey contextKey = "service_claims"

// RequireServiceToken guards mutating endpoints. Requests must present a
// bearer token signed with the shared service secret; the validated claims
// are stored in the request context for handlers that care who called.
func RequireServiceToken(tokenService *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				utils.Unauthorized(w, "Missing authorization header")
				return
			}

			if !strings.HasPrefix(header, constants.BearerPrefix) {
				utils.Unauthorized(w, "Authorization header must use the Bearer scheme")
				return
			}

			tokenString := strings.TrimPrefix(header, constants.BearerPrefix)
			claims, err := tokenService.ValidateToken(tokenString)
			if err != nil {
				utils.ErrorFromAppError(w, utils.ParseError(err))
				return
			}

			ctx := context.WithValue(r.Context(), serviceClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetServiceClaims returns the validated service claims from the request
// context, if the request passed RequireServiceToken.
func GetServiceClaims(r *http.Request) (*auth.ServiceClaims, bool) {
	claims, ok := r.Context().Value(serviceClaimsKey).(*auth.ServiceClaims)
	return claims, ok
}
