package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/identity"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

type TokenVerifier interface {
	Verify(raw string) (identity.Claims, error)
}

type claimsContextKey struct{}

// BearerAuth verifies the session token and stores its claims on the request context.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				logger.Info("bearer auth middleware missing token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Info("bearer auth middleware rejected token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"reason": err.Error(),
				})
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims identity.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (identity.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(identity.Claims)
	return claims, ok
}
