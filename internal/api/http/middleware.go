package http

import (
	"context"
	"net/http"
	"strings"

	"locagora-backend/internal/domain"
	"locagora-backend/internal/security"
)

type contextKey string

const principalKey contextKey = "principal"

// AuthMiddleware validates the bearer token and attaches the authenticated
// principal to the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, security.ErrInvalidToken)
			return
		}

		claims, err := m.tokens.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, err)
			return
		}

		principal := domain.Principal{
			UserID: claims.UserID,
			Role:   domain.UserRole(claims.Role),
		}
		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFrom extracts the principal the middleware attached. The zero
// principal (no user, customer role) is returned for unauthenticated routes.
func principalFrom(r *http.Request) domain.Principal {
	if p, ok := r.Context().Value(principalKey).(domain.Principal); ok {
		return p
	}
	return domain.Principal{Role: domain.UserRoleCustomer}
}
