package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/pkg/httpx"
)

type sessionKey struct{}

// SessionFromContext returns the caller resolved by SessionMiddleware.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domain.Session)
	return s, ok
}

// SessionMiddleware turns verified access token claims into a
// domain.Session. The role is read from the store once per request, never
// from the token. Must run after httpx.AuthnMiddleware. An unauthStatus
// other than 401 is used for every failure.
func SessionMiddleware(roles store.Roles, unauthStatus int) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			claims, ok := httpx.ClaimsFromContext(ctx)
			if !ok {
				httpx.WriteError(w, unauthStatus, "Unauthorized")
				return
			}

			role, err := service.RoleOf(ctx, roles, claims.Subject)
			if err != nil {
				if unauthStatus != http.StatusUnauthorized {
					writeServiceErrorAs(w, r, err, unauthStatus)
					return
				}
				writeServiceError(w, r, err)
				return
			}

			sess := domain.Session{
				UserID:    claims.Subject,
				SessionID: claims.SID,
				Role:      role,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, sess)))
		})
	}
}

// RequireRole rejects sessions without the role with 403.
func RequireRole(role domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok || sess.Role != role {
				httpx.WriteError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// session is for handlers mounted behind SessionMiddleware.
func session(r *http.Request) domain.Session {
	s, _ := SessionFromContext(r.Context())
	return s
}
