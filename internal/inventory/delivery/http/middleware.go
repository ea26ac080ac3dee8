package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/cafe-inventory/internal/inventory/access"
	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom returns the caller identity stored by Authenticate, or the
// zero Identity.
func IdentityFrom(ctx context.Context) domain.Identity {
	id, _ := ctx.Value(identityKey).(domain.Identity)
	return id
}

// sessionToken reads the bearer token, falling back to the session cookie.
func sessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Authenticate resolves the session token to an identity before the
// wrapped handler runs.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.sessions.Resolve(r.Context(), sessionToken(r))
		if err != nil {
			respondErr(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAction rejects callers whose role is not granted action.
func RequireAction(action access.Action, next http.HandlerFunc) http.HandlerFunc {
	allowed := access.RolesFor(action)
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.RequireRole(IdentityFrom(r.Context()), allowed...); err != nil {
			respondErr(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	}
}
