package auth

import (
	"context"
	"net/http"

	"github.com/sakif/healthfinder/internal/model"
)

// contextKey is an unexported type used for context keys in this package.
// A package-private key type means no other package can read or shadow the
// identity value we store in the request context.
type contextKey string

const identityKey contextKey = "identity"

// SessionCookie is the name of the HttpOnly cookie that carries the JWT.
const SessionCookie = "session"

// RequireAuth enforces authentication on protected routes.
//
// It reads the JWT from the session cookie, validates it, and stores the
// Identity in the request context. Missing or invalid token → 401 and the
// chain stops.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := extractIdentity(r, tokens)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin enforces the admin role on top of authentication. Use it
// inside a RequireAuth-protected route group; it re-checks the token
// itself so ordering mistakes fail closed rather than open.
func RequireAdmin(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				var err error
				id, err = extractIdentity(r, tokens)
				if err != nil {
					http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
					return
				}
			}

			if id.Role != model.RoleAdmin {
				http.Error(w, `{"error":"forbidden","message":"admin access required"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), id)))
		})
	}
}

// ContextWithIdentity returns a copy of ctx carrying the authenticated
// identity. The middleware uses it after token validation; handler tests
// use it to simulate a logged-in request.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the authenticated identity from the
// request context. Returns (zero, false) for anonymous requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// extractIdentity reads the session cookie and validates the JWT inside it.
func extractIdentity(r *http.Request, tokens *TokenService) (Identity, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return Identity{}, err
	}
	return tokens.Validate(cookie.Value)
}
