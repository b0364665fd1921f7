package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sakif/healthfinder/internal/model"
)

// okHandler records whether it ran and what identity it saw.
type okHandler struct {
	called   bool
	identity Identity
	found    bool
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.identity, h.found = IdentityFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func requestWithToken(t *testing.T, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	ts := newTestTokenService(t)

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, err := ts.Generate("alice", model.RoleUser)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		next := &okHandler{}
		rr := httptest.NewRecorder()
		RequireAuth(ts)(next).ServeHTTP(rr, requestWithToken(t, token))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		if !next.called {
			t.Fatal("handler was not invoked")
		}
		if !next.found {
			t.Fatal("identity missing from request context")
		}
		if next.identity.Username != "alice" || next.identity.Role != model.RoleUser {
			t.Errorf("identity = %+v, want alice/%s", next.identity, model.RoleUser)
		}
	})

	t.Run("missing cookie is rejected", func(t *testing.T) {
		next := &okHandler{}
		rr := httptest.NewRecorder()
		RequireAuth(ts)(next).ServeHTTP(rr, requestWithToken(t, ""))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
		}
		if next.called {
			t.Error("handler ran without authentication")
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := ts.GenerateWithDuration("alice", model.RoleUser, -time.Minute)
		if err != nil {
			t.Fatalf("GenerateWithDuration() error = %v", err)
		}

		next := &okHandler{}
		rr := httptest.NewRecorder()
		RequireAuth(ts)(next).ServeHTTP(rr, requestWithToken(t, token))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
		}
		if next.called {
			t.Error("handler ran with an expired token")
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		next := &okHandler{}
		rr := httptest.NewRecorder()
		RequireAuth(ts)(next).ServeHTTP(rr, requestWithToken(t, "not.a.jwt"))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	ts := newTestTokenService(t)

	t.Run("admin role passes", func(t *testing.T) {
		token, err := ts.Generate("root", model.RoleAdmin)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		next := &okHandler{}
		rr := httptest.NewRecorder()
		// Chained the way the router mounts it: auth first, then role.
		RequireAuth(ts)(RequireAdmin(ts)(next)).ServeHTTP(rr, requestWithToken(t, token))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		if next.identity.Role != model.RoleAdmin {
			t.Errorf("role = %q, want %q", next.identity.Role, model.RoleAdmin)
		}
	})

	t.Run("user role gets 403", func(t *testing.T) {
		token, err := ts.Generate("alice", model.RoleUser)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		next := &okHandler{}
		rr := httptest.NewRecorder()
		RequireAuth(ts)(RequireAdmin(ts)(next)).ServeHTTP(rr, requestWithToken(t, token))

		if rr.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusForbidden)
		}
		if next.called {
			t.Error("handler ran for a non-admin")
		}
	})

	t.Run("anonymous request gets 401", func(t *testing.T) {
		next := &okHandler{}
		rr := httptest.NewRecorder()
		// RequireAdmin alone must still fail closed without RequireAuth.
		RequireAdmin(ts)(next).ServeHTTP(rr, requestWithToken(t, ""))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
		}
		if next.called {
			t.Error("handler ran without authentication")
		}
	})

	t.Run("standalone RequireAdmin validates the cookie itself", func(t *testing.T) {
		token, err := ts.Generate("root", model.RoleAdmin)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		next := &okHandler{}
		rr := httptest.NewRecorder()
		RequireAdmin(ts)(next).ServeHTTP(rr, requestWithToken(t, token))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		if !next.found {
			t.Error("identity missing from request context")
		}
	})
}
