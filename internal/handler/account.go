package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/healthfinder/internal/auth"
	"github.com/sakif/healthfinder/internal/service"
)

// AccountHandler manages registration, login, logout, and the /api/me
// identity probe.
//
// On successful register/login the handler mints a JWT and sets it as an
// HttpOnly cookie — JavaScript can't read it, which keeps the token out of
// reach of XSS. Logout just clears the cookie; the token expires on its
// own schedule.
type AccountHandler struct {
	accounts *service.AccountService
	tokens   *auth.TokenService
	logger   *slog.Logger
}

func NewAccountHandler(accounts *service.AccountService, tokens *auth.TokenService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type identityResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// HandleRegister creates an account and starts a session.
//
// HTTP: POST /api/register
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.setSessionCookie(w, user.Username, user.Role); err != nil {
		h.logger.Error("issuing session after register", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, identityResponse{Username: user.Username, Role: user.Role})
}

// HandleLogin authenticates and starts a session.
//
// HTTP: POST /api/login
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.setSessionCookie(w, user.Username, user.Role); err != nil {
		h.logger.Error("issuing session after login", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, identityResponse{Username: user.Username, Role: user.Role})
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /api/logout — POST, not GET: logout changes state, and GET
// would be open to CSRF and browser pre-fetching.
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the current identity. Auth middleware has already
// validated the session on this route.
//
// HTTP: GET /api/me
func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Shouldn't happen on a protected route, but fail closed.
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, identityResponse{Username: id.Username, Role: id.Role})
}

func (h *AccountHandler) setSessionCookie(w http.ResponseWriter, username, role string) error {
	tokenStr, err := h.tokens.Generate(username, role)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    tokenStr,
		Path:     "/",
		MaxAge:   int(auth.DefaultTokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable in production behind HTTPS
	})
	return nil
}
