package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/healthfinder/internal/service"
)

// AdminHandler serves the operator endpoints. Role enforcement happens in
// middleware; by the time these run the caller is a verified admin.
type AdminHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

func NewAdminHandler(admin *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		logger: logger,
	}
}

// HandleStats returns aggregate usage counts.
//
// HTTP: GET /api/admin/stats
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleListUsers returns every registered account without credentials.
//
// HTTP: GET /api/admin/users
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleExport bundles everything stored about one user into a single
// document, for data-portability requests.
//
// HTTP: GET /api/admin/users/{username}/export
func (h *AdminHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	export, err := h.admin.Export(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	if export == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "no such user",
		})
		return
	}

	// Suggest a filename so the browser saves it rather than rendering it.
	w.Header().Set("Content-Disposition", `attachment; filename="`+username+`_export.json"`)
	writeJSON(w, http.StatusOK, export)
}

// HandleDeleteUser removes a user and all their data.
//
// HTTP: DELETE /api/admin/users/{username}
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.admin.DeleteUser(r.Context(), username); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("user deleted by admin", slog.String("username", username))
	w.WriteHeader(http.StatusNoContent)
}
