package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/healthfinder/internal/auth"
	"github.com/sakif/healthfinder/internal/model"
	"github.com/sakif/healthfinder/internal/service"
)

// ProfileHandler exposes the health profile as a single read/replace
// resource per user.
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *slog.Logger
}

func NewProfileHandler(profiles *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger,
	}
}

type profileRequest struct {
	Age               int    `json:"age"`
	BloodType         string `json:"bloodType"`
	Allergies         string `json:"allergies"`
	ChronicConditions string `json:"chronicConditions"`
	EmergencyContact  string `json:"emergencyContact"`
}

// HandleGet returns the caller's profile. A user who has never saved one
// gets 404 rather than an empty object, so clients can tell the two apart.
//
// HTTP: GET /api/profile
// Auth: required
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	profile, err := h.profiles.Get(r.Context(), id.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "no profile saved yet",
		})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandlePut replaces the caller's profile wholesale. Fields omitted from
// the body come back empty on the next read.
//
// HTTP: PUT /api/profile
// Auth: required
func (h *ProfileHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return
	}

	profile := &model.Profile{
		Age:               req.Age,
		BloodType:         req.BloodType,
		Allergies:         req.Allergies,
		ChronicConditions: req.ChronicConditions,
		EmergencyContact:  req.EmergencyContact,
	}

	if err := h.profiles.Upsert(r.Context(), id.Username, profile); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
