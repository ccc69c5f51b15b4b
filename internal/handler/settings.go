package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/beoflow/internal/model"
	"github.com/Shivanand-hulikatti/beoflow/internal/service"
)

// SettingsHandler serves the global settings.
type SettingsHandler struct {
	svc *service.SettingsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetSettings(r.Context()))
}

// UpdateSettings handles PATCH /settings
// Each top-level key present replaces the stored value.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch model.SettingsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	settings, err := h.svc.UpdateSettings(r.Context(), patch)
	if err != nil {
		writeServiceError(w, err, "settings not found")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// DepartmentEmailRequest is the payload of PUT /settings/departments/{department}/email.
type DepartmentEmailRequest struct {
	Email string `json:"email"`
}

// UpdateDepartmentEmail handles PUT /settings/departments/{department}/email
func (h *SettingsHandler) UpdateDepartmentEmail(w http.ResponseWriter, r *http.Request) {
	var req DepartmentEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	settings, err := h.svc.UpdateDepartmentEmail(r.Context(), chi.URLParam(r, "department"), req.Email)
	if err != nil {
		writeServiceError(w, err, "department not found")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
