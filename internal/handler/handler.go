// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/beoflow/internal/model"
	"github.com/Shivanand-hulikatti/beoflow/internal/repository"
	"github.com/Shivanand-hulikatti/beoflow/internal/service"
)

// EventHandler holds the HTTP handlers for BEO records.
type EventHandler struct {
	svc         *service.EventService
	distributor *service.Distributor
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService, distributor *service.Distributor) *EventHandler {
	return &EventHandler{svc: svc, distributor: distributor}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps service and repository errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDistributionFailed):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// The client went away; nothing was applied.
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.EventDetails
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "event not found")
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /events
// Returns all events, most recently modified first.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.svc.ListEvents(r.Context())

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// UpdateEvent handles PATCH /events/{id}
// Fields present in the body replace the stored values wholesale.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch model.EventPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.UpdateEvent(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApproveEvent handles POST /events/{id}/approve
func (h *EventHandler) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.ApproveEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// DistributeRequest is the payload of POST /events/{id}/distribute.
type DistributeRequest struct {
	Departments []model.Department `json:"departments"`
}

// DistributeEvent handles POST /events/{id}/distribute
// The distribution is tied to the request: if the client disconnects during
// the distribution delay, nothing is applied.
func (h *EventHandler) DistributeEvent(w http.ResponseWriter, r *http.Request) {
	var req DistributeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.distributor.Distribute(r.Context(), chi.URLParam(r, "id"), req.Departments)
	if err != nil {
		writeServiceError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExportEvent handles GET /events/{id}/export?width=W&height=H
// Returns the A4 page plan for a rendered view of W x H pixels.
func (h *EventHandler) ExportEvent(w http.ResponseWriter, r *http.Request) {
	width, err := strconv.Atoi(r.URL.Query().Get("width"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "width must be an integer")
		return
	}
	height, err := strconv.Atoi(r.URL.Query().Get("height"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "height must be an integer")
		return
	}

	plan, err := h.svc.ExportPlan(r.Context(), chi.URLParam(r, "id"), width, height)
	if err != nil {
		writeServiceError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// Dirtier reports whether a store's memory has diverged from its backend.
type Dirtier interface {
	Dirty() bool
}

// HealthCheck handles GET /health. A store whose last write failed is
// reported as "degraded"; the service keeps serving from memory.
func HealthCheck(events, settings Dirtier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		eventsDirty, settingsDirty := events.Dirty(), settings.Dirty()
		if eventsDirty || settingsDirty {
			status = "degraded"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":         status,
			"events_dirty":   eventsDirty,
			"settings_dirty": settingsDirty,
		})
	}
}
