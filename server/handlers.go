package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CodeNexus100/signal-iq-be/entity"
	"github.com/CodeNexus100/signal-iq-be/entity/grid"
	"github.com/CodeNexus100/signal-iq-be/kernel"
)

type signalUpdateRequest struct {
	NSGreenTime *float64 `json:"nsGreenTime"`
	EWGreenTime *float64 `json:"ewGreenTime"`
	Mode        *string  `json:"mode"`
}

type aiModeRequest struct {
	Enabled bool `json:"enabled"`
}

type patternRequest struct {
	Pattern string `json:"pattern"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("response encoding failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Root is the service banner.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "signal-iq",
		"status":  "running",
	})
}

// GridState returns the full simulation snapshot.
func (h *Handler) GridState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.kernel.Snapshot())
}

// GridOverview returns per-lane and per-zone congestion aggregates.
func (h *Handler) GridOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.kernel.GridOverview())
}

// SignalDetail returns the detail view of one intersection.
func (h *Handler) SignalDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.kernel.IntersectionDetail(id)
	if errors.Is(err, kernel.ErrIntersectionNotFound) {
		writeError(w, http.StatusNotFound, "intersection not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// SignalUpdate queues a timing and/or mode change for one intersection.
// Validation happens here; the mutation itself lands on the next tick.
func (h *Handler) SignalUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.kernel.HasIntersection(id) {
		writeError(w, http.StatusNotFound, "intersection not found")
		return
	}

	var req signalUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var mode *entity.IntersectionMode
	if req.Mode != nil {
		m := entity.IntersectionMode(*req.Mode)
		if !m.Valid() {
			writeError(w, http.StatusBadRequest, "unknown mode")
			return
		}
		mode = &m
	}

	h.kernel.Enqueue(kernel.UpdateIntersection(id, req.NSGreenTime, req.EWGreenTime, mode))
	writeJSON(w, http.StatusOK, map[string]string{
		"status":         "queued",
		"intersectionId": id,
	})
}

// SetAIMode toggles the grid-wide AI controller.
func (h *Handler) SetAIMode(w http.ResponseWriter, r *http.Request) {
	var req aiModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.kernel.Enqueue(kernel.SetGlobalAIMode(req.Enabled))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "queued",
		"aiEnabled": req.Enabled,
	})
}

// ApplyPattern queues a named timing plan for the whole grid. Unknown
// names are accepted and fall back to the neutral plan.
func (h *Handler) ApplyPattern(w http.ResponseWriter, r *http.Request) {
	var req patternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.kernel.Enqueue(kernel.ApplyTrafficPattern(req.Pattern))
	writeJSON(w, http.StatusOK, map[string]any{
		"patternApplied":       req.Pattern,
		"intersectionsUpdated": grid.Size * grid.Size,
	})
}

// StartEmergency launches the emergency run.
func (h *Handler) StartEmergency(w http.ResponseWriter, r *http.Request) {
	h.kernel.Enqueue(kernel.StartEmergency())
	writeJSON(w, http.StatusOK, map[string]string{"status": "queued"})
}

// StopEmergency cancels the emergency run and restores overrides.
func (h *Handler) StopEmergency(w http.ResponseWriter, r *http.Request) {
	h.kernel.Enqueue(kernel.StopEmergency())
	writeJSON(w, http.StatusOK, map[string]string{"status": "queued"})
}

// SpawnVehicle queues one spawn attempt, subject to the population cap.
func (h *Handler) SpawnVehicle(w http.ResponseWriter, r *http.Request) {
	h.kernel.Enqueue(kernel.SpawnVehicle())
	writeJSON(w, http.StatusOK, map[string]string{"status": "queued"})
}

// AIStatus returns the controller's latest report.
func (h *Handler) AIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.kernel.AIStatus())
}
