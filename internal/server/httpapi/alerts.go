package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/meherkandukuri/vegtrack/internal/server/models"
)

func (h *Handlers) createAlert(w http.ResponseWriter, r *http.Request) {
	var a models.Alert
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	a.UserID = UserIDFromCtx(r.Context())
	a.Active = true
	if err := a.Validate(); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	id, err := h.store.CreateAlert(r.Context(), &a)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	a.ID = id
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) listAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.store.ListAlerts(r.Context(), UserIDFromCtx(r.Context()))
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *Handlers) deactivateAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeactivateAlert(r.Context(), urlID(r, "id"), UserIDFromCtx(r.Context())); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
