// Package httpapi exposes the REST surface of the price tracker over chi.
// Reads are public; writes require a bearer token issued by the auth service.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/logging"
	"github.com/meherkandukuri/vegtrack/internal/server/auth"
	"github.com/meherkandukuri/vegtrack/internal/server/store"
)

type Handlers struct {
	store store.Store
	auth  *auth.Service
	log   logging.Logger
}

func New(s store.Store, a *auth.Service, log logging.Logger) *Handlers {
	return &Handlers{store: s, auth: a, log: log.With("component", "httpapi")}
}

// Routes mounts the full API. Catalog reads and exports are public; every
// mutation goes through the auth middleware.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/signup", h.signup)
	r.Post("/auth/login", h.login)

	r.Get("/vegetables", h.listVegetables)
	r.Get("/vegetables/{id}", h.getVegetable)
	r.Get("/vegetables/{id}/prices", h.listPrices)
	r.Get("/vegetables/{id}/export", h.exportCSV)
	r.Post("/compare", h.compare)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(h.auth))

		r.Post("/vegetables", h.createVegetable)
		r.Put("/vegetables/{id}", h.updateVegetable)
		r.Delete("/vegetables/{id}", h.deleteVegetable)

		r.Post("/vegetables/{id}/prices", h.addPrice)
		r.Put("/prices/{price_id}", h.updatePrice)
		r.Delete("/prices/{price_id}", h.deletePrice)

		r.Post("/alerts", h.createAlert)
		r.Get("/alerts", h.listAlerts)
		r.Delete("/alerts/{id}", h.deactivateAlert)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels onto HTTP statuses.
func (h *Handlers) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		h.log.Error(ctx, "internal error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
