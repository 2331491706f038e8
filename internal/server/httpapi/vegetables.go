package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/server/models"
)

func (h *Handlers) listVegetables(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	list, err := h.store.ListVegetables(r.Context(), q, limit, (page-1)*limit)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	if list == nil {
		list = []models.Vegetable{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) createVegetable(w http.ResponseWriter, r *http.Request) {
	var v models.Vegetable
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(v.Unit) == "" {
		v.Unit = common.DefaultUnit
	}
	if err := v.Validate(); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	id, err := h.store.CreateVegetable(r.Context(), &v)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	v.ID = id
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handlers) getVegetable(w http.ResponseWriter, r *http.Request) {
	id := urlID(r, "id")
	v, err := h.store.GetVegetable(r.Context(), id)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handlers) updateVegetable(w http.ResponseWriter, r *http.Request) {
	var v models.Vegetable
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	v.ID = urlID(r, "id")
	if strings.TrimSpace(v.Unit) == "" {
		v.Unit = common.DefaultUnit
	}
	if err := v.Validate(); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	if err := h.store.UpdateVegetable(r.Context(), &v); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handlers) deleteVegetable(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteVegetable(r.Context(), urlID(r, "id")); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func urlID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id
}
