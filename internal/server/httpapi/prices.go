package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/server/models"
)

func (h *Handlers) listPrices(w http.ResponseWriter, r *http.Request) {
	vegID := urlID(r, "id")

	var fromPtr, toPtr *time.Time
	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.Parse(common.DateLayout, from); err == nil {
			fromPtr = &t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse(common.DateLayout, to); err == nil {
			toPtr = &t
		}
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.store.ListPrices(r.Context(), vegID, fromPtr, toPtr, limit, offset)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	if list == nil {
		list = []models.PriceEntry{}
	}

	min, max, avg, err := h.store.AggregatePrices(r.Context(), vegID, fromPtr, toPtr)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"vegetable_id": vegID,
		"prices":       list,
		"aggregate":    map[string]*float64{"min": min, "max": max, "avg": avg},
	})
}

func (h *Handlers) addPrice(w http.ResponseWriter, r *http.Request) {
	vegID := urlID(r, "id")

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "invalid json: empty body", http.StatusBadRequest)
		return
	}
	p, err := parsePricePayload(body)
	if err != nil {
		h.log.Warn(r.Context(), "price payload rejected", "error", err)
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	p.VegetableID = vegID
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	if p.Currency == "" {
		p.Currency = common.DefaultCurrency
	}
	if err := p.Validate(); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	id, err := h.store.InsertPrice(r.Context(), p)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	p.ID = id
	writeJSON(w, http.StatusCreated, p)
}

// parsePricePayload tolerantly parses price (number or string) and date
// (RFC3339 or YYYY-MM-DD). Clients disagree on both.
func parsePricePayload(body []byte) (*models.PriceEntry, error) {
	type raw struct {
		Price    any     `json:"price"`
		Currency string  `json:"currency"`
		Date     *string `json:"date"`
		Market   *string `json:"market"`
		Notes    *string `json:"notes"`
	}
	var in raw
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, err
	}

	var price float64
	switch v := in.Price.(type) {
	case float64:
		price = v
	case string:
		if v == "" {
			return nil, fmt.Errorf("price required")
		}
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		price = p
	case nil:
		return nil, fmt.Errorf("price required")
	default:
		return nil, fmt.Errorf("invalid price type")
	}

	pe := &models.PriceEntry{Price: price, Currency: in.Currency}
	if in.Market != nil && strings.TrimSpace(*in.Market) != "" {
		pe.Market = in.Market
	}
	if in.Notes != nil && strings.TrimSpace(*in.Notes) != "" {
		pe.Notes = in.Notes
	}
	if in.Date != nil && *in.Date != "" {
		if t, err := time.Parse(time.RFC3339, *in.Date); err == nil {
			pe.Date = t
		} else if t, err := time.Parse(common.DateLayout, *in.Date); err == nil {
			pe.Date = t
		} else {
			return nil, fmt.Errorf("invalid date format")
		}
	}
	return pe, nil
}

func (h *Handlers) updatePrice(w http.ResponseWriter, r *http.Request) {
	pid := urlID(r, "price_id")

	p, err := h.store.GetPriceEntry(r.Context(), pid)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "invalid json: empty body", http.StatusBadRequest)
		return
	}
	upd, err := parsePricePayload(body)
	if err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	p.Price = upd.Price
	if upd.Currency != "" {
		p.Currency = upd.Currency
	}
	if !upd.Date.IsZero() {
		p.Date = upd.Date
	}
	if upd.Market != nil {
		p.Market = upd.Market
	}
	if upd.Notes != nil {
		p.Notes = upd.Notes
	}
	if err := p.Validate(); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	if err := h.store.UpdatePriceEntry(r.Context(), p); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) deletePrice(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePriceEntry(r.Context(), urlID(r, "price_id")); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
