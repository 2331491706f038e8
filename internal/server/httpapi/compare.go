package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/meherkandukuri/vegtrack/internal/server/models"
)

// compare returns up to 100 recent observations per requested vegetable,
// keyed by vegetable id.
func (h *Handlers) compare(w http.ResponseWriter, r *http.Request) {
	type req struct {
		VegetableIDs []int64 `json:"vegetable_ids"`
	}
	var body req
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	resp := make(map[string][]models.PriceEntry, len(body.VegetableIDs))
	for _, id := range body.VegetableIDs {
		prices, err := h.store.ListPrices(r.Context(), id, nil, nil, 100, 0)
		if err != nil {
			h.writeError(r.Context(), w, err)
			return
		}
		if prices == nil {
			prices = []models.PriceEntry{}
		}
		resp[strconv.FormatInt(id, 10)] = prices
	}
	writeJSON(w, http.StatusOK, resp)
}
