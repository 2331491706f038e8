package httpapi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/meherkandukuri/vegtrack/internal/common"
)

// exportCSV streams a vegetable's full price history as CSV. The filename
// encodes id, slugged name and unit, so sequential downloads don't collide.
func (h *Handlers) exportCSV(w http.ResponseWriter, r *http.Request) {
	vegID := urlID(r, "id")

	veg, err := h.store.GetVegetable(r.Context(), vegID)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	prices, err := h.store.ListPrices(r.Context(), vegID, nil, nil, 1000, 0)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# name: %s\n", veg.Name)
	fmt.Fprintf(&buf, "# unit: %s\n", veg.Unit)
	cw := csv.NewWriter(&buf)
	_ = cw.Write([]string{"id", "date", "price", "currency", "market", "notes", "unit"})
	for _, p := range prices {
		_ = cw.Write([]string{
			strconv.FormatInt(p.ID, 10),
			p.Date.Format(common.DateLayout),
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			p.Currency,
			deref(p.Market),
			deref(p.Notes),
			veg.Unit,
		})
	}
	cw.Flush()

	filename := fmt.Sprintf("vegetable-%d-%s-%s-prices.csv", veg.ID, slug(veg.Name), slug(veg.Unit))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	_, _ = w.Write(buf.Bytes())
}

// slug lowercases, replaces spaces and underscores with '-', and drops
// anything outside [a-z0-9-].
func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			out = append(out, r)
		case r == ' ' || r == '_':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "veg"
	}
	return string(out)
}
