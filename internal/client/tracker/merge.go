package tracker

import (
	"fmt"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/shopspring/decimal"
)

// Merge folds a remote catalog snapshot into the displayed list: local-only
// entries always survive unchanged, everything else is replaced by one
// remote-derived entry per catalog item. No incremental diffing.
func Merge(existing []models.Entry, items []models.CatalogItem) []models.Entry {
	merged := make([]models.Entry, 0, len(existing)+len(items))
	for _, e := range existing {
		if e.LocalOnly() {
			merged = append(merged, e)
		}
	}
	for _, item := range items {
		merged = append(merged, projectCatalogItem(item))
	}
	return merged
}

// projectCatalogItem turns a catalog item into a remote-derived display
// entry. The synthetic local id keeps it distinct from client-generated ids;
// RemoteID stays nil because the entry represents a latest-price snapshot,
// not an individual price record.
func projectCatalogItem(item models.CatalogItem) models.Entry {
	price := decimal.Zero
	if item.LatestPrice != nil {
		price = decimal.NewFromFloat(*item.LatestPrice)
	}

	date := time.Now().Format(common.DateLayout)
	if item.LastUpdated != nil {
		date = item.LastUpdated.Format(common.DateLayout)
	}

	unit := models.Unit(item.Unit)
	if unit == "" {
		unit = models.Unit(common.DefaultUnit)
	}

	id := item.ID
	return models.Entry{
		LocalID:   fmt.Sprintf("s-%d", item.ID),
		Name:      item.Name,
		Price:     price,
		Date:      date,
		Unit:      unit,
		Currency:  common.DefaultCurrency,
		CatalogID: &id,
	}
}
