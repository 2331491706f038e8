// Package resolve maps a free-text entry name onto its canonical catalog
// item, creating the item when the catalog has no match.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/meherkandukuri/vegtrack/internal/client/api"
	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/meherkandukuri/vegtrack/internal/logging"
)

// Resolver performs find-or-create identity resolution. A single Resolve
// call intends at most one creation per distinct name; global exactly-once
// creation under concurrent resolutions is the caller's responsibility
// (the reconciler processes entries strictly sequentially for this reason).
type Resolver struct {
	client api.Client
	log    logging.Logger
}

func New(client api.Client, log logging.Logger) *Resolver {
	return &Resolver{client: client, log: log.With("component", "resolve")}
}

// Resolve returns the catalog item for name. Selection order: an exact
// case-insensitive name match among the search results; otherwise the first
// result; otherwise a newly created item with the given name and unit.
//
// The first-result fallback can attach a price to a near-match rather than
// the intended item when no exact match exists. That is the documented
// behavior; changing it needs product input.
func (r *Resolver) Resolve(ctx context.Context, name string, unit models.Unit) (*models.CatalogItem, error) {
	results, err := r.client.Search(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("catalog search for %q: %w", name, err)
	}

	if len(results) > 0 {
		for _, item := range results {
			if strings.EqualFold(item.Name, name) {
				return &item, nil
			}
		}
		first := results[0]
		r.log.Debug(ctx, "no exact catalog match, using first result",
			"name", name, "matched", first.Name)
		return &first, nil
	}

	item, err := r.client.CreateItem(ctx, name, string(unit))
	if err != nil {
		return nil, fmt.Errorf("creating catalog item %q: %w", name, err)
	}
	return item, nil
}
