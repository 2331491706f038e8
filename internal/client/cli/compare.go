package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/meherkandukuri/vegtrack/internal/client/models"
)

// Compare fetches recent price history for the named catalog vegetables and
// prints a per-vegetable summary side by side. Names are matched
// case-insensitively against the catalog; unknown names are reported and
// skipped.
func (a *App) Compare(ctx context.Context, names []string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to compare.")
		return nil
	}

	items, err := a.client.ListCatalog(ctx)
	if err != nil {
		return err
	}

	var selected []models.CatalogItem
	for _, name := range names {
		found := false
		for _, item := range items {
			if strings.EqualFold(item.Name, name) {
				selected = append(selected, item)
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(a.out, "No catalog vegetable named %q, skipping.\n", name)
		}
	}
	if len(selected) < 2 {
		return fmt.Errorf("need at least two known vegetables to compare")
	}

	ids := make([]int64, len(selected))
	for i, item := range selected {
		ids[i] = item.ID
	}
	histories, err := a.client.Compare(ctx, ids)
	if err != nil {
		return err
	}

	for _, item := range selected {
		prices := histories[strconv.FormatInt(item.ID, 10)]
		if len(prices) == 0 {
			fmt.Fprintf(a.out, "%-20s no prices recorded\n", item.Name)
			continue
		}
		min, max, sum := prices[0].Price, prices[0].Price, 0.0
		for _, p := range prices {
			if p.Price < min {
				min = p.Price
			}
			if p.Price > max {
				max = p.Price
			}
			sum += p.Price
		}
		latest := prices[0]
		for _, p := range prices {
			if p.Date.After(latest.Date) {
				latest = p
			}
		}
		fmt.Fprintf(a.out, "%-20s latest %.2f %s/%s  min %.2f  max %.2f  avg %.2f  (%d prices)\n",
			item.Name, latest.Price, latest.Currency, item.Unit, min, max, sum/float64(len(prices)), len(prices))
	}
	return nil
}
