package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/client/models"
)

// suggestWait bounds how long the command waits for the debounced lookup.
const suggestWait = 5 * time.Second

// Suggest runs a debounced catalog lookup for the given text and prints the
// matches, with each item's latest known price when the server has one.
func (a *App) Suggest(ctx context.Context, query string) error {
	done := make(chan []models.CatalogItem, 1)
	a.suggester.Suggest(ctx, query, func(items []models.CatalogItem) {
		done <- items
	})

	var items []models.CatalogItem
	select {
	case items = <-done:
	case <-time.After(suggestWait):
		return fmt.Errorf("suggestion lookup timed out")
	case <-ctx.Done():
		return ctx.Err()
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No matches.")
		return nil
	}
	for _, item := range items {
		line := fmt.Sprintf("  %s (%s)", item.Name, item.Unit)
		if item.LatestPrice != nil {
			line += fmt.Sprintf("  last %.2f", *item.LatestPrice)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}
