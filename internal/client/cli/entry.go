package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/meherkandukuri/vegtrack/internal/client/tracker"
	"github.com/meherkandukuri/vegtrack/internal/common"
)

// Add prompts for the fields of a new price observation and records it.
// Offline adds land in the local cache; online adds go straight to the server.
func (a *App) Add(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Vegetable name", a.out)
	if err != nil {
		return err
	}

	priceText, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	price, err := models.ParsePrice(priceText)
	if err != nil {
		return err
	}

	date, err := GetTextDefault(a.reader, "Date (YYYY-MM-DD)", time.Now().Format(common.DateLayout), a.out)
	if err != nil {
		return err
	}

	unitText, err := GetTextDefault(a.reader, "Unit", common.DefaultUnit, a.out)
	if err != nil {
		return err
	}
	unit, err := models.ParseUnit(unitText)
	if err != nil {
		return err
	}

	market, err := GetTextDefault(a.reader, "Market (optional)", "", a.out)
	if err != nil {
		return err
	}

	entry := models.NewEntry(name, price, date, unit)
	entry.Market = market
	return a.tracker.Add(ctx, entry)
}

// List prints the displayed entry list, newest first, with 1-based indexes
// that edit and delete accept.
func (a *App) List(ctx context.Context) error {
	entries := a.tracker.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries yet.")
		return nil
	}

	for i, e := range entries {
		status := "synced"
		if e.LocalOnly() {
			status = "local"
		}
		line := fmt.Sprintf("%3d. %-20s %8s %s/%s  %s  [%s]",
			i+1, e.Name, e.Price.StringFixed(2), e.Currency, e.Unit, e.Date, status)
		if e.Market != "" {
			line += "  @" + e.Market
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Edit re-prompts the fields of the entry at the given list index, using the
// current values as defaults.
func (a *App) Edit(ctx context.Context, arg string) error {
	entry, err := a.entryAt(arg)
	if err != nil {
		return err
	}

	name, err := GetTextDefault(a.reader, "Vegetable name", entry.Name, a.out)
	if err != nil {
		return err
	}

	priceText, err := GetTextDefault(a.reader, "Price", entry.Price.String(), a.out)
	if err != nil {
		return err
	}
	price, err := models.ParsePrice(priceText)
	if err != nil {
		return err
	}

	date, err := GetTextDefault(a.reader, "Date (YYYY-MM-DD)", entry.Date, a.out)
	if err != nil {
		return err
	}

	unitText, err := GetTextDefault(a.reader, "Unit", string(entry.Unit), a.out)
	if err != nil {
		return err
	}
	unit, err := models.ParseUnit(unitText)
	if err != nil {
		return err
	}

	market, err := GetTextDefault(a.reader, "Market (optional)", entry.Market, a.out)
	if err != nil {
		return err
	}

	return a.tracker.Edit(ctx, entry.LocalID, tracker.Update{
		Name:   name,
		Price:  price,
		Date:   date,
		Unit:   unit,
		Market: market,
	})
}

// Delete removes the entry at the given list index.
func (a *App) Delete(ctx context.Context, arg string) error {
	entry, err := a.entryAt(arg)
	if err != nil {
		return err
	}
	return a.tracker.Delete(ctx, entry.LocalID)
}

// Refresh pulls the current catalog and rebuilds the remote-derived part of
// the list.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to refresh from the server.")
		return nil
	}
	return a.tracker.Refresh(ctx)
}

// Sync pushes local-only entries to the server.
func (a *App) Sync(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to sync.")
		return nil
	}
	a.reconciler.Trigger(ctx)
	return nil
}

func (a *App) entryAt(arg string) (models.Entry, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: %q is not a list index", common.ErrValidation, arg)
	}
	entries := a.tracker.Entries()
	if idx < 1 || idx > len(entries) {
		return models.Entry{}, fmt.Errorf("%w: no entry %d", common.ErrNotFound, idx)
	}
	return entries[idx-1], nil
}
