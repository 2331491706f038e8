// Package apitest provides an in-memory api.Client fake with call counters
// and injectable failures, for exercising the engine without a live server.
package apitest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/client/api"
	"github.com/meherkandukuri/vegtrack/internal/client/models"
)

// Fake implements api.Client over an in-memory catalog. The zero value is
// ready to use. Set one of the Err* fields to make the corresponding call
// fail; counters record how many times each call was attempted.
type Fake struct {
	mu sync.Mutex

	items  []models.CatalogItem
	prices []models.PriceRecord

	nextItemID  int64
	nextPriceID int64

	// Injectable failures.
	ErrSearch      error
	ErrCreateItem  error
	ErrCreatePrice error
	ErrUpdatePrice error
	ErrDeletePrice error

	// Call counters.
	SearchCalls      int
	ListCatalogCalls int
	CreateItemCalls  int
	CreatePriceCalls int
	UpdatePriceCalls int
	DeletePriceCalls int
}

var _ api.Client = (*Fake)(nil)

// SeedItem adds a catalog item directly, bypassing counters.
func (f *Fake) SeedItem(name, unit string) models.CatalogItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextItemID++
	item := models.CatalogItem{ID: f.nextItemID, Name: name, Unit: unit}
	f.items = append(f.items, item)
	return item
}

// Items returns a snapshot of the catalog.
func (f *Fake) Items() []models.CatalogItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.CatalogItem, len(f.items))
	copy(out, f.items)
	return out
}

// Prices returns a snapshot of all stored price records.
func (f *Fake) Prices() []models.PriceRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.PriceRecord, len(f.prices))
	copy(out, f.prices)
	return out
}

func (f *Fake) Signup(ctx context.Context, email, password string) (string, error) {
	return "fake-token", nil
}

func (f *Fake) Login(ctx context.Context, email, password string) (string, error) {
	return "fake-token", nil
}

func (f *Fake) Search(ctx context.Context, q string) ([]models.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SearchCalls++
	if f.ErrSearch != nil {
		return nil, f.ErrSearch
	}
	var out []models.CatalogItem
	for _, item := range f.items {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(q)) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *Fake) ListCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCatalogCalls++
	out := make([]models.CatalogItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *Fake) CreateItem(ctx context.Context, name, unit string) (*models.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateItemCalls++
	if f.ErrCreateItem != nil {
		return nil, f.ErrCreateItem
	}
	f.nextItemID++
	item := models.CatalogItem{ID: f.nextItemID, Name: name, Unit: unit}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *Fake) CreatePrice(ctx context.Context, catalogID int64, p api.PricePayload) (*models.PriceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatePriceCalls++
	if f.ErrCreatePrice != nil {
		return nil, f.ErrCreatePrice
	}
	date, _ := time.Parse("2006-01-02", p.Date)
	f.nextPriceID++
	rec := models.PriceRecord{
		ID:        f.nextPriceID,
		CatalogID: catalogID,
		Price:     p.Price.InexactFloat64(),
		Currency:  p.Currency,
		Date:      date,
	}
	f.prices = append(f.prices, rec)
	return &rec, nil
}

func (f *Fake) ListPrices(ctx context.Context, catalogID int64) ([]models.PriceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PriceRecord
	for _, rec := range f.prices {
		if rec.CatalogID == catalogID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *Fake) UpdatePrice(ctx context.Context, remoteID int64, p api.PricePayload) (*models.PriceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdatePriceCalls++
	if f.ErrUpdatePrice != nil {
		return nil, f.ErrUpdatePrice
	}
	for i, rec := range f.prices {
		if rec.ID == remoteID {
			f.prices[i].Price = p.Price.InexactFloat64()
			f.prices[i].Currency = p.Currency
			if date, err := time.Parse("2006-01-02", p.Date); err == nil {
				f.prices[i].Date = date
			}
			return &f.prices[i], nil
		}
	}
	return nil, fmt.Errorf("price %d not found", remoteID)
}

func (f *Fake) DeletePrice(ctx context.Context, remoteID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletePriceCalls++
	if f.ErrDeletePrice != nil {
		return f.ErrDeletePrice
	}
	for i, rec := range f.prices {
		if rec.ID == remoteID {
			f.prices = append(f.prices[:i], f.prices[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("price %d not found", remoteID)
}

func (f *Fake) Compare(ctx context.Context, catalogIDs []int64) (map[string][]models.PriceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]models.PriceRecord, len(catalogIDs))
	for _, id := range catalogIDs {
		key := fmt.Sprintf("%d", id)
		out[key] = []models.PriceRecord{}
		for _, rec := range f.prices {
			if rec.CatalogID == id {
				out[key] = append(out[key], rec)
			}
		}
	}
	return out, nil
}

func (f *Fake) ExportCSV(ctx context.Context, item models.CatalogItem) (*api.Export, error) {
	return &api.Export{
		Filename: fmt.Sprintf("vegetable-%d-prices.csv", item.ID),
		Data:     []byte("id,date,price\n"),
	}, nil
}
