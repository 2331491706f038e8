// Package api defines the remote catalog/price service interface consumed by
// the tracker engine, and an HTTP implementation of it.
package api

import (
	"context"

	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/shopspring/decimal"
)

// PricePayload is the body for price create/update calls.
type PricePayload struct {
	Price    decimal.Decimal `json:"price"`
	Date     string          `json:"date"`
	Currency string          `json:"currency"`
	Market   string          `json:"market"`
}

// Export is a downloaded CSV price history.
type Export struct {
	Filename string
	Data     []byte
}

// Client is the remote collaborator the engine reconciles against. All
// methods honor context cancellation. Transient failures are reported as
// common.ErrUnavailable, expired sessions as common.ErrUnauthorized.
type Client interface {
	// Signup creates an account and returns a bearer token.
	Signup(ctx context.Context, email, password string) (string, error)

	// Login authenticates and returns a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// Search lists catalog items whose name contains q (case-insensitive).
	Search(ctx context.Context, q string) ([]models.CatalogItem, error)

	// ListCatalog lists the full catalog with latest prices.
	ListCatalog(ctx context.Context) ([]models.CatalogItem, error)

	// CreateItem requests creation of a catalog item.
	CreateItem(ctx context.Context, name, unit string) (*models.CatalogItem, error)

	// CreatePrice submits a price record for a catalog item.
	CreatePrice(ctx context.Context, catalogID int64, p PricePayload) (*models.PriceRecord, error)

	// ListPrices returns the price history of a catalog item.
	ListPrices(ctx context.Context, catalogID int64) ([]models.PriceRecord, error)

	// UpdatePrice rewrites an existing price record in place.
	UpdatePrice(ctx context.Context, remoteID int64, p PricePayload) (*models.PriceRecord, error)

	// DeletePrice removes a price record.
	DeletePrice(ctx context.Context, remoteID int64) error

	// ExportCSV downloads the price history of a catalog item as CSV.
	ExportCSV(ctx context.Context, item models.CatalogItem) (*Export, error)

	// Compare fetches recent price histories for several catalog items at
	// once, keyed by the item's id rendered as a decimal string.
	Compare(ctx context.Context, catalogIDs []int64) (map[string][]models.PriceRecord, error)
}
