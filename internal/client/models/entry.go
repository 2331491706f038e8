// Package models defines the client-side entry type and the remote catalog
// and price-record shapes it reconciles against.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/shopspring/decimal"
)

// Unit is a unit of measure from the fixed set the catalog understands.
type Unit string

const (
	UnitKg    Unit = "kg"
	UnitG     Unit = "g"
	UnitLb    Unit = "lb"
	UnitBunch Unit = "bunch"
	UnitLitre Unit = "litre"
	UnitPiece Unit = "piece"
)

var units = map[Unit]struct{}{
	UnitKg: {}, UnitG: {}, UnitLb: {}, UnitBunch: {}, UnitLitre: {}, UnitPiece: {},
}

// ParseUnit validates a unit string. An empty string yields the default unit.
func ParseUnit(s string) (Unit, error) {
	if strings.TrimSpace(s) == "" {
		return Unit(common.DefaultUnit), nil
	}
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := units[u]; !ok {
		return "", fmt.Errorf("%w: unknown unit %q", common.ErrValidation, s)
	}
	return u, nil
}

// ParsePrice converts user input into a positive decimal amount.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price must be a number", common.ErrValidation)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price must be positive", common.ErrValidation)
	}
	return d, nil
}

// Entry is a single price observation tracked by the client. It starts
// local-only and becomes synced once both CatalogID and RemoteID are set.
type Entry struct {
	LocalID   string          `json:"local_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Date      string          `json:"date"`
	Unit      Unit            `json:"unit"`
	Currency  string          `json:"currency,omitempty"`
	Market    string          `json:"market,omitempty"`
	CatalogID *int64          `json:"catalog_id,omitempty"`
	RemoteID  *int64          `json:"remote_id,omitempty"`
}

// NewEntry builds a local-only entry with a fresh local identifier and
// defaults applied.
func NewEntry(name string, price decimal.Decimal, date string, unit Unit) *Entry {
	if unit == "" {
		unit = Unit(common.DefaultUnit)
	}
	return &Entry{
		LocalID:  uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Price:    price,
		Date:     date,
		Unit:     unit,
		Currency: common.DefaultCurrency,
	}
}

// LocalOnly reports whether the entry has no remote identifiers yet.
func (e *Entry) LocalOnly() bool {
	return e.CatalogID == nil && e.RemoteID == nil
}

// Synced reports whether the entry is fully persisted remotely.
func (e *Entry) Synced() bool {
	return e.CatalogID != nil && e.RemoteID != nil
}

// MarkSynced attaches both remote identifiers. Sync is monotonic: once set,
// identifiers are never cleared by the engine.
func (e *Entry) MarkSynced(catalogID, remoteID int64) {
	e.CatalogID = &catalogID
	e.RemoteID = &remoteID
}

// Validate rejects an entry before any remote call is attempted.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name required", common.ErrValidation)
	}
	if !e.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", common.ErrValidation)
	}
	if _, err := time.Parse(common.DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: invalid date %q", common.ErrValidation, e.Date)
	}
	if _, ok := units[e.Unit]; !ok {
		return fmt.Errorf("%w: unknown unit %q", common.ErrValidation, e.Unit)
	}
	return nil
}

// CatalogItem is the server-owned canonical vegetable record, decorated with
// its latest known price.
type CatalogItem struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Unit        string     `json:"unit"`
	LatestPrice *float64   `json:"latest_price,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// PriceRecord is a single server-owned price observation.
type PriceRecord struct {
	ID        int64     `json:"id"`
	CatalogID int64     `json:"vegetable_id"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	Date      time.Time `json:"date"`
	Market    *string   `json:"market,omitempty"`
}
