// Package models holds the server-side domain records and their validation
// rules. JSON tags define the public API shape; the client mirrors them.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/common"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Vegetable is the canonical catalog record. LatestPrice and LastUpdated are
// filled by the listing query, not stored.
type Vegetable struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Unit        string     `json:"unit"`
	Category    *string    `json:"category,omitempty"`
	LatestPrice *float64   `json:"latest_price,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PriceEntry struct {
	ID          int64     `json:"id"`
	VegetableID int64     `json:"vegetable_id"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
	Market      *string   `json:"market,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AlertDirection string

const (
	AlertAbove AlertDirection = "above"
	AlertBelow AlertDirection = "below"
)

// Alert asks to be notified when a vegetable's price crosses a threshold.
type Alert struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	VegetableID int64          `json:"vegetable_id"`
	Threshold   float64        `json:"threshold"`
	Direction   AlertDirection `json:"direction"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	TriggeredAt *time.Time     `json:"triggered_at,omitempty"`
}

func ValidateEmail(e string) error {
	if !strings.Contains(e, "@") || len(e) < 6 {
		return fmt.Errorf("%w: invalid email", common.ErrValidation)
	}
	return nil
}

func ValidatePassword(p string) error {
	if len(p) < 8 {
		return fmt.Errorf("%w: password too short", common.ErrValidation)
	}
	return nil
}

func (v *Vegetable) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name required", common.ErrValidation)
	}
	if v.Unit == "" {
		return fmt.Errorf("%w: unit required", common.ErrValidation)
	}
	return nil
}

func (p *PriceEntry) Validate() error {
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", common.ErrValidation)
	}
	if p.Currency == "" {
		return fmt.Errorf("%w: currency required", common.ErrValidation)
	}
	return nil
}

func (a *Alert) Validate() error {
	if a.Threshold <= 0 {
		return fmt.Errorf("%w: threshold must be positive", common.ErrValidation)
	}
	if a.Direction != AlertAbove && a.Direction != AlertBelow {
		return fmt.Errorf("%w: direction must be above or below", common.ErrValidation)
	}
	return nil
}
