// Package store implements the PostgreSQL persistence layer. All queries go
// through dbx.DBTX so they run equally inside and outside a transaction.
package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/meherkandukuri/vegtrack/internal/dbx"
	"github.com/meherkandukuri/vegtrack/internal/server/migrations"
	"github.com/meherkandukuri/vegtrack/internal/server/models"
	"github.com/pressly/goose/v3"
)

// Store is the persistence surface the HTTP handlers program against.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateVegetable(ctx context.Context, v *models.Vegetable) (int64, error)
	ListVegetables(ctx context.Context, q string, limit, offset int) ([]models.Vegetable, error)
	GetVegetable(ctx context.Context, id int64) (*models.Vegetable, error)
	UpdateVegetable(ctx context.Context, v *models.Vegetable) error
	DeleteVegetable(ctx context.Context, id int64) error

	InsertPrice(ctx context.Context, p *models.PriceEntry) (int64, error)
	ListPrices(ctx context.Context, vegID int64, from, to *time.Time, limit, offset int) ([]models.PriceEntry, error)
	AggregatePrices(ctx context.Context, vegID int64, from, to *time.Time) (min, max, avg *float64, err error)
	GetPriceEntry(ctx context.Context, id int64) (*models.PriceEntry, error)
	UpdatePriceEntry(ctx context.Context, p *models.PriceEntry) error
	DeletePriceEntry(ctx context.Context, id int64) error

	CreateAlert(ctx context.Context, a *models.Alert) (int64, error)
	ListAlerts(ctx context.Context, userID int64) ([]models.Alert, error)
	DeactivateAlert(ctx context.Context, id, userID int64) error
}

// Postgres implements Store over a dbx.DBTX.
type Postgres struct {
	db dbx.DBTX
}

var _ Store = (*Postgres)(nil)

func NewPostgres(db dbx.DBTX) *Postgres {
	return &Postgres{db: db}
}

// Open connects to PostgreSQL via the pgx stdlib driver and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// gooseUpContext is a seam for testing RunMigrations.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
