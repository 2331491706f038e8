package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/server/models"
)

func (s *Postgres) InsertPrice(ctx context.Context, p *models.PriceEntry) (int64, error) {
	query :=
		`INSERT INTO price_entries (vegetable_id, price, currency, date, market, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		p.VegetableID, p.Price, p.Currency, p.Date, p.Market, p.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// ListPrices returns a vegetable's observations newest first, optionally
// bounded by an inclusive date range.
func (s *Postgres) ListPrices(ctx context.Context, vegID int64, from, to *time.Time, limit, offset int) ([]models.PriceEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query :=
		`SELECT id, vegetable_id, price, currency, date, market, notes, created_at
		 FROM price_entries
		 WHERE vegetable_id = $1`
	args := []any{vegID}
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", len(args)+1)
		args = append(args, *to)
	}
	query += fmt.Sprintf(" ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.PriceEntry
	for rows.Next() {
		var p models.PriceEntry
		if err := rows.Scan(&p.ID, &p.VegetableID, &p.Price, &p.Currency, &p.Date, &p.Market, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// AggregatePrices computes min, max and avg over the same range ListPrices
// covers. All three are nil when the vegetable has no observations.
func (s *Postgres) AggregatePrices(ctx context.Context, vegID int64, from, to *time.Time) (min, max, avg *float64, err error) {
	query := `SELECT MIN(price), MAX(price), AVG(price) FROM price_entries WHERE vegetable_id = $1`
	args := []any{vegID}
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", len(args)+1)
		args = append(args, *to)
	}

	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&min, &max, &avg); err != nil {
		return nil, nil, nil, fmt.Errorf("db error: %w", err)
	}
	return min, max, avg, nil
}

func (s *Postgres) GetPriceEntry(ctx context.Context, id int64) (*models.PriceEntry, error) {
	query :=
		`SELECT id, vegetable_id, price, currency, date, market, notes, created_at
		 FROM price_entries
		 WHERE id = $1
		 `

	p := &models.PriceEntry{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.VegetableID, &p.Price, &p.Currency, &p.Date, &p.Market, &p.Notes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (s *Postgres) UpdatePriceEntry(ctx context.Context, p *models.PriceEntry) error {
	query :=
		`UPDATE price_entries SET price = $1, currency = $2, date = $3, market = $4, notes = $5
		 WHERE id = $6
		 `

	res, err := s.db.ExecContext(ctx, query, p.Price, p.Currency, p.Date, p.Market, p.Notes, p.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeletePriceEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM price_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
