package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/server/models"
)

func (s *Postgres) CreateVegetable(ctx context.Context, v *models.Vegetable) (int64, error) {
	query :=
		`INSERT INTO vegetables (name, unit, category)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id int64
	if err := s.db.QueryRowContext(ctx, query, v.Name, v.Unit, v.Category).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// ListVegetables returns catalog rows decorated with each vegetable's latest
// price, newest observation winning ties by id. An empty q lists everything.
func (s *Postgres) ListVegetables(ctx context.Context, q string, limit, offset int) ([]models.Vegetable, error) {
	if limit <= 0 {
		limit = 20
	}

	query :=
		`SELECT v.id, v.name, v.unit, v.category, v.created_at, lp.price, lp.created_at
		 FROM vegetables v
		 LEFT JOIN LATERAL (
		     SELECT price, created_at FROM price_entries p
		     WHERE p.vegetable_id = v.id
		     ORDER BY date DESC, id DESC
		     LIMIT 1
		 ) lp ON true
		 `
	args := []any{}
	if q != "" {
		query += ` WHERE v.name ILIKE $1`
		args = append(args, "%"+q+"%")
	}
	query += fmt.Sprintf(" ORDER BY v.name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.Vegetable
	for rows.Next() {
		var v models.Vegetable
		if err := rows.Scan(&v.ID, &v.Name, &v.Unit, &v.Category, &v.CreatedAt, &v.LatestPrice, &v.LastUpdated); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (s *Postgres) GetVegetable(ctx context.Context, id int64) (*models.Vegetable, error) {
	query :=
		`SELECT id, name, unit, category, created_at FROM vegetables
		 WHERE id = $1
		 `

	v := &models.Vegetable{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Name, &v.Unit, &v.Category, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (s *Postgres) UpdateVegetable(ctx context.Context, v *models.Vegetable) error {
	query :=
		`UPDATE vegetables SET name = $1, unit = $2, category = $3
		 WHERE id = $4
		 `

	res, err := s.db.ExecContext(ctx, query, v.Name, v.Unit, v.Category, v.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteVegetable(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vegetables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
