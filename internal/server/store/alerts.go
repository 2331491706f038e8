package store

import (
	"context"
	"fmt"

	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/server/models"
)

func (s *Postgres) CreateAlert(ctx context.Context, a *models.Alert) (int64, error) {
	query :=
		`INSERT INTO alerts (user_id, vegetable_id, threshold, direction, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		a.UserID, a.VegetableID, a.Threshold, a.Direction, a.Active).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (s *Postgres) ListAlerts(ctx context.Context, userID int64) ([]models.Alert, error) {
	query :=
		`SELECT id, user_id, vegetable_id, threshold, direction, active, created_at, triggered_at
		 FROM alerts
		 WHERE user_id = $1 AND active = true
		 `

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.Alert
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.VegetableID, &a.Threshold, &a.Direction, &a.Active, &a.CreatedAt, &a.TriggeredAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// DeactivateAlert flips the alert inactive. Scoped to the owning user so one
// user cannot touch another's alerts.
func (s *Postgres) DeactivateAlert(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE alerts SET active = false WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
