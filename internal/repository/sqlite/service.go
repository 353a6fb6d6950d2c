package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saxansaxo/backend/pkg/models"
)

func (r *SQLiteRepo) CreateService(ctx context.Context, s *models.Service) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("service is nil")
	}
	if s.Icon == "" {
		s.Icon = "Code"
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO services (title, description, icon, created_at) VALUES (?, ?, ?, ?)`, s.Title, s.Description, s.Icon, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetService(ctx context.Context, id int64) (*models.Service, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, description, icon, created_at FROM services WHERE id = ?`, id)
	var s models.Service
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}

func (r *SQLiteRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, description, icon, created_at FROM services ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.CreatedAt); err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateService(ctx context.Context, s *models.Service) error {
	if s == nil {
		return fmt.Errorf("service is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE services SET title = ?, description = ?, icon = ? WHERE id = ?`, s.Title, s.Description, s.Icon, s.ID)
	return err
}

func (r *SQLiteRepo) DeleteService(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM services WHERE id = ?`, id)
	return err
}
