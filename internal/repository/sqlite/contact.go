package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saxansaxo/backend/pkg/models"
)

func (r *SQLiteRepo) CreateContactMessage(ctx context.Context, m *models.ContactMessage) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("contact message is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO contact_messages (name, email, message, created_at) VALUES (?, ?, ?, ?)`, m.Name, m.Email, m.Message, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetContactMessage(ctx context.Context, id int64) (*models.ContactMessage, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, message, created_at FROM contact_messages WHERE id = ?`, id)
	var m models.ContactMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &m, nil
}

func (r *SQLiteRepo) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, email, message, created_at FROM contact_messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateContactMessage(ctx context.Context, m *models.ContactMessage) error {
	if m == nil {
		return fmt.Errorf("contact message is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE contact_messages SET name = ?, email = ?, message = ? WHERE id = ?`, m.Name, m.Email, m.Message, m.ID)
	return err
}

func (r *SQLiteRepo) DeleteContactMessage(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	return err
}
