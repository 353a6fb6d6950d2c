package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saxansaxo/backend/pkg/models"
)

const profileColumns = `id, user_id, phone, bio, avatar, resume, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.Phone, &p.Bio, &p.Avatar, &p.Resume, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.UserProfile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO user_profiles (user_id, phone, bio, avatar, resume, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Phone, p.Bio, p.Avatar, p.Resume, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetProfile(ctx context.Context, id int64, ownerID *int64) (*models.UserProfile, error) {
	q := `SELECT ` + profileColumns + ` FROM user_profiles WHERE id = ?`
	args := []any{id}
	if ownerID != nil {
		q += ` AND user_id = ?`
		args = append(args, *ownerID)
	}

	p, err := scanProfile(r.conn.QueryRow(ctx, q, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return p, nil
}

func (r *SQLiteRepo) GetProfileByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	p, err := scanProfile(r.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = ?`, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return p, nil
}

func (r *SQLiteRepo) ListProfiles(ctx context.Context, ownerID *int64) ([]models.UserProfile, error) {
	q := `SELECT ` + profileColumns + ` FROM user_profiles`
	var args []any
	if ownerID != nil {
		q += ` WHERE user_id = ?`
		args = append(args, *ownerID)
	}
	q += ` ORDER BY id`

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *p)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE user_profiles SET phone = ?, bio = ?, avatar = ?, resume = ?, updated_at = ? WHERE id = ?`,
		p.Phone, p.Bio, p.Avatar, p.Resume, now(), p.ID)
	return err
}

func (r *SQLiteRepo) DeleteProfile(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM user_profiles WHERE id = ?`, id)
	return err
}
