package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saxansaxo/backend/pkg/models"
)

const teamMemberColumns = `id, name, position, bio, email, linkedin, twitter, github, image, is_active, sort_order, created_at`

func scanTeamMember(row interface{ Scan(...any) error }) (*models.TeamMember, error) {
	var m models.TeamMember
	if err := row.Scan(&m.ID, &m.Name, &m.Position, &m.Bio, &m.Email, &m.LinkedIn, &m.Twitter, &m.GitHub, &m.Image, &m.IsActive, &m.Order, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *SQLiteRepo) CreateTeamMember(ctx context.Context, m *models.TeamMember) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("team member is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO team_members (name, position, bio, email, linkedin, twitter, github, image, is_active, sort_order, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Name, m.Position, m.Bio, m.Email, m.LinkedIn, m.Twitter, m.GitHub, m.Image, m.IsActive, m.Order, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetTeamMember(ctx context.Context, id int64, activeOnly bool) (*models.TeamMember, error) {
	q := `SELECT ` + teamMemberColumns + ` FROM team_members WHERE id = ?`
	if activeOnly {
		q += ` AND is_active = 1`
	}

	m, err := scanTeamMember(r.conn.QueryRow(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return m, nil
}

func (r *SQLiteRepo) ListTeamMembers(ctx context.Context, activeOnly bool) ([]models.TeamMember, error) {
	q := `SELECT ` + teamMemberColumns + ` FROM team_members`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY sort_order, name`

	rows, err := r.conn.QueryRows(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *m)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateTeamMember(ctx context.Context, m *models.TeamMember) error {
	if m == nil {
		return fmt.Errorf("team member is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE team_members SET name = ?, position = ?, bio = ?, email = ?, linkedin = ?, twitter = ?, github = ?, image = ?, is_active = ?, sort_order = ? WHERE id = ?`,
		m.Name, m.Position, m.Bio, m.Email, m.LinkedIn, m.Twitter, m.GitHub, m.Image, m.IsActive, m.Order, m.ID)
	return err
}

func (r *SQLiteRepo) DeleteTeamMember(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	return err
}
