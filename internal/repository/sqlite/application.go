package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saxansaxo/backend/pkg/models"
)

// Reads join the related job and user so job_title and user_email come back
// denormalized in one query.
const applicationSelect = `SELECT a.id, a.job_id, a.user_id, a.first_name, a.last_name, a.email, a.phone, a.resume, a.cover_letter, a.status, a.applied_date, a.notes, j.title, u.email
FROM job_applications a
JOIN jobs j ON j.id = a.job_id
LEFT JOIN users u ON u.id = a.user_id`

func scanApplication(row interface{ Scan(...any) error }) (*models.JobApplication, error) {
	var a models.JobApplication
	var userID sql.NullInt64
	var userEmail sql.NullString
	if err := row.Scan(&a.ID, &a.JobID, &userID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.Resume, &a.CoverLetter, &a.Status, &a.AppliedDate, &a.Notes, &a.JobTitle, &userEmail); err != nil {
		return nil, err
	}
	if userID.Valid {
		a.UserID = &userID.Int64
	}
	if userEmail.Valid {
		a.UserEmail = &userEmail.String
	}
	return &a, nil
}

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.JobApplication) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO job_applications (job_id, user_id, first_name, last_name, email, phone, resume, cover_letter, status, applied_date, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.JobID, a.UserID, a.FirstName, a.LastName, a.Email, a.Phone, a.Resume, a.CoverLetter, a.Status, now(), a.Notes)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id int64, ownerID *int64) (*models.JobApplication, error) {
	q := applicationSelect + ` WHERE a.id = ?`
	args := []any{id}
	if ownerID != nil {
		q += ` AND a.user_id = ?`
		args = append(args, *ownerID)
	}

	a, err := scanApplication(r.conn.QueryRow(ctx, q, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) ListApplications(ctx context.Context, ownerID *int64) ([]models.JobApplication, error) {
	q := applicationSelect
	var args []any
	if ownerID != nil {
		q += ` WHERE a.user_id = ?`
		args = append(args, *ownerID)
	}
	q += ` ORDER BY a.applied_date DESC, a.id DESC`

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JobApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *a)
	}

	return out, rows.Err()
}

// UpdateApplication writes the applicant-supplied columns. Status and notes
// are only reachable through UpdateApplicationStatus.
func (r *SQLiteRepo) UpdateApplication(ctx context.Context, a *models.JobApplication) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE job_applications SET job_id = ?, first_name = ?, last_name = ?, email = ?, phone = ?, resume = ?, cover_letter = ? WHERE id = ?`,
		a.JobID, a.FirstName, a.LastName, a.Email, a.Phone, a.Resume, a.CoverLetter, a.ID)
	return err
}

func (r *SQLiteRepo) UpdateApplicationStatus(ctx context.Context, id int64, status, notes string) error {
	_, err := r.conn.Exec(ctx, `UPDATE job_applications SET status = ?, notes = ? WHERE id = ?`, status, notes, id)
	return err
}

func (r *SQLiteRepo) DeleteApplication(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM job_applications WHERE id = ?`, id)
	return err
}
