package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saxansaxo/backend/pkg/models"
)

const jobColumns = `id, title, department, location, job_type, description, requirements, responsibilities, salary_range, is_active, posted_date, application_deadline`

func scanJob(row interface{ Scan(...any) error }) (*models.Job, error) {
	var j models.Job
	var deadline sql.NullString
	if err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.JobType, &j.Description, &j.Requirements, &j.Responsibilities, &j.SalaryRange, &j.IsActive, &j.PostedDate, &deadline); err != nil {
		return nil, err
	}
	if deadline.Valid {
		j.ApplicationDeadline = &deadline.String
	}
	return &j, nil
}

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}
	if j.JobType == "" {
		j.JobType = models.JobTypeFullTime
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO jobs (title, department, location, job_type, description, requirements, responsibilities, salary_range, is_active, posted_date, application_deadline) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.Title, j.Department, j.Location, j.JobType, j.Description, j.Requirements, j.Responsibilities, j.SalaryRange, j.IsActive, now(), j.ApplicationDeadline)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id int64, activeOnly bool) (*models.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	if activeOnly {
		q += ` AND is_active = 1`
	}

	j, err := scanJob(r.conn.QueryRow(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

func (r *SQLiteRepo) ListJobs(ctx context.Context, activeOnly bool) ([]models.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY posted_date DESC, id DESC`

	rows, err := r.conn.QueryRows(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *j)
	}

	return out, rows.Err()
}

// UpdateJob writes every mutable column; posted_date is fixed at creation.
func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE jobs SET title = ?, department = ?, location = ?, job_type = ?, description = ?, requirements = ?, responsibilities = ?, salary_range = ?, is_active = ?, application_deadline = ? WHERE id = ?`,
		j.Title, j.Department, j.Location, j.JobType, j.Description, j.Requirements, j.Responsibilities, j.SalaryRange, j.IsActive, j.ApplicationDeadline, j.ID)
	return err
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) CountApplicationsByJob(ctx context.Context, jobID int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications WHERE job_id = ?`, jobID)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}
