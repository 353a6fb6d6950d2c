package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saxansaxo/backend/pkg/models"
)

const companyColumns = `id, name, email, phone, address, about, mission, vision, logo, updated_at`

func scanCompanyInfo(row interface{ Scan(...any) error }) (*models.CompanyInfo, error) {
	var c models.CompanyInfo
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.About, &c.Mission, &c.Vision, &c.Logo, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreateCompanyInfo returns the singleton row, inserting the default
// row on first access. The fixed-id insert is a no-op when the row already
// exists, so two concurrent first reads cannot create two rows.
func (r *SQLiteRepo) GetOrCreateCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	if _, err := r.conn.Exec(ctx, `INSERT INTO company_info (id, updated_at) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`, models.CompanyInfoID, now()); err != nil {
		return nil, fmt.Errorf("materialize company info: %w", err)
	}

	c, err := scanCompanyInfo(r.conn.QueryRow(ctx, `SELECT `+companyColumns+` FROM company_info WHERE id = ?`, models.CompanyInfoID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company info row missing after materialize")
		}

		return nil, err
	}

	return c, nil
}

// SaveCompanyInfo writes the singleton row. Whatever id the caller carries,
// the write lands on the fixed singleton id.
func (r *SQLiteRepo) SaveCompanyInfo(ctx context.Context, c *models.CompanyInfo) error {
	if c == nil {
		return fmt.Errorf("company info is nil")
	}
	c.ID = models.CompanyInfoID

	_, err := r.conn.Exec(ctx, `INSERT INTO company_info (id, name, email, phone, address, about, mission, vision, logo, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email, phone = excluded.phone, address = excluded.address, about = excluded.about, mission = excluded.mission, vision = excluded.vision, logo = excluded.logo, updated_at = excluded.updated_at`,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.About, c.Mission, c.Vision, c.Logo, now())
	return err
}
