package repository

import (
	"context"
	"database/sql"

	"github.com/suratpier/nightboat/internal/model"
)

// MaintenanceRepo provides access to the `maintenances` table.
type MaintenanceRepo struct{ DB *sql.DB }

func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo { return &MaintenanceRepo{DB: db} }

const maintenanceColumns = `id, date, details, image_url, status, repair_date, technician, created_at, updated_at`

func scanMaintenance(row interface{ Scan(...interface{}) error }) (model.MaintenanceRecord, error) {
	var m model.MaintenanceRecord
	var imageURL, technician sql.NullString
	var repairDate sql.NullTime
	err := row.Scan(&m.ID, &m.Date, &m.Details, &imageURL, &m.Status,
		&repairDate, &technician, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.MaintenanceRecord{}, err
	}
	if imageURL.Valid {
		m.ImageURL = &imageURL.String
	}
	if repairDate.Valid {
		t := repairDate.Time
		m.RepairDate = &t
	}
	if technician.Valid {
		m.Technician = &technician.String
	}
	return m, nil
}

// List returns all maintenance records ordered by observation date, newest
// first.
func (r *MaintenanceRepo) List(ctx context.Context) ([]model.MaintenanceRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenances ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.MaintenanceRecord{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// GetByID fetches a single maintenance record.
func (r *MaintenanceRepo) GetByID(ctx context.Context, id uint64) (model.MaintenanceRecord, error) {
	m, err := scanMaintenance(r.DB.QueryRowContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenances WHERE id=? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.MaintenanceRecord{}, ErrNotFound
	}
	return m, err
}

// Create inserts a maintenance record and returns the stored row.
func (r *MaintenanceRepo) Create(ctx context.Context, m *model.MaintenanceRecord) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO maintenances (date, details, image_url, status, repair_date, technician)
		 VALUES (?,?,?,?,?,?)`,
		m.Date, m.Details, m.ImageURL, m.Status, m.RepairDate, m.Technician)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*m = stored
	return nil
}

// Update writes the full record.  Nil pointer fields store NULL, which is
// how an explicit null in a patch clears an optional column.
func (r *MaintenanceRepo) Update(ctx context.Context, m *model.MaintenanceRecord) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE maintenances SET date=?, details=?, image_url=?, status=?, repair_date=?, technician=?
		 WHERE id=?`,
		m.Date, m.Details, m.ImageURL, m.Status, m.RepairDate, m.Technician, m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, m.ID); err != nil {
			return err
		}
	}
	stored, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = stored
	return nil
}

// Delete removes a maintenance record by id.
func (r *MaintenanceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM maintenances WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
