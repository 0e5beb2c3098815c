package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/suratpier/nightboat/internal/model"
	"github.com/suratpier/nightboat/internal/utils"
)

// ParcelRepo provides access to the `parcels` table.
type ParcelRepo struct{ DB *sql.DB }

func NewParcelRepo(db *sql.DB) *ParcelRepo { return &ParcelRepo{DB: db} }

const parcelColumns = `p.id, p.sender_name, p.sender_phone, p.receiver_name, p.receiver_phone,
	p.weight, p.price, p.payment_status, p.status, p.deposit_date, p.seller_id, p.created_at`

// List returns parcels newest-created first.  When day is non-nil only
// parcels deposited on that calendar day are returned.
func (r *ParcelRepo) List(ctx context.Context, day *time.Time) ([]model.Parcel, error) {
	q := `SELECT ` + parcelColumns + `, COALESCE(u.name, '')
	      FROM parcels p LEFT JOIN users u ON u.id = p.seller_id`
	args := []interface{}{}
	if day != nil {
		start, end := utils.DayWindow(*day)
		q += " WHERE p.deposit_date >= ? AND p.deposit_date < ?"
		args = append(args, start, end)
	}
	rows, err := r.DB.QueryContext(ctx, q+" ORDER BY p.created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := []model.Parcel{}
	for rows.Next() {
		var p model.Parcel
		if err := rows.Scan(&p.ID, &p.SenderName, &p.SenderPhone, &p.ReceiverName, &p.ReceiverPhone,
			&p.Weight, &p.Price, &p.PaymentStatus, &p.Status, &p.DepositDate, &p.SellerID, &p.CreatedAt,
			&p.SellerName); err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, rows.Err()
}

// GetByID fetches a single parcel.
func (r *ParcelRepo) GetByID(ctx context.Context, id uint64) (model.Parcel, error) {
	var p model.Parcel
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+parcelColumns+` FROM parcels p WHERE p.id=? LIMIT 1`, id).
		Scan(&p.ID, &p.SenderName, &p.SenderPhone, &p.ReceiverName, &p.ReceiverPhone,
			&p.Weight, &p.Price, &p.PaymentStatus, &p.Status, &p.DepositDate, &p.SellerID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Parcel{}, ErrNotFound
	}
	return p, err
}

// Create inserts a parcel.  The caller has already computed the price and
// stamped the seller; on success ID and CreatedAt are populated from the
// stored row.
func (r *ParcelRepo) Create(ctx context.Context, p *model.Parcel) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO parcels (sender_name, sender_phone, receiver_name, receiver_phone,
		 weight, price, payment_status, status, deposit_date, seller_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		p.SenderName, p.SenderPhone, p.ReceiverName, p.ReceiverPhone,
		p.Weight, p.Price, p.PaymentStatus, p.Status, p.DepositDate, p.SellerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	stored, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = stored
	return nil
}

// Update writes the full parcel row.
func (r *ParcelRepo) Update(ctx context.Context, p *model.Parcel) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE parcels SET sender_name=?, sender_phone=?, receiver_name=?, receiver_phone=?,
		 weight=?, price=?, payment_status=?, status=?, deposit_date=? WHERE id=?`,
		p.SenderName, p.SenderPhone, p.ReceiverName, p.ReceiverPhone,
		p.Weight, p.Price, p.PaymentStatus, p.Status, p.DepositDate, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a parcel by id.
func (r *ParcelRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM parcels WHERE id=?", id)
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

// SetDelivered marks the parcel as handed over and returns the updated
// record.  Re-scanning a delivered parcel is a no-op success.
func (r *ParcelRepo) SetDelivered(ctx context.Context, id uint64) (model.Parcel, error) {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE parcels SET status=? WHERE id=?", model.ParcelDelivered, id); err != nil {
		return model.Parcel{}, err
	}
	return r.GetByID(ctx, id)
}
