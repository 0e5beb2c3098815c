package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/suratpier/nightboat/internal/model"
	"github.com/suratpier/nightboat/internal/utils"
)

// TicketRepo provides access to the `tickets` table.  Seat mutual exclusion
// is enforced twice: an availability check before every write gives the
// common case a clean ErrSeatTaken, and the uq_seat unique key catches the
// race when two writes for the same seat pass the check concurrently.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

const ticketColumns = `t.id, t.passenger_name, t.phone, t.route, t.seat_number,
	t.seat_layout, t.price, t.travel_date, t.checked_in, t.seller_id, t.created_at`

// List returns tickets newest-created first.  When day is non-nil only
// tickets whose travel_date falls on that calendar day are returned.  When
// sellerID is non-zero the result is restricted to that seller; the handler
// passes the actor's id for agents.
func (r *TicketRepo) List(ctx context.Context, day *time.Time, sellerID uint64) ([]model.Ticket, error) {
	q := `SELECT ` + ticketColumns + `, COALESCE(u.name, '')
	      FROM tickets t LEFT JOIN users u ON u.id = t.seller_id`
	args := []interface{}{}
	where := ""
	if day != nil {
		start, end := utils.DayWindow(*day)
		where = " WHERE t.travel_date >= ? AND t.travel_date < ?"
		args = append(args, start, end)
	}
	if sellerID != 0 {
		if where == "" {
			where = " WHERE t.seller_id = ?"
		} else {
			where += " AND t.seller_id = ?"
		}
		args = append(args, sellerID)
	}
	rows, err := r.DB.QueryContext(ctx, q+where+" ORDER BY t.created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []model.Ticket{}
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.PassengerName, &t.Phone, &t.Route, &t.SeatNumber,
			&t.SeatLayout, &t.Price, &t.TravelDate, &t.CheckedIn, &t.SellerID, &t.CreatedAt,
			&t.SellerName); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// GetByID fetches a single ticket.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (model.Ticket, error) {
	var t model.Ticket
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets t WHERE t.id=? LIMIT 1`, id).
		Scan(&t.ID, &t.PassengerName, &t.Phone, &t.Route, &t.SeatNumber,
			&t.SeatLayout, &t.Price, &t.TravelDate, &t.CheckedIn, &t.SellerID, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Ticket{}, ErrNotFound
	}
	return t, err
}

// seatTaken reports whether any ticket other than excludeID occupies the
// given seat slot.  The travel date is compared by calendar day.
func (r *TicketRepo) seatTaken(ctx context.Context, key model.SeatKey, excludeID uint64) (bool, error) {
	start, end := utils.DayWindow(key.TravelDate)
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT id FROM tickets
		 WHERE travel_date >= ? AND travel_date < ? AND route=? AND seat_layout=? AND seat_number=? AND id<>?
		 LIMIT 1`,
		start, end, key.Route, key.SeatLayout, key.SeatNumber, excludeID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a ticket after verifying the seat is free.  On success the
// record's ID and CreatedAt are populated from the stored row.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	// uq_seat keys on the raw travel_date column, so the invariant of one
	// row per seat per day only holds when every write lands on the day
	// boundary.
	t.TravelDate = utils.Day(t.TravelDate)
	taken, err := r.seatTaken(ctx, model.SeatKeyOf(*t), 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrSeatTaken
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO tickets (passenger_name, phone, route, seat_number, seat_layout, price, travel_date, seller_id)
		 VALUES (?,?,?,?,?,?,?,?)`,
		t.PassengerName, t.Phone, t.Route, t.SeatNumber, t.SeatLayout, t.Price, t.TravelDate, t.SellerID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	// Read back to pick up the database-assigned created_at.
	stored, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = stored
	return nil
}

// Update writes the full ticket row.  The seat availability check re-runs
// here too, excluding the ticket itself, so moving a ticket onto an occupied
// seat fails the same way a double sale does.
func (r *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	t.TravelDate = utils.Day(t.TravelDate)
	taken, err := r.seatTaken(ctx, model.SeatKeyOf(*t), t.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSeatTaken
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE tickets SET passenger_name=?, phone=?, route=?, seat_number=?, seat_layout=?,
		 price=?, travel_date=?, checked_in=? WHERE id=?`,
		t.PassengerName, t.Phone, t.Route, t.SeatNumber, t.SeatLayout,
		t.Price, t.TravelDate, t.CheckedIn, t.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSeatTaken
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero affected rows may mean a no-op write; confirm existence.
		if _, err := r.GetByID(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a ticket by id.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tickets WHERE id=?", id)
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

// SetCheckedIn marks the passenger as boarded and returns the updated
// ticket.  Re-checking an already boarded ticket is a no-op success.
func (r *TicketRepo) SetCheckedIn(ctx context.Context, id uint64) (model.Ticket, error) {
	if _, err := r.DB.ExecContext(ctx, "UPDATE tickets SET checked_in=1 WHERE id=?", id); err != nil {
		return model.Ticket{}, err
	}
	return r.GetByID(ctx, id)
}
