package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/suratpier/nightboat/internal/model"
)

// DashboardRepo computes the same-day aggregates shown on the counter
// dashboard.  All queries are read-only.
type DashboardRepo struct{ DB *sql.DB }

func NewDashboardRepo(db *sql.DB) *DashboardRepo { return &DashboardRepo{DB: db} }

// DashboardSummary is the payload of GET /api/dashboard.  Tickets count by
// sale time (created_at), parcels by deposit date; the waiting count is
// global and unfiltered by date.
type DashboardSummary struct {
	TicketsSoldToday      int            `json:"ticketsSoldToday"`
	ParcelsDepositedToday int            `json:"parcelsDepositedToday"`
	TotalRevenueToday     float64        `json:"totalRevenueToday"`
	ParcelsWaitingCount   int            `json:"parcelsWaitingCount"`
	RecentTickets         []model.Ticket `json:"recentTickets"`
	RecentParcels         []model.Parcel `json:"recentParcels"`
}

// Summary aggregates counts, revenue and the five most recent records for
// the window [start, end).  An empty ledger yields zero counts and empty
// lists.
func (r *DashboardRepo) Summary(ctx context.Context, start, end time.Time) (*DashboardSummary, error) {
	s := &DashboardSummary{
		RecentTickets: []model.Ticket{},
		RecentParcels: []model.Parcel{},
	}

	var ticketRevenue, parcelRevenue float64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(price), 0) FROM tickets WHERE created_at >= ? AND created_at < ?`,
		start, end).Scan(&s.TicketsSoldToday, &ticketRevenue)
	if err != nil {
		return nil, err
	}
	err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(price), 0) FROM parcels WHERE deposit_date >= ? AND deposit_date < ?`,
		start, end).Scan(&s.ParcelsDepositedToday, &parcelRevenue)
	if err != nil {
		return nil, err
	}
	s.TotalRevenueToday = ticketRevenue + parcelRevenue

	err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parcels WHERE status = ?`, model.ParcelWaiting).
		Scan(&s.ParcelsWaitingCount)
	if err != nil {
		return nil, err
	}

	if err := r.recentTickets(ctx, start, end, s); err != nil {
		return nil, err
	}
	if err := r.recentParcels(ctx, start, end, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *DashboardRepo) recentTickets(ctx context.Context, start, end time.Time, s *DashboardSummary) error {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+ticketColumns+`, COALESCE(u.name, '')
		 FROM tickets t LEFT JOIN users u ON u.id = t.seller_id
		 WHERE t.created_at >= ? AND t.created_at < ?
		 ORDER BY t.created_at DESC LIMIT 5`, start, end)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.PassengerName, &t.Phone, &t.Route, &t.SeatNumber,
			&t.SeatLayout, &t.Price, &t.TravelDate, &t.CheckedIn, &t.SellerID, &t.CreatedAt,
			&t.SellerName); err != nil {
			return err
		}
		s.RecentTickets = append(s.RecentTickets, t)
	}
	return rows.Err()
}

func (r *DashboardRepo) recentParcels(ctx context.Context, start, end time.Time, s *DashboardSummary) error {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+parcelColumns+`, COALESCE(u.name, '')
		 FROM parcels p LEFT JOIN users u ON u.id = p.seller_id
		 WHERE p.deposit_date >= ? AND p.deposit_date < ?
		 ORDER BY p.created_at DESC LIMIT 5`, start, end)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p model.Parcel
		if err := rows.Scan(&p.ID, &p.SenderName, &p.SenderPhone, &p.ReceiverName, &p.ReceiverPhone,
			&p.Weight, &p.Price, &p.PaymentStatus, &p.Status, &p.DepositDate, &p.SellerID, &p.CreatedAt,
			&p.SellerName); err != nil {
			return err
		}
		s.RecentParcels = append(s.RecentParcels, p)
	}
	return rows.Err()
}
