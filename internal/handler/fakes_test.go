package handler

// In-memory store fakes.  They honor the same contracts as the MySQL
// repositories (sentinel errors, seat mutual exclusion by calendar day,
// newest-first ordering) so the handlers can be exercised without a
// database.

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/suratpier/nightboat/internal/model"
	"github.com/suratpier/nightboat/internal/repository"
	"github.com/suratpier/nightboat/internal/utils"
)

// ----- tickets -----

type fakeTicketStore struct {
	nextID  uint64
	tickets map[uint64]model.Ticket
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{tickets: map[uint64]model.Ticket{}}
}

func sameSeat(a, b model.Ticket) bool {
	ay, am, ad := a.TravelDate.Date()
	by, bm, bd := b.TravelDate.Date()
	return ay == by && am == bm && ad == bd &&
		a.Route == b.Route && a.SeatLayout == b.SeatLayout && a.SeatNumber == b.SeatNumber
}

func (s *fakeTicketStore) List(_ context.Context, day *time.Time, sellerID uint64) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for _, t := range s.tickets {
		if day != nil {
			start, end := utils.DayWindow(*day)
			if t.TravelDate.Before(start) || !t.TravelDate.Before(end) {
				continue
			}
		}
		if sellerID != 0 && t.SellerID != sellerID {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeTicketStore) GetByID(_ context.Context, id uint64) (model.Ticket, error) {
	t, ok := s.tickets[id]
	if !ok {
		return model.Ticket{}, repository.ErrNotFound
	}
	return t, nil
}

func (s *fakeTicketStore) Create(_ context.Context, t *model.Ticket) error {
	for _, existing := range s.tickets {
		if sameSeat(existing, *t) {
			return repository.ErrSeatTaken
		}
	}
	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = time.Now()
	s.tickets[t.ID] = *t
	return nil
}

func (s *fakeTicketStore) Update(_ context.Context, t *model.Ticket) error {
	if _, ok := s.tickets[t.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range s.tickets {
		if id != t.ID && sameSeat(existing, *t) {
			return repository.ErrSeatTaken
		}
	}
	s.tickets[t.ID] = *t
	return nil
}

func (s *fakeTicketStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.tickets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tickets, id)
	return nil
}

func (s *fakeTicketStore) SetCheckedIn(_ context.Context, id uint64) (model.Ticket, error) {
	t, ok := s.tickets[id]
	if !ok {
		return model.Ticket{}, repository.ErrNotFound
	}
	t.CheckedIn = true
	s.tickets[id] = t
	return t, nil
}

// ----- parcels -----

type fakeParcelStore struct {
	nextID  uint64
	parcels map[uint64]model.Parcel
}

func newFakeParcelStore() *fakeParcelStore {
	return &fakeParcelStore{parcels: map[uint64]model.Parcel{}}
}

func (s *fakeParcelStore) List(_ context.Context, day *time.Time) ([]model.Parcel, error) {
	out := []model.Parcel{}
	for _, p := range s.parcels {
		if day != nil {
			start, end := utils.DayWindow(*day)
			if p.DepositDate.Before(start) || !p.DepositDate.Before(end) {
				continue
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeParcelStore) GetByID(_ context.Context, id uint64) (model.Parcel, error) {
	p, ok := s.parcels[id]
	if !ok {
		return model.Parcel{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *fakeParcelStore) Create(_ context.Context, p *model.Parcel) error {
	s.nextID++
	p.ID = s.nextID
	p.CreatedAt = time.Now()
	s.parcels[p.ID] = *p
	return nil
}

func (s *fakeParcelStore) Update(_ context.Context, p *model.Parcel) error {
	if _, ok := s.parcels[p.ID]; !ok {
		return repository.ErrNotFound
	}
	s.parcels[p.ID] = *p
	return nil
}

func (s *fakeParcelStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.parcels[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.parcels, id)
	return nil
}

func (s *fakeParcelStore) SetDelivered(_ context.Context, id uint64) (model.Parcel, error) {
	p, ok := s.parcels[id]
	if !ok {
		return model.Parcel{}, repository.ErrNotFound
	}
	p.Status = model.ParcelDelivered
	s.parcels[id] = p
	return p, nil
}

// ----- users -----

type fakeUserStore struct {
	nextID uint64
	byName map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byName: map[string]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, username, password, name, role string, cost int) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if _, ok := s.byName[username]; ok {
		return model.User{}, repository.ErrUsernameExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	s.nextID++
	u := model.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	s.byName[username] = u
	return u, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := s.byName[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range s.byName {
		u.PasswordHash = ""
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ----- maintenance -----

type fakeMaintenanceStore struct {
	nextID  uint64
	records map[uint64]model.MaintenanceRecord
}

func newFakeMaintenanceStore() *fakeMaintenanceStore {
	return &fakeMaintenanceStore{records: map[uint64]model.MaintenanceRecord{}}
}

func (s *fakeMaintenanceStore) List(_ context.Context) ([]model.MaintenanceRecord, error) {
	out := []model.MaintenanceRecord{}
	for _, m := range s.records {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *fakeMaintenanceStore) GetByID(_ context.Context, id uint64) (model.MaintenanceRecord, error) {
	m, ok := s.records[id]
	if !ok {
		return model.MaintenanceRecord{}, repository.ErrNotFound
	}
	return m, nil
}

func (s *fakeMaintenanceStore) Create(_ context.Context, m *model.MaintenanceRecord) error {
	s.nextID++
	m.ID = s.nextID
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	s.records[m.ID] = *m
	return nil
}

func (s *fakeMaintenanceStore) Update(_ context.Context, m *model.MaintenanceRecord) error {
	if _, ok := s.records[m.ID]; !ok {
		return repository.ErrNotFound
	}
	m.UpdatedAt = time.Now()
	s.records[m.ID] = *m
	return nil
}

func (s *fakeMaintenanceStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// ----- dashboard -----

type fakeDashboardStore struct {
	summary repository.DashboardSummary
}

func (s *fakeDashboardStore) Summary(_ context.Context, _, _ time.Time) (*repository.DashboardSummary, error) {
	out := s.summary
	if out.RecentTickets == nil {
		out.RecentTickets = []model.Ticket{}
	}
	if out.RecentParcels == nil {
		out.RecentParcels = []model.Parcel{}
	}
	return &out, nil
}
