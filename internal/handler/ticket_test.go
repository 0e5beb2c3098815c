package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/suratpier/nightboat/internal/model"
	"github.com/suratpier/nightboat/internal/queue"
)

func newTicketHandlerForTest() (*TicketHandler, *fakeTicketStore) {
	store := newFakeTicketStore()
	h := NewTicketHandler(store)
	h.PublishCheckIn = func(context.Context, queue.TicketCheckedInEvent) error { return nil }
	return h, store
}

func travelDate(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return d
}

func baseTicket(seat string, sellerID uint64) model.Ticket {
	return model.Ticket{
		PassengerName: "Somchai Jaidee",
		Phone:         "081-234-5678",
		Route:         model.RouteSuratToKohtao,
		SeatNumber:    seat,
		SeatLayout:    model.Layout50,
		Price:         500,
		TravelDate:    travelDate("2024-06-01"),
		SellerID:      sellerID,
	}
}

func TestCreateTicketSeatTaken(t *testing.T) {
	h, store := newTicketHandlerForTest()
	seedTicket(t, store, baseTicket("A1", 1))

	body := `{"passengerName":"Pranee","phone":"081-000-0000","route":"SURAT_TO_KOHTAO",
		"seatNumber":"A1","seatLayout":"LAYOUT_50","price":500,"travelDate":"2024-06-01"}`
	c, rec := newTestContext(http.MethodPost, "/api/tickets", body)
	asActor(c, 2, model.RoleStaff)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "seat already taken")
	require.Len(t, store.tickets, 1) // no write on conflict
}

func TestCreateTicketDifferentSeatSucceeds(t *testing.T) {
	h, store := newTicketHandlerForTest()
	seedTicket(t, store, baseTicket("A1", 1))

	body := `{"passengerName":"Pranee","route":"SURAT_TO_KOHTAO","seatNumber":"A2",
		"seatLayout":"LAYOUT_50","price":500,"travelDate":"2024-06-01"}`
	c, rec := newTestContext(http.MethodPost, "/api/tickets", body)
	asActor(c, 2, model.RoleStaff)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Ticket
	decodeBody(t, rec, &got)
	require.Equal(t, "A2", got.SeatNumber)
	require.EqualValues(t, 2, got.SellerID) // stamped from the actor, not the body
	require.False(t, got.CheckedIn)
	require.Len(t, store.tickets, 2)
}

func TestCreateTicketValidation(t *testing.T) {
	h, _ := newTicketHandlerForTest()
	for name, body := range map[string]string{
		"missing passenger": `{"route":"SURAT_TO_KOHTAO","seatNumber":"A1","seatLayout":"LAYOUT_50","price":500,"travelDate":"2024-06-01"}`,
		"bad route":         `{"passengerName":"P","route":"NOWHERE","seatNumber":"A1","seatLayout":"LAYOUT_50","price":500,"travelDate":"2024-06-01"}`,
		"bad layout":        `{"passengerName":"P","route":"SURAT_TO_KOHTAO","seatNumber":"A1","seatLayout":"LAYOUT_99","price":500,"travelDate":"2024-06-01"}`,
		"zero price":        `{"passengerName":"P","route":"SURAT_TO_KOHTAO","seatNumber":"A1","seatLayout":"LAYOUT_50","price":0,"travelDate":"2024-06-01"}`,
		"bad date":          `{"passengerName":"P","route":"SURAT_TO_KOHTAO","seatNumber":"A1","seatLayout":"LAYOUT_50","price":500,"travelDate":"junk"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/tickets", body)
			asActor(c, 1, model.RoleStaff)
			require.NoError(t, h.Create(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListWithoutIdentityIsUnauthorized(t *testing.T) {
	h, _ := newTicketHandlerForTest()

	// No user_id in the context: the request never passed the JWT
	// middleware.
	c, rec := newTestContext(http.MethodGet, "/api/tickets", "")

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTicketTimestampStoredAsDayBoundary(t *testing.T) {
	h, store := newTicketHandlerForTest()

	// A timestamped travelDate must land on midnight: the seat key is a
	// whole day, and a 15:00 row would dodge the uniqueness constraint a
	// midnight row sits under.
	body := `{"passengerName":"Pranee","route":"SURAT_TO_KOHTAO","seatNumber":"B4",
		"seatLayout":"LAYOUT_50","price":500,"travelDate":"2024-06-01T15:00:00Z"}`
	c, rec := newTestContext(http.MethodPost, "/api/tickets", body)
	asActor(c, 2, model.RoleStaff)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Ticket
	decodeBody(t, rec, &got)
	require.True(t, got.TravelDate.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
	stored := store.tickets[got.ID]
	require.Equal(t, 0, stored.TravelDate.Hour())
	require.Equal(t, 0, stored.TravelDate.Minute())
}

func TestUpdateTicketTimestampStoredAsDayBoundary(t *testing.T) {
	h, store := newTicketHandlerForTest()
	tk := seedTicket(t, store, baseTicket("A1", 1))

	c, rec := newTestContext(http.MethodPut, "/", `{"travelDate":"2024-06-02T18:30:00Z"}`)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(tk.ID))
	asActor(c, 1, model.RoleStaff)

	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, store.tickets[tk.ID].TravelDate.Equal(time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)))
}

func TestAgentListSeesOnlyOwnTickets(t *testing.T) {
	h, store := newTicketHandlerForTest()
	seedTicket(t, store, baseTicket("A1", 1))
	own := baseTicket("A2", 7)
	own.PassengerName = "Agent Sale"
	seedTicket(t, store, own)

	c, rec := newTestContext(http.MethodGet, "/api/tickets", "")
	asActor(c, 7, model.RoleAgent)

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Ticket
	decodeBody(t, rec, &got)
	require.Len(t, got, 1)
	for _, tk := range got {
		require.EqualValues(t, 7, tk.SellerID)
	}
}

func TestStaffListSeesAllTickets(t *testing.T) {
	h, store := newTicketHandlerForTest()
	seedTicket(t, store, baseTicket("A1", 1))
	seedTicket(t, store, baseTicket("A2", 7))

	c, rec := newTestContext(http.MethodGet, "/api/tickets", "")
	asActor(c, 3, model.RoleStaff)

	require.NoError(t, h.List(c))
	var got []model.Ticket
	decodeBody(t, rec, &got)
	require.Len(t, got, 2)
}

func TestListTicketsDateFilter(t *testing.T) {
	h, store := newTicketHandlerForTest()
	seedTicket(t, store, baseTicket("A1", 1))
	other := baseTicket("A1", 1)
	other.TravelDate = travelDate("2024-06-02")
	seedTicket(t, store, other)

	c, rec := newTestContext(http.MethodGet, "/api/tickets?date=2024-06-01", "")
	asActor(c, 1, model.RoleStaff)

	require.NoError(t, h.List(c))
	var got []model.Ticket
	decodeBody(t, rec, &got)
	require.Len(t, got, 1)
}

func TestAgentCannotUpdateForeignTicket(t *testing.T) {
	h, store := newTicketHandlerForTest()
	tk := seedTicket(t, store, baseTicket("A1", 1))

	c, rec := newTestContext(http.MethodPut, "/", `{"passengerName":"Hijack"}`)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(tk.ID))
	asActor(c, 7, model.RoleAgent)

	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Somchai Jaidee", store.tickets[tk.ID].PassengerName)
}

func TestAgentUpdatesOwnTicket(t *testing.T) {
	h, store := newTicketHandlerForTest()
	tk := seedTicket(t, store, baseTicket("A1", 7))

	c, rec := newTestContext(http.MethodPut, "/", `{"phone":"089-999-9999"}`)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(tk.ID))
	asActor(c, 7, model.RoleAgent)

	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "089-999-9999", store.tickets[tk.ID].Phone)
	require.Equal(t, "Somchai Jaidee", store.tickets[tk.ID].PassengerName) // untouched fields survive
}

func TestUpdateOntoOccupiedSeatConflicts(t *testing.T) {
	h, store := newTicketHandlerForTest()
	seedTicket(t, store, baseTicket("A1", 1))
	tk := seedTicket(t, store, baseTicket("A2", 1))

	c, rec := newTestContext(http.MethodPut, "/", `{"seatNumber":"A1"}`)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(tk.ID))
	asActor(c, 1, model.RoleStaff)

	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "A2", store.tickets[tk.ID].SeatNumber)
}

func TestAgentCannotDeleteTicket(t *testing.T) {
	h, store := newTicketHandlerForTest()
	tk := seedTicket(t, store, baseTicket("A1", 7)) // agent's own sale

	c, rec := newTestContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(tk.ID))
	asActor(c, 7, model.RoleAgent)

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, store.tickets, tk.ID) // still retrievable
}

func TestStaffDeletesTicket(t *testing.T) {
	h, store := newTicketHandlerForTest()
	tk := seedTicket(t, store, baseTicket("A1", 7))

	c, rec := newTestContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(tk.ID))
	asActor(c, 3, model.RoleStaff)

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, store.tickets, tk.ID)
}

func TestDeleteMissingTicket(t *testing.T) {
	h, _ := newTicketHandlerForTest()

	c, rec := newTestContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	asActor(c, 3, model.RoleStaff)

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckInIsIdempotentAndPublishes(t *testing.T) {
	h, store := newTicketHandlerForTest()
	var published []queue.TicketCheckedInEvent
	h.PublishCheckIn = func(_ context.Context, ev queue.TicketCheckedInEvent) error {
		published = append(published, ev)
		return nil
	}
	tk := seedTicket(t, store, baseTicket("A1", 1))

	for i := 0; i < 2; i++ {
		c, rec := newTestContext(http.MethodPost, "/", "")
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(tk.ID))
		asActor(c, 1, model.RoleStaff)

		require.NoError(t, h.CheckIn(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var got model.Ticket
		decodeBody(t, rec, &got)
		require.True(t, got.CheckedIn)
	}
	require.Len(t, published, 2)
	require.Equal(t, "A1", published[0].SeatNumber)
}
