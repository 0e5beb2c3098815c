package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/suratpier/nightboat/internal/access"
	"github.com/suratpier/nightboat/internal/model"
	"github.com/suratpier/nightboat/internal/queue"
	"github.com/suratpier/nightboat/internal/service"
	"github.com/suratpier/nightboat/internal/utils"
)

// TicketStore is the slice of the ticket repository the handler needs.
// *repository.TicketRepo satisfies it.
type TicketStore interface {
	List(ctx context.Context, day *time.Time, sellerID uint64) ([]model.Ticket, error)
	GetByID(ctx context.Context, id uint64) (model.Ticket, error)
	Create(ctx context.Context, t *model.Ticket) error
	Update(ctx context.Context, t *model.Ticket) error
	Delete(ctx context.Context, id uint64) error
	SetCheckedIn(ctx context.Context, id uint64) (model.Ticket, error)
}

// TicketHandler implements the seat-ticket ledger endpoints.  PublishCheckIn
// is swappable so tests do not need a broker.
type TicketHandler struct {
	Store          TicketStore
	PublishCheckIn func(ctx context.Context, ev queue.TicketCheckedInEvent) error
}

func NewTicketHandler(store TicketStore) *TicketHandler {
	if store == nil {
		panic("nil store passed to NewTicketHandler")
	}
	return &TicketHandler{Store: store, PublishCheckIn: service.PublishTicketCheckedIn}
}

// ----- DTOs -----

type createTicketReq struct {
	PassengerName string  `json:"passengerName"`
	Phone         string  `json:"phone"`
	Route         string  `json:"route"`
	SeatNumber    string  `json:"seatNumber"`
	SeatLayout    string  `json:"seatLayout"`
	Price         float64 `json:"price"`
	TravelDate    string  `json:"travelDate"`
}

type updateTicketReq struct {
	PassengerName *string  `json:"passengerName"`
	Phone         *string  `json:"phone"`
	Route         *string  `json:"route"`
	SeatNumber    *string  `json:"seatNumber"`
	SeatLayout    *string  `json:"seatLayout"`
	Price         *float64 `json:"price"`
	TravelDate    *string  `json:"travelDate"`
	CheckedIn     *bool    `json:"checkedIn"`
}

// List handles GET /api/tickets?date=YYYY-MM-DD.  Agents only ever see their
// own sales; the policy table supplies that scope.
func (h *TicketHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.TicketList, actor.Role) {
		return forbidden(c)
	}

	var day *time.Time
	if ds := c.QueryParam("date"); ds != "" {
		d, err := utils.ParseDay(ds)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
		day = &d
	}
	var sellerID uint64
	if access.OwnOnly(access.TicketList, actor.Role) {
		sellerID = actor.ID
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	tickets, err := h.Store.List(ctx, day, sellerID)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// Create handles POST /api/tickets.  The seat slot is checked against the
// inventory inside the store; a taken seat answers 409 and writes nothing.
func (h *TicketHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.TicketCreate, actor.Role) {
		return forbidden(c)
	}

	var req createTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PassengerName = strings.TrimSpace(req.PassengerName)
	req.SeatNumber = strings.ToUpper(strings.TrimSpace(req.SeatNumber))
	if req.PassengerName == "" || req.SeatNumber == "" || req.TravelDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passengerName/seatNumber/travelDate required"})
	}
	if !model.ValidRoute(req.Route) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid route"})
	}
	if !model.ValidLayout(req.SeatLayout) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat layout"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
	}
	travelDate, err := utils.ParseDateTime(req.TravelDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid travelDate"})
	}

	t := model.Ticket{
		PassengerName: req.PassengerName,
		Phone:         strings.TrimSpace(req.Phone),
		Route:         req.Route,
		SeatNumber:    req.SeatNumber,
		SeatLayout:    req.SeatLayout,
		Price:         req.Price,
		// A seat is sold for a crossing day, not an instant: stored at the
		// day boundary so the uq_seat key holds one row per seat per day.
		TravelDate: utils.Day(travelDate),
		SellerID:   actor.ID,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Create(ctx, &t); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// Update handles PUT /api/tickets/:id.  Agents may only touch their own
// tickets.  Changing any seat-key field re-runs the availability check.
func (h *TicketHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.TicketUpdate, actor.Role) {
		return forbidden(c)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	var req updateTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	t, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}
	if access.OwnOnly(access.TicketUpdate, actor.Role) && t.SellerID != actor.ID {
		return forbidden(c)
	}

	if req.PassengerName != nil {
		t.PassengerName = strings.TrimSpace(*req.PassengerName)
	}
	if req.Phone != nil {
		t.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Route != nil {
		if !model.ValidRoute(*req.Route) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid route"})
		}
		t.Route = *req.Route
	}
	if req.SeatNumber != nil {
		t.SeatNumber = strings.ToUpper(strings.TrimSpace(*req.SeatNumber))
	}
	if req.SeatLayout != nil {
		if !model.ValidLayout(*req.SeatLayout) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat layout"})
		}
		t.SeatLayout = *req.SeatLayout
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
		}
		t.Price = *req.Price
	}
	if req.TravelDate != nil {
		d, err := utils.ParseDateTime(*req.TravelDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid travelDate"})
		}
		t.TravelDate = utils.Day(d)
	}
	if req.CheckedIn != nil {
		t.CheckedIn = *req.CheckedIn
	}
	if t.PassengerName == "" || t.SeatNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passengerName/seatNumber required"})
	}

	if err := h.Store.Update(ctx, &t); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/tickets/:id.  Agents cannot delete tickets,
// not even their own sales; voiding a sale is a staff action.
func (h *TicketHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.TicketDelete, actor.Role) {
		return forbidden(c)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ticket deleted"})
}

// CheckIn handles POST /api/tickets/:id/checkin.  Marking a boarded
// passenger again is a no-op success; the boarding event is published either
// way and failures to publish never fail the request.
func (h *TicketHandler) CheckIn(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.TicketCheckIn, actor.Role) {
		return forbidden(c)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	t, err := h.Store.SetCheckedIn(ctx, id)
	if err != nil {
		return storeError(c, err)
	}

	if h.PublishCheckIn != nil {
		_ = h.PublishCheckIn(ctx, queue.TicketCheckedInEvent{
			TicketID:      t.ID,
			PassengerName: t.PassengerName,
			Route:         t.Route,
			SeatNumber:    t.SeatNumber,
			SeatLayout:    t.SeatLayout,
			TravelDate:    t.TravelDate.Format("2006-01-02"),
			CheckedInAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, t)
}
