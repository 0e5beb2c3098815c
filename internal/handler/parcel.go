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

// ParcelStore is the slice of the parcel repository the handler needs.
// *repository.ParcelRepo satisfies it.
type ParcelStore interface {
	List(ctx context.Context, day *time.Time) ([]model.Parcel, error)
	GetByID(ctx context.Context, id uint64) (model.Parcel, error)
	Create(ctx context.Context, p *model.Parcel) error
	Update(ctx context.Context, p *model.Parcel) error
	Delete(ctx context.Context, id uint64) error
	SetDelivered(ctx context.Context, id uint64) (model.Parcel, error)
}

// ParcelHandler implements the parcel ledger endpoints.
type ParcelHandler struct {
	Store           ParcelStore
	PublishDelivery func(ctx context.Context, ev queue.ParcelDeliveredEvent) error
}

func NewParcelHandler(store ParcelStore) *ParcelHandler {
	if store == nil {
		panic("nil store passed to NewParcelHandler")
	}
	return &ParcelHandler{Store: store, PublishDelivery: service.PublishParcelDelivered}
}

// ----- DTOs -----

// createParcelReq deliberately has no price field: the price is derived from
// the weight on the server and client-submitted prices are ignored.
type createParcelReq struct {
	SenderName    string   `json:"senderName"`
	SenderPhone   string   `json:"senderPhone"`
	ReceiverName  string   `json:"receiverName"`
	ReceiverPhone string   `json:"receiverPhone"`
	Weight        *float64 `json:"weight"`
	PaymentStatus string   `json:"paymentStatus"`
	DepositDate   string   `json:"depositDate"`
}

type updateParcelReq struct {
	SenderName    *string  `json:"senderName"`
	SenderPhone   *string  `json:"senderPhone"`
	ReceiverName  *string  `json:"receiverName"`
	ReceiverPhone *string  `json:"receiverPhone"`
	Weight        *float64 `json:"weight"`
	PaymentStatus *string  `json:"paymentStatus"`
	Status        *string  `json:"status"`
	DepositDate   *string  `json:"depositDate"`
}

// List handles GET /api/parcels?date=YYYY-MM-DD.
func (h *ParcelHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.ParcelList, actor.Role) {
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

	ctx, cancel := requestCtx(c)
	defer cancel()

	parcels, err := h.Store.List(ctx, day)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, parcels)
}

// Create handles POST /api/parcels.  The deposit date defaults to now and
// the price is always recomputed from the weight.
func (h *ParcelHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.ParcelCreate, actor.Role) {
		return forbidden(c)
	}

	var req createParcelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.SenderName = strings.TrimSpace(req.SenderName)
	req.ReceiverName = strings.TrimSpace(req.ReceiverName)
	if req.SenderName == "" || req.ReceiverName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "senderName/receiverName required"})
	}
	if req.Weight == nil || *req.Weight < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid weight"})
	}
	payment := strings.ToUpper(strings.TrimSpace(req.PaymentStatus))
	if payment == "" {
		payment = model.PaymentUnpaid
	}
	if payment != model.PaymentPaid && payment != model.PaymentUnpaid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paymentStatus"})
	}
	depositDate := time.Now()
	if req.DepositDate != "" {
		d, err := utils.ParseDateTime(req.DepositDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid depositDate"})
		}
		depositDate = d
	}

	p := model.Parcel{
		SenderName:    req.SenderName,
		SenderPhone:   strings.TrimSpace(req.SenderPhone),
		ReceiverName:  req.ReceiverName,
		ReceiverPhone: strings.TrimSpace(req.ReceiverPhone),
		Weight:        *req.Weight,
		Price:         model.ParcelPrice(*req.Weight),
		PaymentStatus: payment,
		Status:        model.ParcelWaiting,
		DepositDate:   depositDate,
		SellerID:      actor.ID,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Create(ctx, &p); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /api/parcels/:id.  A weight change recomputes the
// price; no ownership restriction applies to parcels.
func (h *ParcelHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.ParcelUpdate, actor.Role) {
		return forbidden(c)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid parcel id"})
	}

	var req updateParcelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	p, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}

	if req.SenderName != nil {
		p.SenderName = strings.TrimSpace(*req.SenderName)
	}
	if req.SenderPhone != nil {
		p.SenderPhone = strings.TrimSpace(*req.SenderPhone)
	}
	if req.ReceiverName != nil {
		p.ReceiverName = strings.TrimSpace(*req.ReceiverName)
	}
	if req.ReceiverPhone != nil {
		p.ReceiverPhone = strings.TrimSpace(*req.ReceiverPhone)
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid weight"})
		}
		p.Weight = *req.Weight
		p.Price = model.ParcelPrice(*req.Weight)
	}
	if req.PaymentStatus != nil {
		s := strings.ToUpper(strings.TrimSpace(*req.PaymentStatus))
		if s != model.PaymentPaid && s != model.PaymentUnpaid {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paymentStatus"})
		}
		p.PaymentStatus = s
	}
	if req.Status != nil {
		s := strings.ToUpper(strings.TrimSpace(*req.Status))
		if s != model.ParcelWaiting && s != model.ParcelDelivered {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		p.Status = s
	}
	if req.DepositDate != nil {
		d, err := utils.ParseDateTime(*req.DepositDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid depositDate"})
		}
		p.DepositDate = d
	}
	if p.SenderName == "" || p.ReceiverName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "senderName/receiverName required"})
	}

	if err := h.Store.Update(ctx, &p); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/parcels/:id.  Deletion is reserved for roles
// above STAFF; the rule is enforced here, not in the client.
func (h *ParcelHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.ParcelDelete, actor.Role) {
		return forbidden(c)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid parcel id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "parcel deleted"})
}

// Scan handles POST /api/parcels/:id/scan, the QR hand-over flow.  Scanning
// a parcel that is already delivered is a no-op success.
func (h *ParcelHandler) Scan(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.ParcelScan, actor.Role) {
		return forbidden(c)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid parcel id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	p, err := h.Store.SetDelivered(ctx, id)
	if err != nil {
		return storeError(c, err)
	}

	if h.PublishDelivery != nil {
		_ = h.PublishDelivery(ctx, queue.ParcelDeliveredEvent{
			ParcelID:      p.ID,
			SenderName:    p.SenderName,
			ReceiverName:  p.ReceiverName,
			Weight:        p.Weight,
			PaymentStatus: p.PaymentStatus,
			DeliveredAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, p)
}
