package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/suratpier/nightboat/internal/access"
	"github.com/suratpier/nightboat/internal/model"
	"github.com/suratpier/nightboat/internal/utils"
)

// MaintenanceStore is the slice of the maintenance repository the handler
// needs.  *repository.MaintenanceRepo satisfies it.
type MaintenanceStore interface {
	List(ctx context.Context) ([]model.MaintenanceRecord, error)
	GetByID(ctx context.Context, id uint64) (model.MaintenanceRecord, error)
	Create(ctx context.Context, m *model.MaintenanceRecord) error
	Update(ctx context.Context, m *model.MaintenanceRecord) error
	Delete(ctx context.Context, id uint64) error
}

// MaintenanceHandler implements the boat maintenance log endpoints.  Any
// authenticated role may use all of them.
type MaintenanceHandler struct {
	Store MaintenanceStore
}

func NewMaintenanceHandler(store MaintenanceStore) *MaintenanceHandler {
	if store == nil {
		panic("nil store passed to NewMaintenanceHandler")
	}
	return &MaintenanceHandler{Store: store}
}

type createMaintenanceReq struct {
	Date       string  `json:"date"`
	Details    string  `json:"details"`
	ImageURL   *string `json:"imageUrl"`
	Status     string  `json:"status"`
	RepairDate *string `json:"repairDate"`
	Technician *string `json:"technician"`
}

// maintenancePatch distinguishes absent fields from explicit nulls: a key
// present in raw with a nil pointer clears the optional column.
type maintenancePatch struct {
	fields map[string]json.RawMessage

	Date       *string `json:"date"`
	Details    *string `json:"details"`
	ImageURL   *string `json:"imageUrl"`
	Status     *string `json:"status"`
	RepairDate *string `json:"repairDate"`
	Technician *string `json:"technician"`
}

func (p *maintenancePatch) has(key string) bool {
	_, ok := p.fields[key]
	return ok
}

func decodeMaintenancePatch(c echo.Context) (*maintenancePatch, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))
	var p maintenancePatch
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &p.fields); err != nil {
		return nil, err
	}
	return &p, nil
}

// List handles GET /api/maintenances, newest fault first.
func (h *MaintenanceHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.MaintenanceList, actor.Role) {
		return forbidden(c)
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	records, err := h.Store.List(ctx)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

// Create handles POST /api/maintenances.
func (h *MaintenanceHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.MaintenanceCreate, actor.Role) {
		return forbidden(c)
	}

	var req createMaintenanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Details = strings.TrimSpace(req.Details)
	if req.Date == "" || req.Details == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date/details required"})
	}
	date, err := utils.ParseDateTime(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.MaintenanceWaiting
	}
	if status != model.MaintenanceWaiting && status != model.MaintenanceRepaired {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	m := model.MaintenanceRecord{
		Date:       date,
		Details:    req.Details,
		ImageURL:   req.ImageURL,
		Status:     status,
		Technician: req.Technician,
	}
	if req.RepairDate != nil {
		d, err := utils.ParseDateTime(*req.RepairDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid repairDate"})
		}
		m.RepairDate = &d
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Create(ctx, &m); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /api/maintenances/:id with partial patch semantics:
// only supplied fields change, and an explicit null clears imageUrl,
// repairDate or technician.
func (h *MaintenanceHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.MaintenanceUpdate, actor.Role) {
		return forbidden(c)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maintenance id"})
	}

	patch, err := decodeMaintenancePatch(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	m, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}

	if patch.Date != nil {
		d, err := utils.ParseDateTime(*patch.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
		m.Date = d
	}
	if patch.Details != nil {
		details := strings.TrimSpace(*patch.Details)
		if details == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "details required"})
		}
		m.Details = details
	}
	if patch.Status != nil {
		s := strings.ToUpper(strings.TrimSpace(*patch.Status))
		if s != model.MaintenanceWaiting && s != model.MaintenanceRepaired {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		m.Status = s
	}
	if patch.has("imageUrl") {
		m.ImageURL = patch.ImageURL
	}
	if patch.has("technician") {
		m.Technician = patch.Technician
	}
	if patch.has("repairDate") {
		if patch.RepairDate == nil {
			m.RepairDate = nil
		} else {
			d, err := utils.ParseDateTime(*patch.RepairDate)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid repairDate"})
			}
			m.RepairDate = &d
		}
	}

	if err := h.Store.Update(ctx, &m); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /api/maintenances/:id.
func (h *MaintenanceHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.MaintenanceDelete, actor.Role) {
		return forbidden(c)
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maintenance id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "maintenance record deleted"})
}
