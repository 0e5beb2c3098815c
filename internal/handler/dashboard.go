package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/suratpier/nightboat/internal/access"
	"github.com/suratpier/nightboat/internal/repository"
	"github.com/suratpier/nightboat/internal/utils"
)

// DashboardStore is the aggregation slice the handler needs.
// *repository.DashboardRepo satisfies it.
type DashboardStore interface {
	Summary(ctx context.Context, start, end time.Time) (*repository.DashboardSummary, error)
}

// DashboardHandler serves the same-day counter overview.
type DashboardHandler struct {
	Store DashboardStore
}

func NewDashboardHandler(store DashboardStore) *DashboardHandler {
	if store == nil {
		panic("nil store passed to NewDashboardHandler")
	}
	return &DashboardHandler{Store: store}
}

// Get handles GET /api/dashboard.  "Today" is the local calendar day at the
// moment of the call.
func (h *DashboardHandler) Get(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.DashboardView, actor.Role) {
		return forbidden(c)
	}

	start, end := utils.DayWindow(time.Now())

	ctx, cancel := requestCtx(c)
	defer cancel()

	summary, err := h.Store.Summary(ctx, start, end)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
