package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suratpier/nightboat/internal/model"
	"github.com/suratpier/nightboat/internal/repository"
)

func TestDashboardEmptyLedger(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardStore{})

	c, rec := newTestContext(http.MethodGet, "/api/dashboard", "")
	asActor(c, 1, model.RoleStaff)

	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got repository.DashboardSummary
	decodeBody(t, rec, &got)
	require.Zero(t, got.TicketsSoldToday)
	require.Zero(t, got.ParcelsDepositedToday)
	require.Zero(t, got.TotalRevenueToday)
	require.Zero(t, got.ParcelsWaitingCount)
	require.Empty(t, got.RecentTickets)
	require.Empty(t, got.RecentParcels)

	// Empty lists serialize as [], not null.
	require.Contains(t, rec.Body.String(), `"recentTickets":[]`)
	require.Contains(t, rec.Body.String(), `"recentParcels":[]`)
}

func TestDashboardPassesThroughSummary(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardStore{summary: repository.DashboardSummary{
		TicketsSoldToday:      3,
		ParcelsDepositedToday: 2,
		TotalRevenueToday:     1560,
		ParcelsWaitingCount:   4,
	}})

	c, rec := newTestContext(http.MethodGet, "/api/dashboard", "")
	asActor(c, 1, model.RoleAgent)

	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got repository.DashboardSummary
	decodeBody(t, rec, &got)
	require.Equal(t, 3, got.TicketsSoldToday)
	require.Equal(t, 1560.0, got.TotalRevenueToday)
	require.Equal(t, 4, got.ParcelsWaitingCount)
}
