package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/suratpier/nightboat/internal/model"
)

// newTestContext builds an echo context for a handler call.  The returned
// recorder captures the response.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asActor injects the context values the JWT middleware would set.
func asActor(c echo.Context, id uint64, role string) {
	c.Set("user_id", id)
	c.Set("role", role)
	c.Set("name", "Test "+role)
}

// decodeBody unmarshals the recorded JSON response into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// seedTicket inserts a ticket directly into the fake store.
func seedTicket(t *testing.T, store *fakeTicketStore, tk model.Ticket) model.Ticket {
	t.Helper()
	require.NoError(t, store.Create(t.Context(), &tk))
	return tk
}
