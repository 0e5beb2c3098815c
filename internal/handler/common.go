package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/suratpier/nightboat/internal/repository"
)

// Actor is the authenticated identity attached to a request by the JWT
// middleware.  Every gated handler resolves one before touching a ledger.
type Actor struct {
	ID   uint64
	Role string
	Name string
}

// actorFrom extracts the authenticated actor from the echo context.  The
// JWT middleware stores user_id as uint64; anything else means the request
// never passed authentication.
func actorFrom(c echo.Context) (Actor, error) {
	id, ok := c.Get("user_id").(uint64)
	if !ok || id == 0 {
		return Actor{}, errors.New("no authenticated user in context")
	}
	a := Actor{ID: id}
	a.Role, _ = c.Get("role").(string)
	a.Name, _ = c.Get("name").(string)
	return a, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// requestCtx caps database work for a single request.
func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// storeError maps repository sentinel errors onto HTTP responses.  Anything
// unrecognized is an internal storage failure.
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrSeatTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already taken"})
	case errors.Is(err, repository.ErrUsernameExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// forbidden is the uniform policy-violation response.
func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
}
