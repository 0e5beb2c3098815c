package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/suratpier/nightboat/internal/access"
	"github.com/suratpier/nightboat/internal/config"
	"github.com/suratpier/nightboat/internal/model"
)

// UserHandler implements the admin-only staff management endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, users UserStore) *UserHandler {
	if users == nil {
		panic("nil store passed to NewUserHandler")
	}
	return &UserHandler{Cfg: cfg, Users: users}
}

// List returns every account, newest first, without password hashes.
func (h *UserHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.UserList, actor.Role) {
		return forbidden(c)
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Create adds a staff account.  Only admins may call this; the role defaults
// to STAFF when omitted.
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !access.Can(access.UserCreate, actor.Role) {
		return forbidden(c)
	}

	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password/name required"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleStaff
	}
	if !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Username, req.Password, req.Name, role, h.Cfg.BcryptCost)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}
