package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/suratpier/nightboat/internal/config"
	"github.com/suratpier/nightboat/internal/model"
	"github.com/suratpier/nightboat/internal/repository"
	"github.com/suratpier/nightboat/internal/utils"
)

// UserStore is the slice of the user repository the auth and user handlers
// need.  *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, username, password, name, role string, cost int) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// AuthHandler implements login and the bootstrap registration endpoint.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	if users == nil {
		panic("nil store passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginResp struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login verifies the credentials and issues a 12-hour session token carrying
// the user's id, role and display name.  Unknown users and wrong passwords
// both answer 400, matching what the counter clients expect.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, u.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, loginResp{Token: access.Token, User: u})
}

// Register creates an account without authentication.  It exists for the
// initial install of a counter (seeding the first admin); day-to-day staff
// creation goes through the admin-only users endpoint.
func (h *AuthHandler) Register(c echo.Context) error {
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
