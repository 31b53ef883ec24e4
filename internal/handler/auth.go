package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sports-facility-reservation/internal/config"
	"github.com/iliyamo/sports-facility-reservation/internal/model"
	"github.com/iliyamo/sports-facility-reservation/internal/repository"
	"github.com/iliyamo/sports-facility-reservation/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type registerReq struct {
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      userResp  `json:"user"`
}

// Register handles POST /api/auth/register. New accounts are always
// CUSTOMER; admins are provisioned by the seeder or by another admin.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	// Hash before touching the database; bcrypt is slow and must not
	// extend the uniqueness lock inside CreateUnique.
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return err
	}

	u := &model.User{
		FullName:     req.FullName,
		Email:        repository.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	}
	if err := h.Users.CreateUnique(ctx, u); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, OK("registered", toUserResp(u)))
}

// Login handles POST /api/auth/login and issues a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	u, err := h.Users.GetByEmail(ctx, repository.NormalizeEmail(req.Email))
	if err == repository.ErrUserNotFound {
		return repository.ErrInvalidCredentials
	}
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return repository.ErrInvalidCredentials
	}

	ttl := time.Duration(h.Cfg.TokenTTLHrs) * time.Hour
	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, u.FullName, ttl)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, OK("logged in", loginResp{
		Token:     tok.Token,
		ExpiresAt: tok.Exp,
		User:      toUserResp(u),
	}))
}
