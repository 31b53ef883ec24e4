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

// UserHandler serves the account endpoints.  Listing and deleting are
// admin-only; reading and updating a single account is allowed for the
// account owner as well.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

type userResp struct {
	ID        uint64     `json:"id"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toUserResp(u *model.User) userResp {
	return userResp{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type updateUserReq struct {
	FullName string `json:"full_name"         validate:"required,min=2,max=120"`
	Email    string `json:"email"             validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role     string `json:"role,omitempty"    validate:"omitempty,oneof=ADMIN CUSTOMER"`
}

// List handles GET /api/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResp(u))
	}
	return c.JSON(http.StatusOK, OK("users", out))
}

// Get handles GET /api/users/:id. Non-admins may only read themselves.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.authorizeAccess(c, id); err != nil {
		return err
	}

	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK("user", toUserResp(u)))
}

// Update handles PUT /api/users/:id. Non-admins may only update
// themselves and cannot change their role.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.authorizeAccess(c, id); err != nil {
		return err
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Role != "" && !isAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "only admins may change roles")
	}

	ctx := c.Request().Context()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	email := repository.NormalizeEmail(req.Email)
	if email != u.Email {
		taken, err := h.Users.EmailTaken(ctx, email, id)
		if err != nil {
			return err
		}
		if taken {
			return repository.ErrEmailExists
		}
	}

	u.FullName = req.FullName
	u.Email = email
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if req.Role != "" {
		u.Role = req.Role
	}

	if err := h.Users.Update(ctx, u); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK("user updated", toUserResp(u)))
}

// Delete handles DELETE /api/users/:id (soft delete).
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.Users.Remove(ctx, u); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) authorizeAccess(c echo.Context, targetID uint64) error {
	if isAdmin(c) {
		return nil
	}
	uid, ok := currentUserID(c)
	if !ok || uid != targetID {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}
