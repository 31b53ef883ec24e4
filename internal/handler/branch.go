package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
	"github.com/iliyamo/sports-facility-reservation/internal/repository"
)

// BranchHandler serves the facility branch endpoints.
type BranchHandler struct {
	Branches *repository.BranchRepo
}

func NewBranchHandler(branches *repository.BranchRepo) *BranchHandler {
	return &BranchHandler{Branches: branches}
}

type branchReq struct {
	Name        string  `json:"name"        validate:"required,min=2,max=150"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type branchResp struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toBranchResp(b *model.Branch) branchResp {
	return branchResp{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// List handles GET /api/branches.
func (h *BranchHandler) List(c echo.Context) error {
	branches, err := h.Branches.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]branchResp, 0, len(branches))
	for _, b := range branches {
		out = append(out, toBranchResp(b))
	}
	return c.JSON(http.StatusOK, OK("branches", out))
}

// Get handles GET /api/branches/:id.
func (h *BranchHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	b, err := h.Branches.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK("branch", toBranchResp(b)))
}

// Create handles POST /api/branches.
func (h *BranchHandler) Create(c echo.Context) error {
	var req branchReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b := &model.Branch{Name: req.Name, Description: req.Description}
	if err := h.Branches.Add(c.Request().Context(), b); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OK("branch created", toBranchResp(b)))
}

// Update handles PUT /api/branches/:id.
func (h *BranchHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req branchReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	b, err := h.Branches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.Name = req.Name
	b.Description = req.Description
	if err := h.Branches.Update(ctx, b); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK("branch updated", toBranchResp(b)))
}

// Delete handles DELETE /api/branches/:id (soft delete).
func (h *BranchHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	b, err := h.Branches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.Branches.Remove(ctx, b); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
