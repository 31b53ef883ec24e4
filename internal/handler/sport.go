package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
	"github.com/iliyamo/sports-facility-reservation/internal/repository"
)

// SportHandler serves the sport catalogue endpoints.
type SportHandler struct {
	Sports *repository.SportRepo
}

func NewSportHandler(sports *repository.SportRepo) *SportHandler {
	return &SportHandler{Sports: sports}
}

type sportReq struct {
	Name        string  `json:"name"        validate:"required,min=2,max=150"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

type sportResp struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toSportResp(s *model.Sport) sportResp {
	return sportResp{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// List handles GET /api/sports.
func (h *SportHandler) List(c echo.Context) error {
	sports, err := h.Sports.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]sportResp, 0, len(sports))
	for _, s := range sports {
		out = append(out, toSportResp(s))
	}
	return c.JSON(http.StatusOK, OK("sports", out))
}

// Get handles GET /api/sports/:id.
func (h *SportHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s, err := h.Sports.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK("sport", toSportResp(s)))
}

// Create handles POST /api/sports. New sports default to active unless
// the payload says otherwise.
func (h *SportHandler) Create(c echo.Context) error {
	var req sportReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s := &model.Sport{Name: req.Name, Description: req.Description, IsActive: true}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := h.Sports.Add(c.Request().Context(), s); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OK("sport created", toSportResp(s)))
}

// Update handles PUT /api/sports/:id.
func (h *SportHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req sportReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	s, err := h.Sports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.Name = req.Name
	s.Description = req.Description
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := h.Sports.Update(ctx, s); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK("sport updated", toSportResp(s)))
}

// Delete handles DELETE /api/sports/:id (soft delete).
func (h *SportHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	s, err := h.Sports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.Sports.Remove(ctx, s); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
