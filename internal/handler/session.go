package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
	"github.com/iliyamo/sports-facility-reservation/internal/repository"
)

// SessionHandler serves the bookable session endpoints.
type SessionHandler struct {
	Sessions *repository.SessionRepo
	Branches *repository.BranchRepo
	Sports   *repository.SportRepo
}

func NewSessionHandler(sessions *repository.SessionRepo, branches *repository.BranchRepo, sports *repository.SportRepo) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Branches: branches, Sports: sports}
}

type sessionReq struct {
	BranchID        uint64    `json:"branch_id"        validate:"required,gt=0"`
	SportID         uint64    `json:"sport_id"         validate:"required,gt=0"`
	StartTime       time.Time `json:"start_time"       validate:"required"`
	DurationMinutes uint32    `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Quota           uint32    `json:"quota"            validate:"required,min=1"`
	Price           float64   `json:"price"            validate:"gte=0"`
}

type sessionResp struct {
	ID              uint64     `json:"id"`
	BranchID        uint64     `json:"branch_id"`
	SportID         uint64     `json:"sport_id"`
	BranchName      string     `json:"branch_name,omitempty"`
	SportName       string     `json:"sport_name,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	DurationMinutes uint32     `json:"duration_minutes"`
	Quota           uint32     `json:"quota"`
	Price           float64    `json:"price"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func toSessionResp(s *model.Session) sessionResp {
	return sessionResp{
		ID:              s.ID,
		BranchID:        s.BranchID,
		SportID:         s.SportID,
		StartTime:       s.StartTime,
		DurationMinutes: s.DurationMinutes,
		Quota:           s.Quota,
		Price:           s.Price,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toSessionDetailResp(d *repository.SessionDetail) sessionResp {
	out := toSessionResp(&d.Session)
	out.BranchName = d.BranchName
	out.SportName = d.SportName
	return out
}

// List handles GET /api/sessions, ordered by start time with branch and
// sport names resolved.
func (h *SessionHandler) List(c echo.Context) error {
	details, err := h.Sessions.ListDetailed(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]sessionResp, 0, len(details))
	for i := range details {
		out = append(out, toSessionDetailResp(&details[i]))
	}
	return c.JSON(http.StatusOK, OK("sessions", out))
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.Sessions.GetDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK("session", toSessionDetailResp(d)))
}

// Create handles POST /api/sessions. The referenced branch and sport
// must exist and not be soft-deleted.
func (h *SessionHandler) Create(c echo.Context) error {
	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if _, err := h.Branches.GetByID(ctx, req.BranchID); err != nil {
		return err
	}
	if _, err := h.Sports.GetByID(ctx, req.SportID); err != nil {
		return err
	}

	s := &model.Session{
		BranchID:        req.BranchID,
		SportID:         req.SportID,
		StartTime:       req.StartTime.UTC(),
		DurationMinutes: req.DurationMinutes,
		Quota:           req.Quota,
		Price:           req.Price,
	}
	if err := h.Sessions.Add(ctx, s); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OK("session created", toSessionResp(s)))
}

// Update handles PUT /api/sessions/:id. Shrinking the quota below the
// current reservation count is allowed; existing reservations stand and
// only new admissions are blocked.
func (h *SessionHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	s, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := h.Branches.GetByID(ctx, req.BranchID); err != nil {
		return err
	}
	if _, err := h.Sports.GetByID(ctx, req.SportID); err != nil {
		return err
	}

	s.BranchID = req.BranchID
	s.SportID = req.SportID
	s.StartTime = req.StartTime.UTC()
	s.DurationMinutes = req.DurationMinutes
	s.Quota = req.Quota
	s.Price = req.Price
	if err := h.Sessions.Update(ctx, s); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK("session updated", toSessionResp(s)))
}

// Delete handles DELETE /api/sessions/:id (soft delete).
func (h *SessionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	s, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.Sessions.Remove(ctx, s); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
