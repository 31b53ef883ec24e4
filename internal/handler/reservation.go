package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/sports-facility-reservation/internal/config"
	"github.com/iliyamo/sports-facility-reservation/internal/metrics"
	"github.com/iliyamo/sports-facility-reservation/internal/model"
	"github.com/iliyamo/sports-facility-reservation/internal/queue"
	"github.com/iliyamo/sports-facility-reservation/internal/repository"
	"github.com/iliyamo/sports-facility-reservation/internal/service"
)

// ReservationHandler serves the booking endpoints. Creating and moving a
// reservation run the admission check inside a single transaction so the
// session quota cannot be overshot by concurrent requests.
type ReservationHandler struct {
	Cfg          config.Config
	Reservations *repository.ReservationRepo
	Sessions     *repository.SessionRepo
	Users        *repository.UserRepo
	Log          zerolog.Logger
}

func NewReservationHandler(cfg config.Config, r *repository.ReservationRepo, s *repository.SessionRepo, u *repository.UserRepo, log zerolog.Logger) *ReservationHandler {
	return &ReservationHandler{Cfg: cfg, Reservations: r, Sessions: s, Users: u, Log: log}
}

type createReservationReq struct {
	SessionID uint64 `json:"session_id" validate:"required,gt=0"`
	// UserID lets an admin book on behalf of another account. Ignored
	// for non-admin callers, who always book for themselves.
	UserID uint64 `json:"user_id" validate:"omitempty,gt=0"`
}

type updateReservationReq struct {
	SessionID uint64 `json:"session_id" validate:"required,gt=0"`
}

type reservationResp struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	SessionID uint64     `json:"session_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type reservationDetailResp struct {
	reservationResp
	UserFullName           string    `json:"user_full_name"`
	UserEmail              string    `json:"user_email"`
	SessionStartTime       time.Time `json:"session_start_time"`
	SessionDurationMinutes uint32    `json:"session_duration_minutes"`
	SessionPrice           float64   `json:"session_price"`
	BranchName             string    `json:"branch_name"`
}

func toReservationResp(r *model.Reservation) reservationResp {
	return reservationResp{
		ID:        r.ID,
		UserID:    r.UserID,
		SessionID: r.SessionID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toReservationDetailResp(d *repository.ReservationDetail) reservationDetailResp {
	return reservationDetailResp{
		reservationResp:        toReservationResp(&d.Reservation),
		UserFullName:           d.UserFullName,
		UserEmail:              d.UserEmail,
		SessionStartTime:       d.SessionStartTime,
		SessionDurationMinutes: d.SessionDurationMinutes,
		SessionPrice:           d.SessionPrice,
		BranchName:             d.BranchName,
	}
}

// List handles GET /api/reservations (admin only), newest first.
func (h *ReservationHandler) List(c echo.Context) error {
	details, err := h.Reservations.ListDetailed(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]reservationDetailResp, 0, len(details))
	for i := range details {
		out = append(out, toReservationDetailResp(&details[i]))
	}
	return c.JSON(http.StatusOK, OK("reservations", out))
}

// Mine handles GET /api/reservations/mine, the caller's own bookings.
func (h *ReservationHandler) Mine(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	list, err := h.Reservations.Where(c.Request().Context(), "user_id = ?", uid)
	if err != nil {
		return err
	}
	out := make([]reservationResp, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, OK("reservations", out))
}

// Get handles GET /api/reservations/:id. Owners and admins only.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.Reservations.GetDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := h.authorizeOwner(c, d.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK("reservation", toReservationDetailResp(d)))
}

// Create handles POST /api/reservations. The admission check and the
// insert share one transaction so two concurrent bookings for the last
// spot cannot both succeed.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	uid, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	targetUser := uid
	if req.UserID != 0 && isAdmin(c) {
		targetUser = req.UserID
	}

	ctx := c.Request().Context()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := h.Reservations.AdmitTx(ctx, tx, h.Sessions, h.Users, repository.AdmitParams{
		UserID:    targetUser,
		SessionID: req.SessionID,
	}); err != nil {
		countRejection(err)
		return err
	}

	res := &model.Reservation{UserID: targetUser, SessionID: req.SessionID}
	if err := h.Reservations.AddQ(ctx, tx, res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	metrics.ReservationsAdmitted.Inc()
	h.publishConfirmed(res)

	return c.JSON(http.StatusCreated, OK("reservation created", toReservationResp(res)))
}

// Update handles PUT /api/reservations/:id and moves a booking to a
// different session. The reservation being moved does not count against
// the target quota, and moving within the same session is a no-op that
// still passes admission.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.authorizeOwner(c, res.UserID); err != nil {
		return err
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := h.Reservations.AdmitTx(ctx, tx, h.Sessions, h.Users, repository.AdmitParams{
		UserID:               res.UserID,
		SessionID:            req.SessionID,
		ExcludeReservationID: res.ID,
	}); err != nil {
		countRejection(err)
		return err
	}

	res.SessionID = req.SessionID
	if err := h.Reservations.UpdateQ(ctx, tx, res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return c.JSON(http.StatusOK, OK("reservation updated", toReservationResp(res)))
}

// Delete handles DELETE /api/reservations/:id (soft delete). Owners may
// cancel their own bookings; admins may cancel any.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.authorizeOwner(c, res.UserID); err != nil {
		return err
	}
	if err := h.Reservations.Remove(ctx, res); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) authorizeOwner(c echo.Context, ownerID uint64) error {
	if isAdmin(c) {
		return nil
	}
	uid, ok := currentUserID(c)
	if !ok || uid != ownerID {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

// publishConfirmed emits the confirmation event in the background. The
// broker is optional infrastructure; failures are logged, never surfaced.
func (h *ReservationHandler) publishConfirmed(res *model.Reservation) {
	if h.Cfg.AMQPURL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		ev := queue.ReservationConfirmedEvent{
			ReservationID: res.ID,
			UserID:        res.UserID,
			SessionID:     res.SessionID,
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if u, err := h.Users.GetByID(ctx, res.UserID); err == nil {
			ev.UserEmail = u.Email
		}
		if sd, err := h.Sessions.GetDetail(ctx, res.SessionID); err == nil {
			ev.BranchName = sd.BranchName
			ev.SportName = sd.SportName
			ev.StartsAt = sd.StartTime.UTC().Format(time.RFC3339)
			ev.DurationMinutes = sd.DurationMinutes
			ev.Price = sd.Price
		}
		_ = service.PublishReservationConfirmed(ctx, h.Cfg.AMQPURL, ev, h.Log)
	}()
}

func countRejection(err error) {
	switch {
	case errors.Is(err, repository.ErrQuotaFull):
		metrics.ReservationsRejected.WithLabelValues("quota_full").Inc()
	case errors.Is(err, repository.ErrAlreadyReserved):
		metrics.ReservationsRejected.WithLabelValues("duplicate").Inc()
	case errors.Is(err, repository.ErrSessionNotFound), errors.Is(err, repository.ErrUserNotFound):
		metrics.ReservationsRejected.WithLabelValues("not_found").Inc()
	}
}
