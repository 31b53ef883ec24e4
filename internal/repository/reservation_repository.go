package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

// ReservationRepo persists reservations and hosts the admission check
// that protects the session quota and the one-booking-per-user rule.
type ReservationRepo struct {
	*Store[model.Reservation, *model.Reservation]
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{Store: NewStore(db, "reservations",
		[]string{"user_id", "session_id"},
		func(r *model.Reservation) []any {
			return []any{&r.UserID, &r.SessionID}
		})}
}

// GetByID resolves a non-deleted reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := r.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// AdmitParams describes one admission request.  ExcludeReservationID is
// non-zero on the update path so the reservation being moved does not
// count against the target session's quota.  The duplicate-booking rule
// applies on the create path only; moving a reservation keeps the same
// owner, so the pair check would always trip against itself.
type AdmitParams struct {
	UserID               uint64
	SessionID            uint64
	ExcludeReservationID uint64
}

// AdmitTx decides whether a reservation may be created for (or moved to)
// the given session.  It must run inside the same transaction as the
// subsequent insert/update: the session row is locked with FOR UPDATE,
// so concurrent admissions against the same session serialize and the
// quota count each of them observes stays valid until its own commit.
// Evaluating the count outside this lock would let two requests both see
// count < quota and both commit, overshooting capacity.
//
// Returns the locked session on success; ErrSessionNotFound,
// ErrUserNotFound, ErrQuotaFull or ErrAlreadyReserved otherwise.
func (r *ReservationRepo) AdmitTx(ctx context.Context, tx *sql.Tx, sessions *SessionRepo, users *UserRepo, p AdmitParams) (*model.Session, error) {
	sess, err := sessions.GetForUpdateTx(ctx, tx, p.SessionID)
	if err != nil {
		return nil, err
	}

	createPath := p.ExcludeReservationID == 0
	if createPath {
		exists, err := users.ExistsAnyQ(ctx, tx, "id = ?", p.UserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUserNotFound
		}
	}

	var taken int64
	if createPath {
		taken, err = r.CountWhereQ(ctx, tx, "session_id = ?", p.SessionID)
	} else {
		taken, err = r.CountWhereQ(ctx, tx, "session_id = ? AND id <> ?", p.SessionID, p.ExcludeReservationID)
	}
	if err != nil {
		return nil, err
	}

	duplicate := false
	if createPath {
		duplicate, err = r.ExistsAnyQ(ctx, tx, "user_id = ? AND session_id = ?", p.UserID, p.SessionID)
		if err != nil {
			return nil, err
		}
	}

	if err := admissionVerdict(sess.Quota, taken, duplicate); err != nil {
		return nil, err
	}
	return sess, nil
}

// admissionVerdict applies the quota and duplicate rules to a snapshot
// taken under the session row lock.  Quota is checked first, matching
// the order callers observe in responses.
func admissionVerdict(quota uint32, taken int64, duplicate bool) error {
	if taken >= int64(quota) {
		return ErrQuotaFull
	}
	if duplicate {
		return ErrAlreadyReserved
	}
	return nil
}

// ReservationDetail is a reservation joined with its user and session,
// including the session's branch name, for presentation.
type ReservationDetail struct {
	model.Reservation
	UserFullName           string
	UserEmail              string
	SessionStartTime       time.Time
	SessionDurationMinutes uint32
	SessionPrice           float64
	BranchName             string
}

const reservationDetailSelect = `SELECT r.id, r.user_id, r.session_id, r.created_at, r.updated_at,
	       u.full_name, u.email, s.start_time, s.duration_minutes, s.price, b.name
	FROM reservations r
	JOIN users u ON u.id = r.user_id
	JOIN sessions s ON s.id = r.session_id
	JOIN branches b ON b.id = s.branch_id`

func scanReservationDetail(scan func(dest ...any) error) (*ReservationDetail, error) {
	var d ReservationDetail
	var updated sql.NullTime
	if err := scan(
		&d.ID, &d.UserID, &d.SessionID, &d.CreatedAt, &updated,
		&d.UserFullName, &d.UserEmail, &d.SessionStartTime, &d.SessionDurationMinutes, &d.SessionPrice, &d.BranchName,
	); err != nil {
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		d.UpdatedAt = &t
	}
	return &d, nil
}

// ListDetailed returns all non-deleted reservations with user and
// session context, newest first.
func (r *ReservationRepo) ListDetailed(ctx context.Context) ([]ReservationDetail, error) {
	rows, err := r.DB().QueryContext(ctx, reservationDetailSelect+`
	WHERE r.is_deleted = 0
	ORDER BY r.created_at DESC, r.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanReservationDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// GetDetail returns one non-deleted reservation with user and session
// context, or ErrReservationNotFound.
func (r *ReservationRepo) GetDetail(ctx context.Context, id uint64) (*ReservationDetail, error) {
	row := r.DB().QueryRowContext(ctx, reservationDetailSelect+`
	WHERE r.id = ? AND r.is_deleted = 0`, id)
	d, err := scanReservationDetail(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return d, err
}
