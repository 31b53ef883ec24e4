package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

// SessionRepo persists sessions and provides the detail queries that
// join in branch and sport names for presentation.  GetForUpdateTx is
// the locking primitive of the reservation admission check.
type SessionRepo struct {
	*Store[model.Session, *model.Session]
}

// NewSessionRepo returns a SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{Store: NewStore(db, "sessions",
		[]string{"branch_id", "sport_id", "start_time", "duration_minutes", "quota", "price"},
		func(s *model.Session) []any {
			return []any{&s.BranchID, &s.SportID, &s.StartTime, &s.DurationMinutes, &s.Quota, &s.Price}
		})}
}

// GetByID resolves a non-deleted session or ErrSessionNotFound.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	s, err := r.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	return s, err
}

// GetForUpdateTx loads a non-deleted session inside the given transaction
// while taking a row lock on it.  Concurrent admission checks against the
// same session serialize on this lock, which is what keeps the quota
// ceiling intact under simultaneous requests.
func (r *SessionRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Session, error) {
	const q = `SELECT id, branch_id, sport_id, start_time, duration_minutes, quota, price, created_at, updated_at
	           FROM sessions
	           WHERE id = ? AND is_deleted = 0
	           FOR UPDATE`
	var s model.Session
	var updated sql.NullTime
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.BranchID, &s.SportID, &s.StartTime, &s.DurationMinutes, &s.Quota, &s.Price,
		&s.CreatedAt, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		s.UpdatedAt = &t
	}
	return &s, nil
}

// SessionDetail is a session row joined with the names of its branch and
// sport.  Deleted parents still resolve: a session keeps referencing its
// branch and sport after they are tombstoned, so the joins do not filter
// on the parents' deletion flags.
type SessionDetail struct {
	model.Session
	BranchName string
	SportName  string
}

const sessionDetailSelect = `SELECT s.id, s.branch_id, s.sport_id, s.start_time, s.duration_minutes, s.quota, s.price,
	       s.created_at, s.updated_at, b.name, sp.name
	FROM sessions s
	JOIN branches b ON b.id = s.branch_id
	JOIN sports sp ON sp.id = s.sport_id`

func scanSessionDetail(scan func(dest ...any) error) (*SessionDetail, error) {
	var d SessionDetail
	var updated sql.NullTime
	if err := scan(
		&d.ID, &d.BranchID, &d.SportID, &d.StartTime, &d.DurationMinutes, &d.Quota, &d.Price,
		&d.CreatedAt, &updated, &d.BranchName, &d.SportName,
	); err != nil {
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		d.UpdatedAt = &t
	}
	return &d, nil
}

// ListDetailed returns all non-deleted sessions with their branch and
// sport names, ordered by start time.
func (r *SessionRepo) ListDetailed(ctx context.Context) ([]SessionDetail, error) {
	rows, err := r.DB().QueryContext(ctx, sessionDetailSelect+`
	WHERE s.is_deleted = 0
	ORDER BY s.start_time, s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]SessionDetail, 0)
	for rows.Next() {
		d, err := scanSessionDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// GetDetail returns one non-deleted session with branch and sport names,
// or ErrSessionNotFound.
func (r *SessionRepo) GetDetail(ctx context.Context, id uint64) (*SessionDetail, error) {
	row := r.DB().QueryRowContext(ctx, sessionDetailSelect+`
	WHERE s.id = ? AND s.is_deleted = 0`, id)
	d, err := scanSessionDetail(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	return d, err
}
