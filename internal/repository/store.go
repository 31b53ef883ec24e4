package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

// Querier is the subset of *sql.DB and *sql.Tx the store operates on.
// Methods that must participate in a caller-managed transaction take a
// Querier so quota counts and existence checks run against the same
// transactional snapshot as the subsequent write.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// entityPtr constrains PT to a pointer to an entity embedding model.Base.
type entityPtr[T any] interface {
	*T
	Meta() *model.Base
}

// Store is a generic soft-delete store over one table.  Every read it
// issues carries an `is_deleted = 0` predicate ahead of any caller
// condition, so tombstoned rows never reach business decisions, and
// Remove converts deletes into tombstone updates.  The filter is applied
// inside the store and cannot be bypassed by callers.
//
// cols lists the entity's data columns in declaration order; fields
// returns pointers to the matching struct fields for the same order.
// The same pointers serve as scan destinations and as statement
// arguments (database/sql dereferences pointer arguments).
type Store[T any, PT entityPtr[T]] struct {
	db     *sql.DB
	table  string
	cols   []string
	fields func(e PT) []any
}

// NewStore builds a Store bound to the given table.
func NewStore[T any, PT entityPtr[T]](db *sql.DB, table string, cols []string, fields func(e PT) []any) *Store[T, PT] {
	return &Store[T, PT]{db: db, table: table, cols: cols, fields: fields}
}

// DB exposes the underlying pool so handlers can open transactions.
func (s *Store[T, PT]) DB() *sql.DB { return s.db }

// filter renders the WHERE clause with the mandatory tombstone predicate
// first and the caller condition, when present, appended after it.
func (s *Store[T, PT]) filter(cond string) string {
	w := " WHERE is_deleted = 0"
	if cond != "" {
		w += " AND (" + cond + ")"
	}
	return w
}

func (s *Store[T, PT]) selectClause() string {
	return "SELECT id, " + strings.Join(s.cols, ", ") + ", created_at, updated_at FROM " + s.table
}

func (s *Store[T, PT]) scanRow(row *sql.Row) (PT, error) {
	e := PT(new(T))
	m := e.Meta()
	var updated sql.NullTime
	dest := make([]any, 0, len(s.cols)+3)
	dest = append(dest, &m.ID)
	dest = append(dest, s.fields(e)...)
	dest = append(dest, &m.CreatedAt, &updated)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		m.UpdatedAt = &t
	}
	return e, nil
}

func (s *Store[T, PT]) scanRows(rows *sql.Rows) ([]PT, error) {
	defer rows.Close()
	out := make([]PT, 0)
	for rows.Next() {
		e := PT(new(T))
		m := e.Meta()
		var updated sql.NullTime
		dest := make([]any, 0, len(s.cols)+3)
		dest = append(dest, &m.ID)
		dest = append(dest, s.fields(e)...)
		dest = append(dest, &m.CreatedAt, &updated)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if updated.Valid {
			t := updated.Time
			m.UpdatedAt = &t
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns the non-deleted row with the given id, or
// sql.ErrNoRows when it is absent or tombstoned.
func (s *Store[T, PT]) FindByID(ctx context.Context, id uint64) (PT, error) {
	return s.FindByIDQ(ctx, s.db, id)
}

// FindByIDQ is FindByID against an explicit Querier (pool or open tx).
func (s *Store[T, PT]) FindByIDQ(ctx context.Context, q Querier, id uint64) (PT, error) {
	query := s.selectClause() + s.filter("id = ?")
	return s.scanRow(q.QueryRowContext(ctx, query, id))
}

// List returns all non-deleted rows ordered by id.
func (s *Store[T, PT]) List(ctx context.Context) ([]PT, error) {
	rows, err := s.db.QueryContext(ctx, s.selectClause()+s.filter("")+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	return s.scanRows(rows)
}

// Where returns non-deleted rows matching the caller condition, ordered
// by id.  The condition is combined with the tombstone filter; it cannot
// widen the result set to deleted rows.
func (s *Store[T, PT]) Where(ctx context.Context, cond string, args ...any) ([]PT, error) {
	rows, err := s.db.QueryContext(ctx, s.selectClause()+s.filter(cond)+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	return s.scanRows(rows)
}

// ExistsAny reports whether any non-deleted row matches the condition.
func (s *Store[T, PT]) ExistsAny(ctx context.Context, cond string, args ...any) (bool, error) {
	return s.ExistsAnyQ(ctx, s.db, cond, args...)
}

// ExistsAnyQ is ExistsAny against an explicit Querier.
func (s *Store[T, PT]) ExistsAnyQ(ctx context.Context, q Querier, cond string, args ...any) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM " + s.table + s.filter(cond) + ")"
	var exists bool
	if err := q.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CountWhere counts non-deleted rows matching the condition.
func (s *Store[T, PT]) CountWhere(ctx context.Context, cond string, args ...any) (int64, error) {
	return s.CountWhereQ(ctx, s.db, cond, args...)
}

// CountWhereQ is CountWhere against an explicit Querier.
func (s *Store[T, PT]) CountWhereQ(ctx context.Context, q Querier, cond string, args ...any) (int64, error) {
	query := "SELECT COUNT(*) FROM " + s.table + s.filter(cond)
	var n int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Add inserts the entity with the tombstone flag clear, then queries the
// row back to populate the generated id and creation timestamp.
func (s *Store[T, PT]) Add(ctx context.Context, e PT) error {
	return s.AddQ(ctx, s.db, e)
}

// AddQ is Add against an explicit Querier.
func (s *Store[T, PT]) AddQ(ctx context.Context, q Querier, e PT) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.cols)), ", ")
	query := "INSERT INTO " + s.table + " (" + strings.Join(s.cols, ", ") + ") VALUES (" + placeholders + ")"
	res, err := q.ExecContext(ctx, query, s.fields(e)...)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	fresh, err := s.FindByIDQ(ctx, q, uint64(id))
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

// Update persists all data columns of an existing row and refreshes its
// update timestamp.  Rows that are absent or tombstoned are untouched;
// callers are expected to have resolved the row first.
func (s *Store[T, PT]) Update(ctx context.Context, e PT) error {
	return s.UpdateQ(ctx, s.db, e)
}

// UpdateQ is Update against an explicit Querier.
func (s *Store[T, PT]) UpdateQ(ctx context.Context, q Querier, e PT) error {
	assign := make([]string, 0, len(s.cols)+1)
	for _, c := range s.cols {
		assign = append(assign, c+" = ?")
	}
	assign = append(assign, "updated_at = ?")
	m := e.Meta()
	m.Touch()
	args := append(s.fields(e), *m.UpdatedAt, m.ID)
	query := "UPDATE " + s.table + " SET " + strings.Join(assign, ", ") + s.filter("id = ?")
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

// Remove tombstones the row: the deletion flag is set and the update
// timestamp refreshed.  The row is never physically erased.
func (s *Store[T, PT]) Remove(ctx context.Context, e PT) error {
	return s.RemoveQ(ctx, s.db, e)
}

// RemoveQ is Remove against an explicit Querier.
func (s *Store[T, PT]) RemoveQ(ctx context.Context, q Querier, e PT) error {
	m := e.Meta()
	m.Touch()
	query := "UPDATE " + s.table + " SET is_deleted = 1, updated_at = ?" + s.filter("id = ?")
	if _, err := q.ExecContext(ctx, query, *m.UpdatedAt, m.ID); err != nil {
		return err
	}
	m.IsDeleted = true
	return nil
}
