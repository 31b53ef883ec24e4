package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

// UserRepo persists users through the soft-delete store and adds the
// email lookups the auth flow needs.  Emails are normalized to lowercase
// before every query so uniqueness is case-insensitive.
type UserRepo struct {
	*Store[model.User, *model.User]
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{Store: NewStore(db, "users",
		[]string{"full_name", "email", "password_hash", "role"},
		func(u *model.User) []any {
			return []any{&u.FullName, &u.Email, &u.PasswordHash, &u.Role}
		})}
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUnique inserts the user only when no non-deleted row already
// holds the email.  The check and the insert share one transaction and
// the check is a locking read over the email index, so a concurrent
// registration of the same address cannot slip between them: the loser
// either observes the committed row (ErrEmailExists) or is rolled back
// by the database.  There is no UNIQUE constraint backing this; the
// email must stay reusable after the holding account is soft-deleted.
func (r *UserRepo) CreateUnique(ctx context.Context, u *model.User) error {
	tx, err := r.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var n int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ? AND is_deleted = 0 FOR UPDATE`,
		u.Email).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrEmailExists
	}

	if err := r.AddQ(ctx, tx, u); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID resolves a non-deleted user or ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	u, err := r.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// GetByEmail resolves a non-deleted user by normalized email or
// ErrUserNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.Where(ctx, "email = ?", NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

// EmailTaken reports whether a non-deleted user other than excludeID
// already holds the email.  Pass excludeID 0 on the create path.
func (r *UserRepo) EmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error) {
	if excludeID > 0 {
		return r.ExistsAny(ctx, "email = ? AND id <> ?", NormalizeEmail(email), excludeID)
	}
	return r.ExistsAny(ctx, "email = ?", NormalizeEmail(email))
}
