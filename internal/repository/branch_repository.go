package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

// BranchRepo persists branches.  All reads exclude tombstoned rows via
// the embedded store.
type BranchRepo struct {
	*Store[model.Branch, *model.Branch]
}

// NewBranchRepo returns a BranchRepo bound to the given database.
func NewBranchRepo(db *sql.DB) *BranchRepo {
	return &BranchRepo{Store: NewStore(db, "branches",
		[]string{"name", "description"},
		func(b *model.Branch) []any {
			return []any{&b.Name, &b.Description}
		})}
}

// GetByID resolves a non-deleted branch or ErrBranchNotFound.
func (r *BranchRepo) GetByID(ctx context.Context, id uint64) (*model.Branch, error) {
	b, err := r.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	return b, err
}
