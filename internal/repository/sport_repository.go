package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

// SportRepo persists sports.
type SportRepo struct {
	*Store[model.Sport, *model.Sport]
}

// NewSportRepo returns a SportRepo bound to the given database.
func NewSportRepo(db *sql.DB) *SportRepo {
	return &SportRepo{Store: NewStore(db, "sports",
		[]string{"name", "description", "is_active"},
		func(s *model.Sport) []any {
			return []any{&s.Name, &s.Description, &s.IsActive}
		})}
}

// GetByID resolves a non-deleted sport or ErrSportNotFound.
func (r *SportRepo) GetByID(ctx context.Context, id uint64) (*model.Sport, error) {
	s, err := r.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSportNotFound
	}
	return s, err
}
