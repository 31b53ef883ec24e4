package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

func testStore() *Store[model.Branch, *model.Branch] {
	return NewStore(nil, "branches",
		[]string{"name", "description"},
		func(b *model.Branch) []any {
			return []any{&b.Name, &b.Description}
		})
}

func TestStoreFilterAlwaysExcludesTombstones(t *testing.T) {
	s := testStore()

	assert.Equal(t, " WHERE is_deleted = 0", s.filter(""))
	assert.Equal(t, " WHERE is_deleted = 0 AND (name = ?)", s.filter("name = ?"))

	// The tombstone predicate must come first so a caller condition can
	// never widen the result set back onto deleted rows.
	got := s.filter("id = ? OR id = ?")
	assert.Equal(t, " WHERE is_deleted = 0 AND (id = ? OR id = ?)", got)
}

func TestStoreSelectClause(t *testing.T) {
	s := testStore()
	assert.Equal(t, "SELECT id, name, description, created_at, updated_at FROM branches", s.selectClause())
}

func TestStoreFieldsMatchColumns(t *testing.T) {
	s := testStore()
	var b model.Branch
	assert.Len(t, s.fields(&b), len(s.cols))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "a@b.c", NormalizeEmail("a@b.c"))
}
