package model

import "time"

// Base carries the columns shared by every table in the system.  Rows are
// never physically removed: Remove operations flip IsDeleted and refresh
// UpdatedAt, and every read path filters tombstoned rows out.
//
// Fields:
//  ID        - primary key identifier.
//  CreatedAt - creation timestamp (set by the database).
//  UpdatedAt - last update timestamp, nil until the row is first updated.
//  IsDeleted - tombstone flag.
type Base struct {
	ID        uint64     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	IsDeleted bool       `json:"-"`
}

// Meta exposes the embedded Base.  Entities gain it through embedding,
// which lets the generic store reach the shared columns of any entity.
func (b *Base) Meta() *Base { return b }

// Touch marks the row as updated now.  Repositories call it before
// persisting mutations so UpdatedAt always reflects the last write.
func (b *Base) Touch() {
	now := time.Now().UTC()
	b.UpdatedAt = &now
}
