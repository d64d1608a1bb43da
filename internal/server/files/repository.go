package files

import (
	"context"
)

type Repository interface {
	// Create persists the record and fills in the store-assigned fields
	// (ID, Seq, CreatedAt).
	Create(ctx context.Context, file *File) (*File, error)

	// GetByID returns the record or common.ErrorNotFound. A malformed id is
	// treated as absent, not as an error.
	GetByID(ctx context.Context, id string) (*File, error)

	// ListByParent returns the owner's records under parentID (empty string
	// for root), ordered by creation, windowed by offset/limit. A window past
	// the end yields an empty slice.
	ListByParent(ctx context.Context, userID, parentID string, offset, limit int) ([]*File, error)

	// Count returns the total number of records in the catalog.
	Count(ctx context.Context) (int64, error)
}
