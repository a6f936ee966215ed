package transfer

import (
	"context"
	"errors"
)

var ErrVersionConflict = errors.New("transfer was modified concurrently")

// ListFilter narrows List. An empty Status matches every status.
type ListFilter struct {
	Status Status
	Offset int
	Limit  int
}

// Repository describes transfer persistence needs from use cases.
// List returns newest first together with the total count matching the filter.
// Update writes the whole record only when the stored version equals t.Version
// and returns ErrVersionConflict otherwise.
type Repository interface {
	GetByID(ctx context.Context, transferID string) (Transfer, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Transfer, int, error)
	Create(ctx context.Context, t Transfer) (Transfer, error)
	Update(ctx context.Context, t Transfer) (Transfer, error)
}
