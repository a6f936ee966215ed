package club

import "context"

// Repository describes club lookups needed by the transfer workflow.
type Repository interface {
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
}
