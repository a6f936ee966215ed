package player

import (
	"context"
	"errors"
)

var ErrVersionConflict = errors.New("player was modified concurrently")

// Repository describes player persistence needs from use cases.
// Update stores the whole record only if the stored version equals p.Version
// and returns the record with its bumped version.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	ListIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, p Player) (Player, error)
}
