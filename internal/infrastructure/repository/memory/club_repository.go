package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
)

type ClubRepository struct {
	mu    sync.RWMutex
	items map[string]club.Club
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	items := make(map[string]club.Club, len(clubs))
	for _, c := range clubs {
		items[c.ID] = c
	}
	return &ClubRepository{items: items}
}

func (r *ClubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[clubID]
	return c, ok, nil
}
