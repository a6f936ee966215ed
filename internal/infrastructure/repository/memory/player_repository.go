package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		stored := p.Clone()
		if stored.Version == 0 {
			stored.Version = 1
		}
		items[p.ID] = stored
	}
	return &PlayerRepository{items: items}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return p.Clone(), true, nil
}

func (r *PlayerRepository) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids, nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[p.ID]
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player %s no longer exists", player.ErrVersionConflict, p.ID)
	}
	if current.Version != p.Version {
		return player.Player{}, fmt.Errorf("%w: player %s expected version %d, stored %d", player.ErrVersionConflict, p.ID, p.Version, current.Version)
	}

	stored := p.Clone()
	stored.Version = current.Version + 1
	r.items[p.ID] = stored
	return stored.Clone(), nil
}
