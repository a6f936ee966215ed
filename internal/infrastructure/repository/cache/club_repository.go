package cache

import (
	"context"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	basecache "github.com/riskibarqy/transfer-market/internal/platform/cache"
)

// ClubRepository caches club lookups, including misses, for the store TTL.
type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	key := "club:id:" + clubID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return cachedClubByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClubByID)
	return cached.value, cached.exists, nil
}

type cachedClubByID struct {
	value  club.Club
	exists bool
}
