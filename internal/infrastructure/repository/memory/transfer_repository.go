package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

type TransferRepository struct {
	mu    sync.RWMutex
	items map[string]transfer.Transfer
}

func NewTransferRepository() *TransferRepository {
	return &TransferRepository{items: make(map[string]transfer.Transfer)}
}

func (r *TransferRepository) GetByID(_ context.Context, transferID string) (transfer.Transfer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[transferID]
	if !ok {
		return transfer.Transfer{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *TransferRepository) List(_ context.Context, filter transfer.ListFilter) ([]transfer.Transfer, int, error) {
	r.mu.RLock()
	matched := make([]transfer.Transfer, 0, len(r.items))
	for _, item := range r.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		matched = append(matched, item)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := filter.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}

	out := make([]transfer.Transfer, 0, end-start)
	for _, item := range matched[start:end] {
		out = append(out, item.Clone())
	}
	return out, total, nil
}

func (r *TransferRepository) Create(_ context.Context, t transfer.Transfer) (transfer.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; exists {
		return transfer.Transfer{}, fmt.Errorf("%w: transfer %s already exists", transfer.ErrVersionConflict, t.ID)
	}

	stored := t.Clone()
	stored.Version = 1
	r.items[t.ID] = stored
	return stored.Clone(), nil
}

func (r *TransferRepository) Update(_ context.Context, t transfer.Transfer) (transfer.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[t.ID]
	if !exists {
		return transfer.Transfer{}, fmt.Errorf("%w: transfer %s no longer exists", transfer.ErrVersionConflict, t.ID)
	}
	if current.Version != t.Version {
		return transfer.Transfer{}, fmt.Errorf("%w: transfer %s expected version %d, stored %d", transfer.ErrVersionConflict, t.ID, t.Version, current.Version)
	}

	stored := t.Clone()
	stored.Version = current.Version + 1
	r.items[t.ID] = stored
	return stored.Clone(), nil
}
