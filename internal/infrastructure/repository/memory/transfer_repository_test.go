package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

func seedTransfer(t *testing.T, repo *TransferRepository, id string, status transfer.Status, createdAt time.Time) transfer.Transfer {
	t.Helper()

	item, err := transfer.New(transfer.NewTransferParams{
		ID:          id,
		PlayerID:    "player-1",
		FromClubID:  ClubIDArsenal,
		ToClubID:    ClubIDLiverpool,
		AskingPrice: 1000,
		CreatedAt:   createdAt,
	})
	if err != nil {
		t.Fatalf("new transfer: %v", err)
	}
	item.Status = status

	stored, err := repo.Create(context.Background(), item)
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	return stored
}

func TestTransferRepository_UpdateChecksVersion(t *testing.T) {
	repo := NewTransferRepository()
	ctx := context.Background()
	created := seedTransfer(t, repo, "t-1", transfer.StatusInitiated, time.Now())

	if created.Version != 1 {
		t.Fatalf("created version = %d, want 1", created.Version)
	}

	first := created.Clone()
	first.Status = transfer.StatusNegotiating
	updated, err := repo.Update(ctx, first)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("updated version = %d, want 2", updated.Version)
	}

	stale := created.Clone()
	stale.Status = transfer.StatusCancelled
	if _, err := repo.Update(ctx, stale); !errors.Is(err, transfer.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict for stale write, got %v", err)
	}

	got, _, _ := repo.GetByID(ctx, "t-1")
	if got.Status != transfer.StatusNegotiating {
		t.Fatalf("stale write leaked: status = %s", got.Status)
	}
}

func TestTransferRepository_CreateRejectsDuplicateID(t *testing.T) {
	repo := NewTransferRepository()
	item := seedTransfer(t, repo, "t-1", transfer.StatusInitiated, time.Now())

	if _, err := repo.Create(context.Background(), item); !errors.Is(err, transfer.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestTransferRepository_ListFiltersAndPagesNewestFirst(t *testing.T) {
	repo := NewTransferRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedTransfer(t, repo, "t-1", transfer.StatusInitiated, base)
	seedTransfer(t, repo, "t-2", transfer.StatusNegotiating, base.Add(time.Hour))
	seedTransfer(t, repo, "t-3", transfer.StatusInitiated, base.Add(2*time.Hour))
	seedTransfer(t, repo, "t-4", transfer.StatusInitiated, base.Add(3*time.Hour))

	items, total, err := repo.List(context.Background(), transfer.ListFilter{Status: transfer.StatusInitiated, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(items) != 2 || items[0].ID != "t-4" || items[1].ID != "t-3" {
		t.Fatalf("unexpected first page: %+v", items)
	}

	items, _, _ = repo.List(context.Background(), transfer.ListFilter{Status: transfer.StatusInitiated, Offset: 2, Limit: 2})
	if len(items) != 1 || items[0].ID != "t-1" {
		t.Fatalf("unexpected second page: %+v", items)
	}

	items, total, _ = repo.List(context.Background(), transfer.ListFilter{Offset: 10, Limit: 2})
	if len(items) != 0 || total != 4 {
		t.Fatalf("expected empty page past the end, got %d items total=%d", len(items), total)
	}
}

func TestTransferRepository_ReturnsCopies(t *testing.T) {
	repo := NewTransferRepository()
	ctx := context.Background()
	item := seedTransfer(t, repo, "t-1", transfer.StatusNegotiating, time.Now())
	item.Negotiations = append(item.Negotiations, transfer.Negotiation{ID: "n-1", ProposedPrice: 5})
	if _, err := repo.Update(ctx, item); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _, _ := repo.GetByID(ctx, "t-1")
	got.Negotiations[0].ProposedPrice = 999

	again, _, _ := repo.GetByID(ctx, "t-1")
	if again.Negotiations[0].ProposedPrice != 5 {
		t.Fatal("repository handed out shared negotiation memory")
	}
}
