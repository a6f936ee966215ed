package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/transfer-market/internal/mocks/domain/player"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

var playerServiceNow = time.Date(2026, 5, 15, 8, 0, 0, 0, time.UTC)

func strikerAgedTwenty() player.Player {
	contractEnd := playerServiceNow.AddDate(0, 40, 0)
	return player.Player{
		ID:              "pl-striker",
		FirstName:       "Test",
		LastName:        "Striker",
		DateOfBirth:     playerServiceNow.AddDate(-20, 0, 0),
		Position:        player.PositionStriker,
		CurrentClubID:   "club-a",
		ContractEndDate: &contractEnd,
		Version:         1,
	}
}

func newPlayerServiceWith(repo player.Repository) *PlayerService {
	service := NewPlayerService(repo, 3, logging.NewNop())
	service.now = func() time.Time { return playerServiceNow }
	return service
}

func TestPlayerService_AddSeasonStatisticRecomputesValue(t *testing.T) {
	repo := memory.NewPlayerRepository([]player.Player{strikerAgedTwenty()})
	service := newPlayerServiceWith(repo)

	stored, err := service.AddSeasonStatistic(context.Background(), AddSeasonStatisticInput{
		PlayerID:  "pl-striker",
		Statistic: player.SeasonStatistic{Season: "2025/26", Goals: 10, Assists: 5, MinutesPlayed: 2000},
	})
	require.NoError(t, err)
	require.Equal(t, int64(290000), stored.MarketValue)
	require.Len(t, stored.Statistics, 1)
	require.Equal(t, int64(2), stored.Version)
}

func TestPlayerService_AddSeasonStatisticValidates(t *testing.T) {
	service := newPlayerServiceWith(memory.NewPlayerRepository([]player.Player{strikerAgedTwenty()}))

	_, err := service.AddSeasonStatistic(context.Background(), AddSeasonStatisticInput{
		PlayerID:  "pl-striker",
		Statistic: player.SeasonStatistic{Season: "2025/26", Goals: -1},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.AddSeasonStatistic(context.Background(), AddSeasonStatisticInput{
		PlayerID:  "missing",
		Statistic: player.SeasonStatistic{Season: "2025/26"},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlayerService_GetValuationBreakdown(t *testing.T) {
	p := strikerAgedTwenty()
	p.Statistics = []player.SeasonStatistic{{Season: "2025/26", Goals: 10, Assists: 5, MinutesPlayed: 2000}}
	service := newPlayerServiceWith(memory.NewPlayerRepository([]player.Player{p}))

	got, err := service.GetValuation(context.Background(), "pl-striker")
	require.NoError(t, err)
	require.Equal(t, 20, got.Valuation.Age)
	require.Equal(t, int64(100000), got.Valuation.BaseValue)
	require.Equal(t, 1.1, got.Valuation.ContractMultiplier)
	require.Equal(t, int64(290000), got.Valuation.MarketValue)
}

func TestPlayerService_HandleTransferCompletedRetriesOnConflictUsingMockery(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := newPlayerServiceWith(repo)
	ctx := context.Background()
	completedAt := playerServiceNow

	stale := strikerAgedTwenty()
	fresh := strikerAgedTwenty()
	fresh.Version = 2

	repo.On("GetByID", ctx, "pl-striker").Return(stale, true, nil).Once()
	repo.On("Update", ctx, mock.MatchedBy(func(p player.Player) bool { return p.Version == 1 })).
		Return(player.Player{}, player.ErrVersionConflict).
		Once()
	repo.On("GetByID", ctx, "pl-striker").Return(fresh, true, nil).Once()
	repo.On("Update", ctx, mock.MatchedBy(func(p player.Player) bool {
		if p.Version != 2 || p.CurrentClubID != "club-b" || len(p.CareerHistory) != 1 {
			return false
		}
		entry := p.CareerHistory[0]
		return entry.ClubID == "club-b" && entry.TransferID == "tr-1" && entry.TransferFee != nil && *entry.TransferFee == 250000 && entry.StartDate.Equal(completedAt)
	})).
		Return(func(_ context.Context, p player.Player) (player.Player, error) {
			p.Version++
			return p, nil
		}).
		Once()

	err := service.HandleTransferCompleted(ctx, transfer.CompletedEvent{
		TransferID:  "tr-1",
		PlayerID:    "pl-striker",
		FromClubID:  "club-a",
		ToClubID:    "club-b",
		Fee:         250000,
		CompletedAt: completedAt,
	})
	require.NoError(t, err)
}

func TestPlayerService_HandleTransferCompletedSkipsRedeliveryUsingMockery(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := newPlayerServiceWith(repo)
	ctx := context.Background()

	moved := strikerAgedTwenty()
	moved.JoinClub("club-b", "tr-1", playerServiceNow, 250000, false)
	repo.On("GetByID", ctx, "pl-striker").Return(moved, true, nil).Once()

	err := service.HandleTransferCompleted(ctx, transfer.CompletedEvent{TransferID: "tr-1", PlayerID: "pl-striker", ToClubID: "club-b", Fee: 250000})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPlayerService_HandleTransferCompletedGivesUpAfterRepeatedConflicts(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := newPlayerServiceWith(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "pl-striker").Return(strikerAgedTwenty(), true, nil).Times(maxPlayerSaveAttempts)
	repo.On("Update", ctx, mock.Anything).Return(player.Player{}, player.ErrVersionConflict).Times(maxPlayerSaveAttempts)

	err := service.HandleTransferCompleted(ctx, &transfer.CompletedEvent{PlayerID: "pl-striker", ToClubID: "club-b", Fee: 1})
	require.ErrorIs(t, err, ErrConflict)
}

func TestPlayerService_HandleTransferCompletedRejectsUnknownEvent(t *testing.T) {
	service := newPlayerServiceWith(memory.NewPlayerRepository(nil))

	err := service.HandleTransferCompleted(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlayerService_RevalueAllUpdatesStaleValues(t *testing.T) {
	stale := strikerAgedTwenty()
	stale.MarketValue = 1000

	current := strikerAgedTwenty()
	current.ID = "pl-current"
	current.MarketValue = player.CalculateMarketValue(current, playerServiceNow)

	repo := memory.NewPlayerRepository([]player.Player{stale, current})
	service := newPlayerServiceWith(repo)

	result, err := service.RevalueAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Equal(t, 1, result.Updated)
	require.Equal(t, 1, result.Unchanged)
	require.Zero(t, result.Failed)
	require.Equal(t, 2, result.WorkerCount)

	refreshed, _, _ := repo.GetByID(context.Background(), "pl-striker")
	require.Equal(t, player.CalculateMarketValue(refreshed, playerServiceNow), refreshed.MarketValue)
}

func TestPlayerService_RevalueAllListError(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	boom := errors.New("db down")
	repo.On("ListIDs", mock.Anything).Return(nil, boom).Once()

	_, err := newPlayerServiceWith(repo).RevalueAll(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestPlayerService_RevalueAllEmpty(t *testing.T) {
	result, err := newPlayerServiceWith(memory.NewPlayerRepository(nil)).RevalueAll(context.Background())
	require.NoError(t, err)
	require.Zero(t, result.Total)
}
