package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/platform/eventbus"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

const (
	defaultRevalueWorkers = 4
	maxPlayerSaveAttempts = 3
)

type AddSeasonStatisticInput struct {
	PlayerID  string
	Statistic player.SeasonStatistic
}

// PlayerValuation is a live valuation next to the stored player record.
type PlayerValuation struct {
	Player    player.Player
	Valuation player.Valuation
}

// RevaluationResult summarises a batch revaluation run.
type RevaluationResult struct {
	Total       int
	Updated     int
	Unchanged   int
	Failed      int
	WorkerCount int
	DurationMs  int64
}

type PlayerService struct {
	playerRepo     player.Repository
	logger         *logging.Logger
	revalueWorkers int
	now            func() time.Time
}

func NewPlayerService(playerRepo player.Repository, revalueWorkers int, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	if revalueWorkers < 1 {
		revalueWorkers = defaultRevalueWorkers
	}

	return &PlayerService{
		playerRepo:     playerRepo,
		logger:         logger.Named("player_service"),
		revalueWorkers: revalueWorkers,
		now:            time.Now,
	}
}

// SavePlayer recomputes the market value and stores the whole record.
// Every player write goes through here so the stored value matches the estimator at save time.
func (s *PlayerService) SavePlayer(ctx context.Context, p player.Player) (player.Player, error) {
	now := s.now().UTC()
	p.MarketValue = player.CalculateMarketValue(p, now)
	p.UpdatedAt = now
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	stored, err := s.playerRepo.Update(ctx, p)
	if err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", classifyDomainError(err))
	}
	return stored, nil
}

func (s *PlayerService) GetValuation(ctx context.Context, playerID string) (PlayerValuation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetValuation")
	defer span.End()

	p, err := s.loadPlayer(ctx, playerID)
	if err != nil {
		return PlayerValuation{}, err
	}
	return PlayerValuation{
		Player:    p,
		Valuation: player.Evaluate(p, s.now().UTC()),
	}, nil
}

func (s *PlayerService) AddSeasonStatistic(ctx context.Context, input AddSeasonStatisticInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AddSeasonStatistic")
	var err error
	defer func() { endSpan(span, err) }()

	if validateErr := input.Statistic.Validate(); validateErr != nil {
		err = classifyDomainError(validateErr)
		return player.Player{}, err
	}

	current, loadErr := s.loadPlayer(ctx, input.PlayerID)
	if loadErr != nil {
		err = loadErr
		return player.Player{}, err
	}

	next := current.Clone()
	next.AddStatistic(input.Statistic)
	stored, saveErr := s.SavePlayer(ctx, next)
	if saveErr != nil {
		err = saveErr
		return player.Player{}, err
	}

	s.logger.InfoContext(ctx, "season statistic recorded",
		"player_id", stored.ID,
		"season", strings.TrimSpace(input.Statistic.Season),
		"market_value", stored.MarketValue,
		"previous_market_value", current.MarketValue,
	)
	return stored, nil
}

// HandleTransferCompleted moves the player to the buying club and records the fee in the career history.
// It reloads and retries on concurrent player writes. Redelivery of the same transfer is a no-op.
func (s *PlayerService) HandleTransferCompleted(ctx context.Context, event eventbus.Event) error {
	completed, ok := completedEventFrom(event)
	if !ok {
		return fmt.Errorf("%w: unexpected event %T", ErrInvalidInput, event)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.HandleTransferCompleted")
	var err error
	defer func() { endSpan(span, err) }()

	for attempt := 1; attempt <= maxPlayerSaveAttempts; attempt++ {
		current, loadErr := s.loadPlayer(ctx, completed.PlayerID)
		if loadErr != nil {
			err = loadErr
			return err
		}

		if current.JoinedVia(completed.TransferID) {
			s.logger.InfoContext(ctx, "player move already applied",
				"player_id", current.ID,
				"transfer_id", completed.TransferID,
			)
			return nil
		}

		next := current.Clone()
		next.JoinClub(completed.ToClubID, completed.TransferID, completed.CompletedAt, completed.Fee, false)
		stored, saveErr := s.SavePlayer(ctx, next)
		if saveErr == nil {
			s.logger.InfoContext(ctx, "player moved after transfer",
				"player_id", stored.ID,
				"transfer_id", completed.TransferID,
				"to_club_id", completed.ToClubID,
				"fee", completed.Fee,
				"attempt", attempt,
			)
			return nil
		}
		if !errors.Is(saveErr, ErrConflict) {
			err = saveErr
			return err
		}
		s.logger.WarnContext(ctx, "player changed concurrently, retrying transfer completion",
			"player_id", completed.PlayerID,
			"transfer_id", completed.TransferID,
			"attempt", attempt,
		)
	}

	err = fmt.Errorf("%w: player=%s after %d attempts", ErrConflict, completed.PlayerID, maxPlayerSaveAttempts)
	return err
}

// RevalueAll recomputes every stored market value. Age-driven value drift between saves is caught up here.
func (s *PlayerService) RevalueAll(ctx context.Context) (RevaluationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.RevalueAll")
	defer span.End()

	start := s.now()
	ids, err := s.playerRepo.ListIDs(ctx)
	if err != nil {
		return RevaluationResult{}, fmt.Errorf("list player ids: %w", err)
	}

	workerCount := s.revalueWorkers
	if workerCount > len(ids) {
		workerCount = len(ids)
	}
	result := RevaluationResult{Total: len(ids), WorkerCount: workerCount}
	if len(ids) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RevaluationResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		updated   atomic.Int32
		unchanged atomic.Int32
		failed    atomic.Int32
		workers   sync.WaitGroup
	)
	for _, playerID := range ids {
		playerID := playerID
		workers.Add(1)
		if submitErr := pool.Submit(func() {
			defer workers.Done()

			changed, revalueErr := s.revalue(ctx, playerID)
			switch {
			case revalueErr != nil:
				failed.Add(1)
				s.logger.WarnContext(ctx, "revalue player failed", "player_id", playerID, "error", revalueErr)
			case changed:
				updated.Add(1)
			default:
				unchanged.Add(1)
			}
		}); submitErr != nil {
			workers.Done()
			workers.Wait()
			return RevaluationResult{}, fmt.Errorf("submit revaluation task: %w", submitErr)
		}
	}
	workers.Wait()

	result.Updated = int(updated.Load())
	result.Unchanged = int(unchanged.Load())
	result.Failed = int(failed.Load())
	result.DurationMs = s.now().Sub(start).Milliseconds()

	s.logger.InfoContext(ctx, "player revaluation finished",
		"total", result.Total,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"failed", result.Failed,
		"workers", result.WorkerCount,
	)
	return result, nil
}

func (s *PlayerService) revalue(ctx context.Context, playerID string) (bool, error) {
	current, err := s.loadPlayer(ctx, playerID)
	if err != nil {
		return false, err
	}
	if player.CalculateMarketValue(current, s.now().UTC()) == current.MarketValue {
		return false, nil
	}
	if _, err := s.SavePlayer(ctx, current.Clone()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PlayerService) loadPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}

func completedEventFrom(event eventbus.Event) (transfer.CompletedEvent, bool) {
	switch v := event.(type) {
	case transfer.CompletedEvent:
		return v, true
	case *transfer.CompletedEvent:
		if v == nil {
			return transfer.CompletedEvent{}, false
		}
		return *v, true
	default:
		return transfer.CompletedEvent{}, false
	}
}
