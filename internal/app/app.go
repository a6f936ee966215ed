package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/transfer-market/internal/config"
	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/account/jwtauth"
	cacherepo "github.com/riskibarqy/transfer-market/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/webhook"
	"github.com/riskibarqy/transfer-market/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/transfer-market/internal/platform/cache"
	"github.com/riskibarqy/transfer-market/internal/platform/eventbus"
	idgen "github.com/riskibarqy/transfer-market/internal/platform/id"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
	"github.com/riskibarqy/transfer-market/internal/platform/resilience"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

type repositories struct {
	transfers transfer.Repository
	players   player.Repository
	clubs     club.Repository
	close     func() error
}

// NewHTTPServer wires repositories, services and the router. The returned cleanup releases the database pool.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	clubRepo := repos.clubs
	if cfg.CacheEnabled {
		clubRepo = cacherepo.NewClubRepository(clubRepo, basecache.NewStore(cfg.CacheTTL))
	}

	bus := eventbus.New(logger)
	playerSvc := usecase.NewPlayerService(repos.players, cfg.RevalueWorkers, logger)
	bus.Subscribe(transfer.EventTransferCompleted, "player_club_move", playerSvc.HandleTransferCompleted)

	if cfg.WebhookEnabled {
		publisher := webhook.NewPublisher(webhook.PublisherConfig{
			URL:     cfg.WebhookURL,
			Token:   cfg.WebhookToken,
			Timeout: cfg.WebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
			},
		}, logger)
		bus.SubscribeOptional(transfer.EventTransferCompleted, "event_webhook", publisher.Handle)
	}

	transferSvc := usecase.NewTransferService(
		repos.transfers,
		repos.players,
		clubRepo,
		bus,
		idgen.NewUUIDGenerator(),
		logger,
	)

	if cfg.AuthJWTSecret == "" {
		logger.Warn("AUTH_JWT_SECRET is empty, authenticated routes will answer 503")
	}
	verifier := jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer, logger)

	handler := httpapi.NewHandler(transferSvc, playerSvc, logger)
	router := httpapi.NewRouter(
		handler,
		verifier,
		logger,
		cfg.SwaggerEnabled,
		cfg.CORSAllowedOrigins,
		cfg.InternalJobToken,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if !cfg.DBEnabled {
		logger.Info("using in-memory repositories", "reason", "DB_ENABLED=false")
		return repositories{
			transfers: memory.NewTransferRepository(),
			players:   memory.NewPlayerRepository(memory.SeedPlayers(time.Now().UTC())),
			clubs:     memory.NewClubRepository(memory.SeedClubs()),
			close:     func() error { return nil },
		}, nil
	}

	db, err := openDB(ctx, cfg, logger)
	if err != nil {
		return repositories{}, err
	}
	if err := postgres.BootstrapSeed(ctx, db, time.Now().UTC()); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	return repositories{
		transfers: postgres.NewTransferRepository(db),
		players:   postgres.NewPlayerRepository(db),
		clubs:     postgres.NewClubRepository(db),
		close:     db.Close,
	}, nil
}
