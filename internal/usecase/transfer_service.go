package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/platform/eventbus"
	idgen "github.com/riskibarqy/transfer-market/internal/platform/id"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

const (
	defaultTransferPageSize = 10
	maxTransferPageSize     = 100
)

// EventPublisher delivers domain events to their subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event) error
}

type InitiateTransferInput struct {
	ActorID            string
	PlayerID           string
	FromClubID         string
	ToClubID           string
	TransferType       string
	LoanDurationMonths int
	AskingPrice        int64
}

type SubmitNegotiationInput struct {
	TransferID    string
	ActorID       string
	ProposedPrice int64
	Message       string
}

type AcceptNegotiationInput struct {
	TransferID    string
	NegotiationID string
	ActorID       string
}

type ChangeTransferStatusInput struct {
	TransferID string
	ActorID    string
	Status     string
}

type ListTransfersInput struct {
	Status string
	Page   int
	Limit  int
}

// TransferPage is one page of transfers, newest first.
type TransferPage struct {
	Transfers []transfer.Transfer
	Page      int
	Limit     int
	Pages     int
	Total     int
}

type TransferService struct {
	transferRepo transfer.Repository
	playerRepo   player.Repository
	clubRepo     club.Repository
	events       EventPublisher
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewTransferService(
	transferRepo transfer.Repository,
	playerRepo player.Repository,
	clubRepo club.Repository,
	events EventPublisher,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TransferService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TransferService{
		transferRepo: transferRepo,
		playerRepo:   playerRepo,
		clubRepo:     clubRepo,
		events:       events,
		idGen:        idGen,
		logger:       logger.Named("transfer_service"),
		now:          time.Now,
	}
}

func (s *TransferService) InitiateTransfer(ctx context.Context, input InitiateTransferInput) (transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.InitiateTransfer")
	var err error
	defer func() { endSpan(span, err) }()

	input.ActorID = strings.TrimSpace(input.ActorID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.FromClubID = strings.TrimSpace(input.FromClubID)
	input.ToClubID = strings.TrimSpace(input.ToClubID)

	if input.ActorID == "" {
		err = fmt.Errorf("%w: acting user is required", ErrUnauthorized)
		return transfer.Transfer{}, err
	}
	if input.PlayerID == "" || input.FromClubID == "" || input.ToClubID == "" {
		err = fmt.Errorf("%w: player, fromClub and toClub are required", ErrInvalidInput)
		return transfer.Transfer{}, err
	}
	transferType, typeErr := transfer.ParseType(input.TransferType)
	if typeErr != nil {
		err = classifyDomainError(typeErr)
		return transfer.Transfer{}, err
	}

	if err = s.ensurePlayerExists(ctx, input.PlayerID); err != nil {
		return transfer.Transfer{}, err
	}
	for _, clubID := range []string{input.FromClubID, input.ToClubID} {
		if err = s.ensureClubExists(ctx, clubID); err != nil {
			return transfer.Transfer{}, err
		}
	}

	transferID, idErr := s.idGen.NewID()
	if idErr != nil {
		err = fmt.Errorf("generate transfer id: %w", idErr)
		return transfer.Transfer{}, err
	}

	created, newErr := transfer.New(transfer.NewTransferParams{
		ID:                 transferID,
		PlayerID:           input.PlayerID,
		FromClubID:         input.FromClubID,
		ToClubID:           input.ToClubID,
		InitiatedBy:        input.ActorID,
		Type:               transferType,
		LoanDurationMonths: input.LoanDurationMonths,
		AskingPrice:        input.AskingPrice,
		CreatedAt:          s.now().UTC(),
	})
	if newErr != nil {
		err = classifyDomainError(newErr)
		return transfer.Transfer{}, err
	}

	stored, createErr := s.transferRepo.Create(ctx, created)
	if createErr != nil {
		err = fmt.Errorf("create transfer: %w", classifyDomainError(createErr))
		return transfer.Transfer{}, err
	}

	s.logger.InfoContext(ctx, "transfer initiated",
		"transfer_id", stored.ID,
		"player_id", stored.PlayerID,
		"from_club_id", stored.FromClubID,
		"to_club_id", stored.ToClubID,
		"transfer_type", string(stored.Type),
		"asking_price", stored.AskingPrice,
		"actor_id", input.ActorID,
	)
	return stored, nil
}

func (s *TransferService) GetTransfer(ctx context.Context, transferID string) (transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.GetTransfer")
	defer span.End()

	return s.loadTransfer(ctx, transferID)
}

func (s *TransferService) ListTransfers(ctx context.Context, input ListTransfersInput) (TransferPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.ListTransfers")
	defer span.End()

	filter := transfer.ListFilter{}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, err := transfer.ParseStatus(raw)
		if err != nil {
			return TransferPage{}, classifyDomainError(err)
		}
		filter.Status = status
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultTransferPageSize
	}
	if limit > maxTransferPageSize {
		limit = maxTransferPageSize
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	items, total, err := s.transferRepo.List(ctx, filter)
	if err != nil {
		return TransferPage{}, fmt.Errorf("list transfers: %w", err)
	}

	return TransferPage{
		Transfers: items,
		Page:      page,
		Limit:     limit,
		Pages:     (total + limit - 1) / limit,
		Total:     total,
	}, nil
}

func (s *TransferService) SubmitNegotiation(ctx context.Context, input SubmitNegotiationInput) (transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.SubmitNegotiation",
		attribute.String("transfer.id", input.TransferID),
	)
	var err error
	defer func() { endSpan(span, err) }()

	input.ActorID = strings.TrimSpace(input.ActorID)
	if input.ActorID == "" {
		err = fmt.Errorf("%w: acting user is required", ErrUnauthorized)
		return transfer.Transfer{}, err
	}
	if input.ProposedPrice <= 0 {
		err = fmt.Errorf("%w: proposedPrice must be greater than zero", ErrInvalidInput)
		return transfer.Transfer{}, err
	}

	current, loadErr := s.loadTransfer(ctx, input.TransferID)
	if loadErr != nil {
		err = loadErr
		return transfer.Transfer{}, err
	}

	negotiationID, idErr := s.idGen.NewID()
	if idErr != nil {
		err = fmt.Errorf("generate negotiation id: %w", idErr)
		return transfer.Transfer{}, err
	}

	next := current.Clone()
	if submitErr := next.SubmitNegotiation(transfer.Negotiation{
		ID:            negotiationID,
		ProposedPrice: input.ProposedPrice,
		Message:       strings.TrimSpace(input.Message),
		ProposedBy:    input.ActorID,
		ProposedAt:    s.now().UTC(),
	}); submitErr != nil {
		err = classifyDomainError(submitErr)
		return transfer.Transfer{}, err
	}

	stored, saveErr := s.save(ctx, next)
	if saveErr != nil {
		err = saveErr
		return transfer.Transfer{}, err
	}

	s.logger.InfoContext(ctx, "negotiation submitted",
		"transfer_id", stored.ID,
		"negotiation_id", negotiationID,
		"proposed_price", input.ProposedPrice,
		"status", string(stored.Status),
		"actor_id", input.ActorID,
	)
	return stored, nil
}

func (s *TransferService) AcceptNegotiation(ctx context.Context, input AcceptNegotiationInput) (transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.AcceptNegotiation",
		attribute.String("transfer.id", input.TransferID),
		attribute.String("negotiation.id", input.NegotiationID),
	)
	var err error
	defer func() { endSpan(span, err) }()

	input.ActorID = strings.TrimSpace(input.ActorID)
	input.NegotiationID = strings.TrimSpace(input.NegotiationID)
	if input.ActorID == "" {
		err = fmt.Errorf("%w: acting user is required", ErrUnauthorized)
		return transfer.Transfer{}, err
	}
	if input.NegotiationID == "" {
		err = fmt.Errorf("%w: negotiation id is required", ErrInvalidInput)
		return transfer.Transfer{}, err
	}

	current, loadErr := s.loadTransfer(ctx, input.TransferID)
	if loadErr != nil {
		err = loadErr
		return transfer.Transfer{}, err
	}

	next := current.Clone()
	accepted, acceptErr := next.AcceptNegotiation(input.NegotiationID, input.ActorID, s.now().UTC())
	if acceptErr != nil {
		err = classifyDomainError(acceptErr)
		return transfer.Transfer{}, err
	}

	stored, saveErr := s.save(ctx, next)
	if saveErr != nil {
		err = saveErr
		return transfer.Transfer{}, err
	}

	s.logger.InfoContext(ctx, "negotiation accepted",
		"transfer_id", stored.ID,
		"negotiation_id", accepted.ID,
		"final_price", accepted.ProposedPrice,
		"actor_id", input.ActorID,
	)
	return stored, nil
}

// UpdateStatus is the administrative override: any status may be set from any status.
// Setting completed again on a completed transfer redelivers the completion to subscribers.
func (s *TransferService) UpdateStatus(ctx context.Context, input ChangeTransferStatusInput) (transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.UpdateStatus",
		attribute.String("transfer.id", input.TransferID),
	)
	var err error
	defer func() { endSpan(span, err) }()

	stored, previous, err := s.changeStatus(ctx, input, func(t *transfer.Transfer, target transfer.Status, at time.Time) (*transfer.CompletedEvent, error) {
		return t.OverrideStatus(target, at)
	})
	if stored.ID == "" {
		return transfer.Transfer{}, err
	}

	s.logger.WarnContext(ctx, "transfer status overridden",
		"audit", true,
		"transfer_id", stored.ID,
		"from_status", string(previous),
		"to_status", string(stored.Status),
		"actor_id", strings.TrimSpace(input.ActorID),
	)
	return stored, err
}

// TransitionStatus moves a transfer along the guarded lifecycle only.
func (s *TransferService) TransitionStatus(ctx context.Context, input ChangeTransferStatusInput) (transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.TransitionStatus",
		attribute.String("transfer.id", input.TransferID),
	)
	var err error
	defer func() { endSpan(span, err) }()

	stored, previous, err := s.changeStatus(ctx, input, func(t *transfer.Transfer, target transfer.Status, at time.Time) (*transfer.CompletedEvent, error) {
		return t.Transition(target, at)
	})
	if stored.ID == "" {
		return transfer.Transfer{}, err
	}

	s.logger.InfoContext(ctx, "transfer status changed",
		"transfer_id", stored.ID,
		"from_status", string(previous),
		"to_status", string(stored.Status),
		"actor_id", strings.TrimSpace(input.ActorID),
	)
	return stored, err
}

type statusChange func(t *transfer.Transfer, target transfer.Status, at time.Time) (*transfer.CompletedEvent, error)

// changeStatus returns the stored transfer alongside an ErrDependencyUnavailable error when
// the status was written but the completion could not be propagated.
func (s *TransferService) changeStatus(ctx context.Context, input ChangeTransferStatusInput, apply statusChange) (transfer.Transfer, transfer.Status, error) {
	if strings.TrimSpace(input.ActorID) == "" {
		return transfer.Transfer{}, "", fmt.Errorf("%w: acting user is required", ErrUnauthorized)
	}
	target, err := transfer.ParseStatus(input.Status)
	if err != nil {
		return transfer.Transfer{}, "", classifyDomainError(err)
	}

	current, err := s.loadTransfer(ctx, input.TransferID)
	if err != nil {
		return transfer.Transfer{}, "", err
	}

	next := current.Clone()
	event, err := apply(&next, target, s.now().UTC())
	if err != nil {
		return transfer.Transfer{}, "", classifyDomainError(err)
	}

	stored, err := s.save(ctx, next)
	if err != nil {
		return transfer.Transfer{}, "", err
	}

	if event != nil {
		if err := s.publishCompleted(ctx, *event); err != nil {
			return stored, current.Status, err
		}
	}
	return stored, current.Status, nil
}

// publishCompleted runs the completion subscribers detached from request cancellation.
func (s *TransferService) publishCompleted(ctx context.Context, event transfer.CompletedEvent) error {
	if s.events == nil {
		s.logger.ErrorContext(ctx, "no event publisher configured, completion not propagated",
			"transfer_id", event.TransferID,
			"player_id", event.PlayerID,
		)
		return fmt.Errorf("%w: transfer=%s completed but no event publisher is configured", ErrDependencyUnavailable, event.TransferID)
	}
	if err := s.events.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.ErrorContext(ctx, "propagate transfer completion",
			"transfer_id", event.TransferID,
			"player_id", event.PlayerID,
			"to_club_id", event.ToClubID,
			"error", err,
		)
		return fmt.Errorf("%w: transfer=%s completed but player update failed, set status completed again to retry: %w",
			ErrDependencyUnavailable, event.TransferID, err)
	}
	return nil
}

func (s *TransferService) loadTransfer(ctx context.Context, transferID string) (transfer.Transfer, error) {
	transferID = strings.TrimSpace(transferID)
	if transferID == "" {
		return transfer.Transfer{}, fmt.Errorf("%w: transfer id is required", ErrInvalidInput)
	}

	item, exists, err := s.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("get transfer: %w", err)
	}
	if !exists {
		return transfer.Transfer{}, fmt.Errorf("%w: transfer=%s", ErrNotFound, transferID)
	}
	return item, nil
}

func (s *TransferService) save(ctx context.Context, t transfer.Transfer) (transfer.Transfer, error) {
	stored, err := s.transferRepo.Update(ctx, t)
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("update transfer: %w", classifyDomainError(err))
	}
	return stored, nil
}

func (s *TransferService) ensurePlayerExists(ctx context.Context, playerID string) error {
	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return nil
}

func (s *TransferService) ensureClubExists(ctx context.Context, clubID string) error {
	_, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return fmt.Errorf("get club: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}
	return nil
}
