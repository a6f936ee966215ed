package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidState          = errors.New("invalid state")
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classifyDomainError tags domain errors with the use case error they surface as.
// Errors without a known domain cause are returned unchanged.
func classifyDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, transfer.ErrNegotiationNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, transfer.ErrNegotiationClosed),
		errors.Is(err, transfer.ErrAlreadyAccepted),
		errors.Is(err, transfer.ErrInvalidTransition):
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	case errors.Is(err, transfer.ErrVersionConflict),
		errors.Is(err, player.ErrVersionConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, transfer.ErrInvalidPrice),
		errors.Is(err, transfer.ErrInvalidStatus),
		errors.Is(err, transfer.ErrInvalidType),
		errors.Is(err, transfer.ErrInvalidLoanDuration),
		errors.Is(err, transfer.ErrSameClub),
		errors.Is(err, player.ErrInvalidPosition),
		errors.Is(err, player.ErrInvalidStatistic):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
