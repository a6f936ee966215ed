package transfer

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNegotiationClosed   = errors.New("transfer is not open for negotiation")
	ErrNegotiationNotFound = errors.New("negotiation not found")
	ErrAlreadyAccepted     = errors.New("negotiation already accepted")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// allowedTransitions is the guarded lifecycle. Rejected and cancelled are reachable from any non-terminal status.
var allowedTransitions = map[Status][]Status{
	StatusInitiated:   {StatusNegotiating},
	StatusNegotiating: {StatusAgreed},
	StatusAgreed:      {StatusCompleted},
}

// CanTransition reports whether the guarded lifecycle allows moving from s to target.
func (s Status) CanTransition(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusRejected || target == StatusCancelled {
		return true
	}
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// SubmitNegotiation appends an offer and moves an initiated transfer into negotiating.
func (t *Transfer) SubmitNegotiation(n Negotiation) error {
	if !t.Status.IsOpenForNegotiation() {
		return fmt.Errorf("%w: status is %s", ErrNegotiationClosed, t.Status)
	}
	if n.ProposedPrice <= 0 {
		return fmt.Errorf("proposed %w", ErrInvalidPrice)
	}

	n.Accepted = false
	n.AcceptedBy = ""
	n.AcceptedAt = nil
	t.Negotiations = append(t.Negotiations, n)
	if t.Status == StatusInitiated {
		t.Status = StatusNegotiating
	}
	t.UpdatedAt = n.ProposedAt
	return nil
}

// AcceptNegotiation marks an offer accepted and agrees the transfer at its price.
// Other offers are left untouched.
func (t *Transfer) AcceptNegotiation(negotiationID, acceptedBy string, at time.Time) (Negotiation, error) {
	idx := -1
	for i := range t.Negotiations {
		if t.Negotiations[i].ID == negotiationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Negotiation{}, fmt.Errorf("%w: %s", ErrNegotiationNotFound, negotiationID)
	}
	if t.Negotiations[idx].Accepted {
		return Negotiation{}, fmt.Errorf("%w: %s", ErrAlreadyAccepted, negotiationID)
	}
	if !t.Status.IsOpenForNegotiation() {
		return Negotiation{}, fmt.Errorf("%w: status is %s", ErrNegotiationClosed, t.Status)
	}

	acceptedAt := at
	n := &t.Negotiations[idx]
	n.Accepted = true
	n.AcceptedBy = acceptedBy
	n.AcceptedAt = &acceptedAt

	price := n.ProposedPrice
	t.FinalPrice = &price
	t.Status = StatusAgreed
	t.UpdatedAt = at
	return *n, nil
}

// Transition moves the transfer along the guarded lifecycle.
// It returns a completion event when the move completes a permanent transfer.
func (t *Transfer) Transition(target Status, at time.Time) (*CompletedEvent, error) {
	if _, ok := AllStatuses[target]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, target)
	}
	if !t.Status.CanTransition(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, target)
	}
	return t.applyStatus(target, at), nil
}

// OverrideStatus sets any status from any status. Callers must restrict it to privileged actors.
func (t *Transfer) OverrideStatus(target Status, at time.Time) (*CompletedEvent, error) {
	if _, ok := AllStatuses[target]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, target)
	}
	return t.applyStatus(target, at), nil
}

func (t *Transfer) applyStatus(target Status, at time.Time) *CompletedEvent {
	t.Status = target
	t.UpdatedAt = at
	if target != StatusCompleted {
		return nil
	}

	completedAt := at
	t.CompletedAt = &completedAt
	if t.Type != TypePermanent {
		return nil
	}
	return &CompletedEvent{
		TransferID:  t.ID,
		PlayerID:    t.PlayerID,
		FromClubID:  t.FromClubID,
		ToClubID:    t.ToClubID,
		Fee:         t.AgreedFee(),
		CompletedAt: completedAt,
	}
}
