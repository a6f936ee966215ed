package transfer

import (
	"errors"
	"testing"
	"time"
)

var baseTime = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestTransfer(t *testing.T, transferType Type) Transfer {
	t.Helper()

	params := NewTransferParams{
		ID:          "tr-1",
		PlayerID:    "pl-1",
		FromClubID:  "club-a",
		ToClubID:    "club-b",
		InitiatedBy: "u-manager",
		Type:        transferType,
		AskingPrice: 1000000,
		CreatedAt:   baseTime,
	}
	if transferType == TypeLoan {
		params.LoanDurationMonths = 6
	}
	tr, err := New(params)
	if err != nil {
		t.Fatalf("new transfer: %v", err)
	}
	return tr
}

func offer(id string, price int64, minute int) Negotiation {
	return Negotiation{
		ID:            id,
		ProposedPrice: price,
		ProposedBy:    "u-agent",
		ProposedAt:    baseTime.Add(time.Duration(minute) * time.Minute),
	}
}

func TestNewValidatesInput(t *testing.T) {
	valid := NewTransferParams{ID: "t", PlayerID: "p", FromClubID: "a", ToClubID: "b", AskingPrice: 1}

	tests := []struct {
		name      string
		mutate    func(*NewTransferParams)
		targetErr error
	}{
		{name: "defaults to permanent", mutate: func(*NewTransferParams) {}},
		{name: "zero asking price", mutate: func(p *NewTransferParams) { p.AskingPrice = 0 }, targetErr: ErrInvalidPrice},
		{name: "same club", mutate: func(p *NewTransferParams) { p.ToClubID = "a" }, targetErr: ErrSameClub},
		{name: "loan without duration", mutate: func(p *NewTransferParams) { p.Type = TypeLoan }, targetErr: ErrInvalidLoanDuration},
		{name: "permanent with duration", mutate: func(p *NewTransferParams) { p.LoanDurationMonths = 3 }, targetErr: ErrInvalidLoanDuration},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := valid
			tc.mutate(&params)

			tr, err := New(params)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if tr.Type != TypePermanent || tr.Status != StatusInitiated {
					t.Fatalf("unexpected transfer: %+v", tr)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestSubmitNegotiationMovesInitiatedToNegotiating(t *testing.T) {
	tr := newTestTransfer(t, TypePermanent)

	if err := tr.SubmitNegotiation(offer("n-1", 800000, 1)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if tr.Status != StatusNegotiating {
		t.Fatalf("status = %s, want negotiating", tr.Status)
	}

	if err := tr.SubmitNegotiation(offer("n-2", 800000, 2)); err != nil {
		t.Fatalf("submit duplicate price: %v", err)
	}
	if tr.Status != StatusNegotiating || len(tr.Negotiations) != 2 {
		t.Fatalf("unexpected transfer after second offer: %+v", tr)
	}
	if tr.Negotiations[0].ID != "n-1" || tr.Negotiations[1].ID != "n-2" {
		t.Fatalf("negotiations reordered: %+v", tr.Negotiations)
	}
}

func TestSubmitNegotiationRejectsNonPositivePrice(t *testing.T) {
	tr := newTestTransfer(t, TypePermanent)

	for _, price := range []int64{0, -5} {
		err := tr.SubmitNegotiation(offer("n", price, 1))
		if !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("price %d: expected ErrInvalidPrice, got %v", price, err)
		}
	}
	if tr.Status != StatusInitiated || len(tr.Negotiations) != 0 {
		t.Fatalf("transfer mutated on invalid offer: %+v", tr)
	}
}

func TestSubmitNegotiationGuardedByStatus(t *testing.T) {
	for _, status := range []Status{StatusAgreed, StatusCompleted, StatusRejected, StatusCancelled} {
		tr := newTestTransfer(t, TypePermanent)
		tr.Status = status

		err := tr.SubmitNegotiation(offer("n-1", 10, 1))
		if !errors.Is(err, ErrNegotiationClosed) {
			t.Fatalf("%s: expected ErrNegotiationClosed, got %v", status, err)
		}
		if len(tr.Negotiations) != 0 || tr.Status != status {
			t.Fatalf("%s: transfer mutated: %+v", status, tr)
		}
	}
}

func TestAcceptNegotiationAgreesAtProposedPrice(t *testing.T) {
	tr := newTestTransfer(t, TypePermanent)
	_ = tr.SubmitNegotiation(offer("n-1", 700000, 1))
	_ = tr.SubmitNegotiation(offer("n-2", 900000, 2))

	acceptedAt := baseTime.Add(time.Hour)
	accepted, err := tr.AcceptNegotiation("n-2", "u-seller", acceptedAt)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if tr.Status != StatusAgreed {
		t.Fatalf("status = %s, want agreed", tr.Status)
	}
	if tr.FinalPrice == nil || *tr.FinalPrice != 900000 {
		t.Fatalf("final price = %v, want 900000", tr.FinalPrice)
	}
	if !accepted.Accepted || accepted.AcceptedBy != "u-seller" || accepted.AcceptedAt == nil || !accepted.AcceptedAt.Equal(acceptedAt) {
		t.Fatalf("unexpected accepted negotiation: %+v", accepted)
	}
	if tr.Negotiations[0].Accepted {
		t.Fatal("other negotiations must stay untouched")
	}
}

func TestAcceptNegotiationErrors(t *testing.T) {
	tr := newTestTransfer(t, TypePermanent)
	_ = tr.SubmitNegotiation(offer("n-1", 700000, 1))

	if _, err := tr.AcceptNegotiation("missing", "u", baseTime); !errors.Is(err, ErrNegotiationNotFound) {
		t.Fatalf("expected ErrNegotiationNotFound, got %v", err)
	}
	if _, err := tr.AcceptNegotiation("n-1", "u", baseTime); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := tr.AcceptNegotiation("n-1", "u", baseTime); !errors.Is(err, ErrAlreadyAccepted) {
		t.Fatalf("expected ErrAlreadyAccepted, got %v", err)
	}

	tr.Negotiations = append(tr.Negotiations, offer("n-late", 1, 5))
	if _, err := tr.AcceptNegotiation("n-late", "u", baseTime); !errors.Is(err, ErrNegotiationClosed) {
		t.Fatalf("expected ErrNegotiationClosed on agreed transfer, got %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusInitiated, StatusNegotiating, true},
		{StatusInitiated, StatusAgreed, false},
		{StatusNegotiating, StatusAgreed, true},
		{StatusNegotiating, StatusCompleted, false},
		{StatusAgreed, StatusCompleted, true},
		{StatusAgreed, StatusNegotiating, false},
		{StatusInitiated, StatusRejected, true},
		{StatusAgreed, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusRejected, StatusNegotiating, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tc := range tests {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransitionRejectsOutOfOrderMove(t *testing.T) {
	tr := newTestTransfer(t, TypePermanent)

	event, err := tr.Transition(StatusCompleted, baseTime)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if event != nil || tr.Status != StatusInitiated || tr.CompletedAt != nil {
		t.Fatalf("transfer mutated on invalid transition: %+v", tr)
	}
}

func TestCompletionEmitsEventWithAgreedFee(t *testing.T) {
	tr := newTestTransfer(t, TypePermanent)
	_ = tr.SubmitNegotiation(offer("n-1", 750000, 1))
	_, _ = tr.AcceptNegotiation("n-1", "u", baseTime)

	completedAt := baseTime.Add(24 * time.Hour)
	event, err := tr.Transition(StatusCompleted, completedAt)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if event == nil {
		t.Fatal("expected completion event")
	}
	if event.Fee != 750000 || event.ToClubID != "club-b" || event.PlayerID != "pl-1" || !event.CompletedAt.Equal(completedAt) {
		t.Fatalf("unexpected event: %+v", event)
	}
	if tr.CompletedAt == nil || !tr.CompletedAt.Equal(completedAt) {
		t.Fatalf("completedAt not stamped: %v", tr.CompletedAt)
	}
}

func TestOverrideCompletionFallsBackToAskingPrice(t *testing.T) {
	tr := newTestTransfer(t, TypePermanent)

	event, err := tr.OverrideStatus(StatusCompleted, baseTime)
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if event == nil || event.Fee != tr.AskingPrice {
		t.Fatalf("expected fee = asking price, got %+v", event)
	}
}

func TestLoanCompletionEmitsNoPlayerEvent(t *testing.T) {
	tr := newTestTransfer(t, TypeLoan)

	event, err := tr.OverrideStatus(StatusCompleted, baseTime)
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if event != nil {
		t.Fatalf("loan completion must not emit an event, got %+v", event)
	}
	if tr.CompletedAt == nil {
		t.Fatal("loan completion must still stamp completedAt")
	}
}

func TestOverrideAllowsAnyStatus(t *testing.T) {
	tr := newTestTransfer(t, TypePermanent)
	tr.Status = StatusCancelled

	if _, err := tr.OverrideStatus(StatusNegotiating, baseTime); err != nil {
		t.Fatalf("override: %v", err)
	}
	if tr.Status != StatusNegotiating {
		t.Fatalf("status = %s, want negotiating", tr.Status)
	}
	if _, err := tr.OverrideStatus(Status("paused"), baseTime); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestParseStatusAndType(t *testing.T) {
	if status, err := ParseStatus(" Agreed "); err != nil || status != StatusAgreed {
		t.Fatalf("ParseStatus = %q, %v", status, err)
	}
	if _, err := ParseStatus("paused"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if typ, err := ParseType(""); err != nil || typ != TypePermanent {
		t.Fatalf("ParseType empty = %q, %v", typ, err)
	}
	if _, err := ParseType("swap"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	tr := newTestTransfer(t, TypePermanent)
	_ = tr.SubmitNegotiation(offer("n-1", 1, 1))

	clone := tr.Clone()
	clone.Negotiations[0].Message = "changed"

	if tr.Negotiations[0].Message == "changed" {
		t.Fatal("clone shares negotiations with original")
	}
}
