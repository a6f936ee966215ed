package transfer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus       = errors.New("invalid transfer status")
	ErrInvalidType         = errors.New("invalid transfer type")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrInvalidLoanDuration = errors.New("invalid loan duration")
	ErrSameClub            = errors.New("from and to club must differ")
)

// Status is the lifecycle state of a transfer.
type Status string

const (
	StatusInitiated   Status = "initiated"
	StatusNegotiating Status = "negotiating"
	StatusAgreed      Status = "agreed"
	StatusCompleted   Status = "completed"
	StatusRejected    Status = "rejected"
	StatusCancelled   Status = "cancelled"
)

var AllStatuses = map[Status]struct{}{
	StatusInitiated:   {},
	StatusNegotiating: {},
	StatusAgreed:      {},
	StatusCompleted:   {},
	StatusRejected:    {},
	StatusCancelled:   {},
}

func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := AllStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// IsOpenForNegotiation reports whether offers may still be submitted or accepted.
func (s Status) IsOpenForNegotiation() bool {
	return s == StatusInitiated || s == StatusNegotiating
}

type Type string

const (
	TypePermanent Type = "permanent"
	TypeLoan      Type = "loan"
)

// ParseType defaults an empty value to permanent.
func ParseType(raw string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TypePermanent:
		return TypePermanent, nil
	case TypeLoan:
		return TypeLoan, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, raw)
	}
}

// Negotiation is one price offer on a transfer. Offers are only ever appended.
type Negotiation struct {
	ID            string
	ProposedPrice int64
	Message       string
	ProposedBy    string
	ProposedAt    time.Time
	Accepted      bool
	AcceptedBy    string
	AcceptedAt    *time.Time
}

// Transfer is a proposed movement of a player between two clubs.
type Transfer struct {
	ID                 string
	PlayerID           string
	FromClubID         string
	ToClubID           string
	InitiatedBy        string
	Type               Type
	LoanDurationMonths int
	AskingPrice        int64
	FinalPrice         *int64
	Status             Status
	Negotiations       []Negotiation
	CompletedAt        *time.Time
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewTransferParams carries the validated inputs needed to open a transfer.
type NewTransferParams struct {
	ID                 string
	PlayerID           string
	FromClubID         string
	ToClubID           string
	InitiatedBy        string
	Type               Type
	LoanDurationMonths int
	AskingPrice        int64
	CreatedAt          time.Time
}

// New opens a transfer in the initiated state.
func New(params NewTransferParams) (Transfer, error) {
	if params.Type == "" {
		params.Type = TypePermanent
	}

	t := Transfer{
		ID:                 params.ID,
		PlayerID:           params.PlayerID,
		FromClubID:         params.FromClubID,
		ToClubID:           params.ToClubID,
		InitiatedBy:        params.InitiatedBy,
		Type:               params.Type,
		LoanDurationMonths: params.LoanDurationMonths,
		AskingPrice:        params.AskingPrice,
		Status:             StatusInitiated,
		Negotiations:       []Negotiation{},
		CreatedAt:          params.CreatedAt,
		UpdatedAt:          params.CreatedAt,
	}
	if err := t.Validate(); err != nil {
		return Transfer{}, err
	}
	return t, nil
}

func (t Transfer) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transfer id is required")
	}
	if t.PlayerID == "" || t.FromClubID == "" || t.ToClubID == "" {
		return fmt.Errorf("transfer player, from club and to club are required")
	}
	if t.FromClubID == t.ToClubID {
		return ErrSameClub
	}
	if t.AskingPrice <= 0 {
		return fmt.Errorf("asking %w", ErrInvalidPrice)
	}
	if _, ok := AllStatuses[t.Status]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, t.Status)
	}
	switch t.Type {
	case TypePermanent:
		if t.LoanDurationMonths != 0 {
			return fmt.Errorf("%w: only loans carry a duration", ErrInvalidLoanDuration)
		}
	case TypeLoan:
		if t.LoanDurationMonths <= 0 {
			return fmt.Errorf("%w: loan duration must be greater than zero", ErrInvalidLoanDuration)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidType, t.Type)
	}
	return nil
}

// AgreedFee is the fee recorded on completion: the accepted price, or the asking price when none was accepted.
func (t Transfer) AgreedFee() int64 {
	if t.FinalPrice != nil {
		return *t.FinalPrice
	}
	return t.AskingPrice
}

// Clone returns a deep copy so callers can mutate negotiations without touching stored records.
func (t Transfer) Clone() Transfer {
	out := t
	out.Negotiations = make([]Negotiation, len(t.Negotiations))
	for i, n := range t.Negotiations {
		out.Negotiations[i] = n
		if n.AcceptedAt != nil {
			at := *n.AcceptedAt
			out.Negotiations[i].AcceptedAt = &at
		}
	}
	if t.FinalPrice != nil {
		price := *t.FinalPrice
		out.FinalPrice = &price
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	return out
}
