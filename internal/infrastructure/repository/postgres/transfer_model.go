package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

type transferTableModel struct {
	PublicID           string        `db:"public_id"`
	PlayerID           string        `db:"player_public_id"`
	FromClubID         string        `db:"from_club_public_id"`
	ToClubID           string        `db:"to_club_public_id"`
	InitiatedBy        string        `db:"initiated_by"`
	TransferType       string        `db:"transfer_type"`
	LoanDurationMonths int           `db:"loan_duration_months"`
	AskingPrice        int64         `db:"asking_price"`
	FinalPrice         sql.NullInt64 `db:"final_price"`
	Status             string        `db:"status"`
	Negotiations       string        `db:"negotiations"`
	CompletedAt        *time.Time    `db:"completed_at"`
	Version            int64         `db:"version"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

// negotiationRecord is the JSONB shape of one entry in transfers.negotiations.
type negotiationRecord struct {
	ID            string     `json:"id"`
	ProposedPrice int64      `json:"proposedPrice"`
	Message       string     `json:"message,omitempty"`
	ProposedBy    string     `json:"proposedBy"`
	ProposedAt    time.Time  `json:"proposedAt"`
	Accepted      bool       `json:"accepted"`
	AcceptedBy    string     `json:"acceptedBy,omitempty"`
	AcceptedAt    *time.Time `json:"acceptedAt,omitempty"`
}

func transferToRow(t transfer.Transfer) (transferTableModel, error) {
	negotiations, err := encodeNegotiations(t.Negotiations)
	if err != nil {
		return transferTableModel{}, err
	}

	return transferTableModel{
		PublicID:           t.ID,
		PlayerID:           t.PlayerID,
		FromClubID:         t.FromClubID,
		ToClubID:           t.ToClubID,
		InitiatedBy:        t.InitiatedBy,
		TransferType:       string(t.Type),
		LoanDurationMonths: t.LoanDurationMonths,
		AskingPrice:        t.AskingPrice,
		FinalPrice:         nullableInt64(t.FinalPrice),
		Status:             string(t.Status),
		Negotiations:       negotiations,
		CompletedAt:        nullableTime(t.CompletedAt),
		Version:            t.Version,
		CreatedAt:          t.CreatedAt.UTC(),
		UpdatedAt:          t.UpdatedAt.UTC(),
	}, nil
}

func transferFromRow(row transferTableModel) (transfer.Transfer, error) {
	negotiations, err := decodeNegotiations(row.Negotiations)
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("transfer %s: %w", row.PublicID, err)
	}

	return transfer.Transfer{
		ID:                 row.PublicID,
		PlayerID:           row.PlayerID,
		FromClubID:         row.FromClubID,
		ToClubID:           row.ToClubID,
		InitiatedBy:        row.InitiatedBy,
		Type:               transfer.Type(row.TransferType),
		LoanDurationMonths: row.LoanDurationMonths,
		AskingPrice:        row.AskingPrice,
		FinalPrice:         int64FromNull(row.FinalPrice),
		Status:             transfer.Status(row.Status),
		Negotiations:       negotiations,
		CompletedAt:        row.CompletedAt,
		Version:            row.Version,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}, nil
}

func encodeNegotiations(items []transfer.Negotiation) (string, error) {
	records := make([]negotiationRecord, 0, len(items))
	for _, n := range items {
		records = append(records, negotiationRecord{
			ID:            n.ID,
			ProposedPrice: n.ProposedPrice,
			Message:       n.Message,
			ProposedBy:    n.ProposedBy,
			ProposedAt:    n.ProposedAt.UTC(),
			Accepted:      n.Accepted,
			AcceptedBy:    n.AcceptedBy,
			AcceptedAt:    nullableTime(n.AcceptedAt),
		})
	}

	raw, err := sonic.MarshalString(records)
	if err != nil {
		return "", fmt.Errorf("encode negotiations: %w", err)
	}
	return raw, nil
}

func decodeNegotiations(raw string) ([]transfer.Negotiation, error) {
	if raw == "" || raw == "null" {
		return []transfer.Negotiation{}, nil
	}

	var records []negotiationRecord
	if err := sonic.UnmarshalString(raw, &records); err != nil {
		return nil, fmt.Errorf("decode negotiations: %w", err)
	}

	out := make([]transfer.Negotiation, 0, len(records))
	for _, r := range records {
		out = append(out, transfer.Negotiation{
			ID:            r.ID,
			ProposedPrice: r.ProposedPrice,
			Message:       r.Message,
			ProposedBy:    r.ProposedBy,
			ProposedAt:    r.ProposedAt,
			Accepted:      r.Accepted,
			AcceptedBy:    r.AcceptedBy,
			AcceptedAt:    r.AcceptedAt,
		})
	}
	return out, nil
}
