package httpapi

import (
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

type initiateTransferRequest struct {
	PlayerID           string `json:"player_id" validate:"required"`
	FromClubID         string `json:"from_club_id" validate:"required"`
	ToClubID           string `json:"to_club_id" validate:"required,nefield=FromClubID"`
	TransferType       string `json:"transfer_type" validate:"omitempty,oneof=permanent loan"`
	LoanDurationMonths int    `json:"loan_duration_months" validate:"gte=0"`
	AskingPrice        int64  `json:"asking_price" validate:"required,gt=0"`
}

type submitNegotiationRequest struct {
	ProposedPrice int64  `json:"proposed_price" validate:"required,gt=0"`
	Message       string `json:"message" validate:"omitempty,max=1000"`
}

type changeTransferStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type addSeasonStatisticRequest struct {
	Season        string `json:"season" validate:"required,max=20"`
	Appearances   int    `json:"appearances" validate:"gte=0,lte=100"`
	Goals         int    `json:"goals" validate:"gte=0,lte=500"`
	Assists       int    `json:"assists" validate:"gte=0,lte=500"`
	MinutesPlayed int    `json:"minutes_played" validate:"gte=0,lte=12000"`
	YellowCards   int    `json:"yellow_cards" validate:"gte=0,lte=100"`
	RedCards      int    `json:"red_cards" validate:"gte=0,lte=100"`
}

type negotiationDTO struct {
	ID            string     `json:"id"`
	ProposedPrice int64      `json:"proposed_price"`
	Message       string     `json:"message,omitempty"`
	ProposedBy    string     `json:"proposed_by"`
	ProposedAt    time.Time  `json:"proposed_at"`
	Accepted      bool       `json:"accepted"`
	AcceptedBy    string     `json:"accepted_by,omitempty"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty"`
}

type transferDTO struct {
	ID                 string           `json:"id"`
	PlayerID           string           `json:"player_id"`
	FromClubID         string           `json:"from_club_id"`
	ToClubID           string           `json:"to_club_id"`
	InitiatedBy        string           `json:"initiated_by"`
	TransferType       string           `json:"transfer_type"`
	LoanDurationMonths int              `json:"loan_duration_months,omitempty"`
	AskingPrice        int64            `json:"asking_price"`
	FinalPrice         *int64           `json:"final_price,omitempty"`
	Status             string           `json:"status"`
	Negotiations       []negotiationDTO `json:"negotiations"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty"`
	Version            int64            `json:"version"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type paginationDTO struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

type transferListDTO struct {
	Items      []transferDTO `json:"items"`
	Pagination paginationDTO `json:"pagination"`
}

type seasonStatisticDTO struct {
	Season        string `json:"season"`
	Appearances   int    `json:"appearances"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	MinutesPlayed int    `json:"minutes_played"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
}

type careerEntryDTO struct {
	ClubID      string     `json:"club_id"`
	TransferID  string     `json:"transfer_id,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	TransferFee *int64     `json:"transfer_fee,omitempty"`
	LoanSpell   bool       `json:"loan_spell"`
}

type playerDTO struct {
	ID              string               `json:"id"`
	FullName        string               `json:"full_name"`
	Position        string               `json:"position"`
	CurrentClubID   string               `json:"current_club_id"`
	ContractEndDate *time.Time           `json:"contract_end_date,omitempty"`
	MarketValue     int64                `json:"market_value"`
	Statistics      []seasonStatisticDTO `json:"statistics"`
	CareerHistory   []careerEntryDTO     `json:"career_history"`
	Version         int64                `json:"version"`
}

type valuationDTO struct {
	PlayerID                string    `json:"player_id"`
	Age                     int       `json:"age"`
	Position                string    `json:"position"`
	BaseValue               int64     `json:"base_value"`
	LatestSeason            string    `json:"latest_season,omitempty"`
	PerformanceMultiplier   float64   `json:"performance_multiplier"`
	PositionMultiplier      float64   `json:"position_multiplier"`
	ContractMonthsRemaining *int      `json:"contract_months_remaining,omitempty"`
	ContractMultiplier      float64   `json:"contract_multiplier"`
	EstimatedValue          int64     `json:"estimated_value"`
	StoredValue             int64     `json:"stored_value"`
	EvaluatedAt             time.Time `json:"evaluated_at"`
}

type revaluationResultDTO struct {
	Total       int   `json:"total"`
	Updated     int   `json:"updated"`
	Unchanged   int   `json:"unchanged"`
	Failed      int   `json:"failed"`
	WorkerCount int   `json:"worker_count"`
	DurationMs  int64 `json:"duration_ms"`
}

func transferToDTO(t transfer.Transfer) transferDTO {
	negotiations := make([]negotiationDTO, 0, len(t.Negotiations))
	for _, n := range t.Negotiations {
		negotiations = append(negotiations, negotiationDTO{
			ID:            n.ID,
			ProposedPrice: n.ProposedPrice,
			Message:       n.Message,
			ProposedBy:    n.ProposedBy,
			ProposedAt:    n.ProposedAt,
			Accepted:      n.Accepted,
			AcceptedBy:    n.AcceptedBy,
			AcceptedAt:    n.AcceptedAt,
		})
	}

	return transferDTO{
		ID:                 t.ID,
		PlayerID:           t.PlayerID,
		FromClubID:         t.FromClubID,
		ToClubID:           t.ToClubID,
		InitiatedBy:        t.InitiatedBy,
		TransferType:       string(t.Type),
		LoanDurationMonths: t.LoanDurationMonths,
		AskingPrice:        t.AskingPrice,
		FinalPrice:         t.FinalPrice,
		Status:             string(t.Status),
		Negotiations:       negotiations,
		CompletedAt:        t.CompletedAt,
		Version:            t.Version,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func transferPageToDTO(page usecase.TransferPage) transferListDTO {
	items := make([]transferDTO, 0, len(page.Transfers))
	for _, t := range page.Transfers {
		items = append(items, transferToDTO(t))
	}
	return transferListDTO{
		Items: items,
		Pagination: paginationDTO{
			Page:  page.Page,
			Limit: page.Limit,
			Pages: page.Pages,
			Total: page.Total,
		},
	}
}

func playerToDTO(p player.Player) playerDTO {
	stats := make([]seasonStatisticDTO, 0, len(p.Statistics))
	for _, s := range p.Statistics {
		stats = append(stats, seasonStatisticDTO(s))
	}
	career := make([]careerEntryDTO, 0, len(p.CareerHistory))
	for _, c := range p.CareerHistory {
		career = append(career, careerEntryDTO(c))
	}
	return playerDTO{
		ID:              p.ID,
		FullName:        p.FullName(),
		Position:        string(p.Position),
		CurrentClubID:   p.CurrentClubID,
		ContractEndDate: p.ContractEndDate,
		MarketValue:     p.MarketValue,
		Statistics:      stats,
		CareerHistory:   career,
		Version:         p.Version,
	}
}

func valuationToDTO(v usecase.PlayerValuation) valuationDTO {
	return valuationDTO{
		PlayerID:                v.Player.ID,
		Age:                     v.Valuation.Age,
		Position:                string(v.Player.Position),
		BaseValue:               v.Valuation.BaseValue,
		LatestSeason:            v.Valuation.LatestSeason,
		PerformanceMultiplier:   v.Valuation.PerformanceMultiplier,
		PositionMultiplier:      v.Valuation.PositionMultiplier,
		ContractMonthsRemaining: v.Valuation.ContractMonthsRemaining,
		ContractMultiplier:      v.Valuation.ContractMultiplier,
		EstimatedValue:          v.Valuation.MarketValue,
		StoredValue:             v.Player.MarketValue,
		EvaluatedAt:             v.Valuation.EvaluatedAt,
	}
}

func revaluationResultToDTO(result usecase.RevaluationResult) revaluationResultDTO {
	return revaluationResultDTO(result)
}
