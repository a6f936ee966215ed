package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
)

type playerTableModel struct {
	PublicID          string     `db:"public_id"`
	FirstName         string     `db:"first_name"`
	LastName          string     `db:"last_name"`
	DateOfBirth       time.Time  `db:"date_of_birth"`
	Nationality       string     `db:"nationality"`
	Position          string     `db:"position"`
	CurrentClubID     string     `db:"current_club_public_id"`
	ContractStartDate *time.Time `db:"contract_start_date"`
	ContractEndDate   *time.Time `db:"contract_end_date"`
	MarketValue       int64      `db:"market_value"`
	Statistics        string     `db:"statistics"`
	CareerHistory     string     `db:"career_history"`
	Version           int64      `db:"version"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

type statisticRecord struct {
	Season        string `json:"season"`
	Appearances   int    `json:"appearances"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	MinutesPlayed int    `json:"minutesPlayed"`
	YellowCards   int    `json:"yellowCards"`
	RedCards      int    `json:"redCards"`
}

type careerRecord struct {
	ClubID      string     `json:"clubId"`
	TransferID  string     `json:"transferId,omitempty"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	TransferFee *int64     `json:"transferFee,omitempty"`
	LoanSpell   bool       `json:"loanSpell"`
}

func playerToRow(p player.Player) (playerTableModel, error) {
	stats := make([]statisticRecord, 0, len(p.Statistics))
	for _, s := range p.Statistics {
		stats = append(stats, statisticRecord(s))
	}
	statsRaw, err := sonic.MarshalString(stats)
	if err != nil {
		return playerTableModel{}, fmt.Errorf("encode statistics player=%s: %w", p.ID, err)
	}

	career := make([]careerRecord, 0, len(p.CareerHistory))
	for _, c := range p.CareerHistory {
		career = append(career, careerRecord{
			ClubID:      c.ClubID,
			TransferID:  c.TransferID,
			StartDate:   c.StartDate.UTC(),
			EndDate:     nullableTime(c.EndDate),
			TransferFee: c.TransferFee,
			LoanSpell:   c.LoanSpell,
		})
	}
	careerRaw, err := sonic.MarshalString(career)
	if err != nil {
		return playerTableModel{}, fmt.Errorf("encode career history player=%s: %w", p.ID, err)
	}

	return playerTableModel{
		PublicID:          p.ID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		DateOfBirth:       p.DateOfBirth.UTC(),
		Nationality:       p.Nationality,
		Position:          string(p.Position),
		CurrentClubID:     p.CurrentClubID,
		ContractStartDate: nullableTime(p.ContractStartDate),
		ContractEndDate:   nullableTime(p.ContractEndDate),
		MarketValue:       p.MarketValue,
		Statistics:        statsRaw,
		CareerHistory:     careerRaw,
		Version:           p.Version,
		CreatedAt:         p.CreatedAt.UTC(),
		UpdatedAt:         p.UpdatedAt.UTC(),
	}, nil
}

func playerFromRow(row playerTableModel) (player.Player, error) {
	var stats []statisticRecord
	if row.Statistics != "" && row.Statistics != "null" {
		if err := sonic.UnmarshalString(row.Statistics, &stats); err != nil {
			return player.Player{}, fmt.Errorf("decode statistics player=%s: %w", row.PublicID, err)
		}
	}

	var career []careerRecord
	if row.CareerHistory != "" && row.CareerHistory != "null" {
		if err := sonic.UnmarshalString(row.CareerHistory, &career); err != nil {
			return player.Player{}, fmt.Errorf("decode career history player=%s: %w", row.PublicID, err)
		}
	}

	p := player.Player{
		ID:                row.PublicID,
		FirstName:         row.FirstName,
		LastName:          row.LastName,
		DateOfBirth:       row.DateOfBirth,
		Nationality:       row.Nationality,
		Position:          player.Position(row.Position),
		CurrentClubID:     row.CurrentClubID,
		ContractStartDate: row.ContractStartDate,
		ContractEndDate:   row.ContractEndDate,
		MarketValue:       row.MarketValue,
		Statistics:        make([]player.SeasonStatistic, 0, len(stats)),
		CareerHistory:     make([]player.CareerEntry, 0, len(career)),
		Version:           row.Version,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
	for _, s := range stats {
		p.Statistics = append(p.Statistics, player.SeasonStatistic(s))
	}
	for _, c := range career {
		p.CareerHistory = append(p.CareerHistory, player.CareerEntry(c))
	}
	return p, nil
}
