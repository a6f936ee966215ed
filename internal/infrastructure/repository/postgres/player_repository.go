package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	qb "github.com/riskibarqy/transfer-market/internal/platform/querybuilder"
)

const playersTable = "players"

var playerSelectColumns = []string{
	"public_id",
	"first_name",
	"last_name",
	"date_of_birth",
	"nationality",
	"position",
	"current_club_public_id",
	"contract_start_date",
	"contract_end_date",
	"market_value",
	"statistics::text AS statistics",
	"career_history::text AS career_history",
	"version",
	"created_at",
	"updated_at",
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From(playersTable).
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player %s: %w", playerID, err)
	}

	item, err := playerFromRow(row)
	if err != nil {
		return player.Player{}, false, err
	}
	return item, true, nil
}

func (r *PlayerRepository) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("public_id").From(playersTable).
		Where(qb.IsNull("deleted_at")).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list player ids: %w", err)
	}
	return ids, nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) (player.Player, error) {
	row, err := playerToRow(p)
	if err != nil {
		return player.Player{}, err
	}

	query, args, err := qb.Update(playersTable).
		Set("first_name", row.FirstName).
		Set("last_name", row.LastName).
		Set("date_of_birth", row.DateOfBirth).
		Set("nationality", row.Nationality).
		Set("position", row.Position).
		Set("current_club_public_id", row.CurrentClubID).
		Set("contract_start_date", row.ContractStartDate).
		Set("contract_end_date", row.ContractEndDate).
		Set("market_value", row.MarketValue).
		Set("statistics", row.Statistics).
		Set("career_history", row.CareerHistory).
		Set("updated_at", row.UpdatedAt).
		SetExpr("version", "version + 1").
		Where(
			qb.Eq("public_id", row.PublicID),
			qb.Eq("version", p.Version),
			qb.IsNull("deleted_at"),
		).
		Returning("version").
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build update player query: %w", err)
	}

	var version int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&version); err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("%w: player %s expected version %d", player.ErrVersionConflict, p.ID, p.Version)
		}
		return player.Player{}, fmt.Errorf("update player %s: %w", p.ID, err)
	}

	stored := p.Clone()
	stored.Version = version
	return stored, nil
}
