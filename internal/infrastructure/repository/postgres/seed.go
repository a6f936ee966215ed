package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo clubs and players into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM clubs WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count clubs for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedClubs() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO clubs (public_id, name, short_name, league, country)
VALUES (:public_id, :name, :short_name, :league, :country)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":  c.ID,
			"name":       c.Name,
			"short_name": c.ShortName,
			"league":     c.League,
			"country":    c.Country,
		})
		if err != nil {
			return fmt.Errorf("bind seed club %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed club %s: %w", c.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers(now) {
		row, err := playerToRow(p)
		if err != nil {
			return err
		}
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (
    public_id, first_name, last_name, date_of_birth, nationality, position,
    current_club_public_id, contract_start_date, contract_end_date, market_value,
    statistics, career_history, version
) VALUES (
    :public_id, :first_name, :last_name, :date_of_birth, :nationality, :position,
    :current_club_public_id, :contract_start_date, :contract_end_date, :market_value,
    CAST(:statistics AS JSONB), CAST(:career_history AS JSONB), 1
)
ON CONFLICT (public_id) DO NOTHING`, row)
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
