package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/transfer-market/internal/domain/club"
	qb "github.com/riskibarqy/transfer-market/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	query, args, err := qb.Select("public_id", "name", "short_name", "league", "country", "created_at", "updated_at").
		From("clubs").
		Where(
			qb.Eq("public_id", clubID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club %s: %w", clubID, err)
	}

	return club.Club{
		ID:        row.PublicID,
		Name:      row.Name,
		ShortName: row.ShortName,
		League:    row.League,
		Country:   row.Country,
	}, true, nil
}
