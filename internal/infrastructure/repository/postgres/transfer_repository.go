package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	qb "github.com/riskibarqy/transfer-market/internal/platform/querybuilder"
)

const transfersTable = "transfers"

var transferSelectColumns = []string{
	"public_id",
	"player_public_id",
	"from_club_public_id",
	"to_club_public_id",
	"initiated_by",
	"transfer_type",
	"loan_duration_months",
	"asking_price",
	"final_price",
	"status",
	"negotiations::text AS negotiations",
	"completed_at",
	"version",
	"created_at",
	"updated_at",
}

type TransferRepository struct {
	db *sqlx.DB
}

func NewTransferRepository(db *sqlx.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) GetByID(ctx context.Context, transferID string) (transfer.Transfer, bool, error) {
	query, args, err := qb.Select(transferSelectColumns...).From(transfersTable).
		Where(qb.Eq("public_id", transferID)).
		ToSQL()
	if err != nil {
		return transfer.Transfer{}, false, fmt.Errorf("build get transfer query: %w", err)
	}

	var row transferTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return transfer.Transfer{}, false, nil
		}
		return transfer.Transfer{}, false, fmt.Errorf("get transfer %s: %w", transferID, err)
	}

	item, err := transferFromRow(row)
	if err != nil {
		return transfer.Transfer{}, false, err
	}
	return item, true, nil
}

func (r *TransferRepository) List(ctx context.Context, filter transfer.ListFilter) ([]transfer.Transfer, int, error) {
	base := qb.Select(transferSelectColumns...).From(transfersTable)
	if filter.Status != "" {
		base = base.Where(qb.Eq("status", string(filter.Status)))
	}

	countQuery, countArgs, err := base.Count().ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count transfers query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count transfers: %w", err)
	}
	if total == 0 || filter.Offset >= total {
		return []transfer.Transfer{}, total, nil
	}

	query, args, err := base.
		OrderBy("created_at DESC", "public_id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list transfers query: %w", err)
	}

	var rows []transferTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list transfers: %w", err)
	}

	out := make([]transfer.Transfer, 0, len(rows))
	for _, row := range rows {
		item, err := transferFromRow(row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	return out, total, nil
}

func (r *TransferRepository) Create(ctx context.Context, t transfer.Transfer) (transfer.Transfer, error) {
	t.Version = 1
	row, err := transferToRow(t)
	if err != nil {
		return transfer.Transfer{}, err
	}

	query, args, err := qb.InsertModel(transfersTable, row, "version")
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("build insert transfer query: %w", err)
	}

	var version int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&version); err != nil {
		if isUniqueViolation(err) {
			return transfer.Transfer{}, fmt.Errorf("%w: transfer %s already exists", transfer.ErrVersionConflict, t.ID)
		}
		return transfer.Transfer{}, fmt.Errorf("insert transfer %s: %w", t.ID, err)
	}

	stored := t.Clone()
	stored.Version = version
	return stored, nil
}

func (r *TransferRepository) Update(ctx context.Context, t transfer.Transfer) (transfer.Transfer, error) {
	row, err := transferToRow(t)
	if err != nil {
		return transfer.Transfer{}, err
	}

	query, args, err := qb.Update(transfersTable).
		Set("status", row.Status).
		Set("final_price", row.FinalPrice).
		Set("negotiations", row.Negotiations).
		Set("completed_at", row.CompletedAt).
		Set("updated_at", row.UpdatedAt).
		SetExpr("version", "version + 1").
		Where(
			qb.Eq("public_id", row.PublicID),
			qb.Eq("version", t.Version),
		).
		Returning("version").
		ToSQL()
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("build update transfer query: %w", err)
	}

	var version int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&version); err != nil {
		if isNotFound(err) {
			return transfer.Transfer{}, fmt.Errorf("%w: transfer %s expected version %d", transfer.ErrVersionConflict, t.ID, t.Version)
		}
		return transfer.Transfer{}, fmt.Errorf("update transfer %s: %w", t.ID, err)
	}

	stored := t.Clone()
	stored.Version = version
	return stored, nil
}
