package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	qb "github.com/nfl-analytics/dead-money-pipeline/internal/platform/querybuilder"
)

type ChargeRepository struct {
	db *sqlx.DB
}

func NewChargeRepository(db *sqlx.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

func (r *ChargeRepository) ListByPeriod(ctx context.Context, period int) ([]deadmoney.RankedCharge, error) {
	query, args, err := qb.Select("*").From(chargeTable).
		Where(qb.Eq("period", period)).
		OrderBy("rank_within_period NULLS LAST", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select charges by period query: %w", err)
	}

	var rows []chargeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select charges by period: %w", err)
	}

	return chargesToDomain(rows), nil
}

func (r *ChargeRepository) ListAll(ctx context.Context) ([]deadmoney.RankedCharge, error) {
	query, args, err := qb.Select("*").From(chargeTable).
		OrderBy("period", "rank_within_period NULLS LAST", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select all charges query: %w", err)
	}

	var rows []chargeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all charges: %w", err)
	}

	return chargesToDomain(rows), nil
}

func chargesToDomain(rows []chargeTableModel) []deadmoney.RankedCharge {
	out := make([]deadmoney.RankedCharge, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
