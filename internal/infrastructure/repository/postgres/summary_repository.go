package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/analytics"
	qb "github.com/nfl-analytics/dead-money-pipeline/internal/platform/querybuilder"
)

type SummaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) ListSummaries(ctx context.Context) ([]analytics.PeriodSummary, error) {
	query, args, err := qb.Select("*").From(summaryTable).
		OrderBy("period").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select period summaries query: %w", err)
	}

	var rows []summaryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select period summaries: %w", err)
	}

	out := make([]analytics.PeriodSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
