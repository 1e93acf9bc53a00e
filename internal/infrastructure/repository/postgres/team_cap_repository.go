package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	qb "github.com/nfl-analytics/dead-money-pipeline/internal/platform/querybuilder"
)

type TeamCapRepository struct {
	db *sqlx.DB
}

func NewTeamCapRepository(db *sqlx.DB) *TeamCapRepository {
	return &TeamCapRepository{db: db}
}

func (r *TeamCapRepository) ListByPeriod(ctx context.Context, period int) ([]teamcap.TeamCap, error) {
	query, args, err := qb.Select("*").From(teamCapTable).
		Where(qb.Eq("period", period)).
		OrderBy("team_code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team caps by period query: %w", err)
	}

	var rows []teamCapTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team caps by period: %w", err)
	}

	return teamCapsToDomain(rows), nil
}

func (r *TeamCapRepository) ListAll(ctx context.Context) ([]teamcap.TeamCap, error) {
	query, args, err := qb.Select("*").From(teamCapTable).
		OrderBy("period", "team_code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select all team caps query: %w", err)
	}

	var rows []teamCapTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all team caps: %w", err)
	}

	return teamCapsToDomain(rows), nil
}

func teamCapsToDomain(rows []teamCapTableModel) []teamcap.TeamCap {
	out := make([]teamcap.TeamCap, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
