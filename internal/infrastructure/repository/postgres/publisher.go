package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/nfl-analytics/dead-money-pipeline/internal/platform/querybuilder"
	"github.com/nfl-analytics/dead-money-pipeline/internal/usecase"
)

const (
	chargeTable  = "fact_player_dead_money"
	teamCapTable = "fact_team_cap"
	summaryTable = "mart_period_summary"
	teamTable    = "dim_teams"
)

// insertChunkSize keeps each multi-row INSERT well under the postgres
// placeholder limit of 65535.
const insertChunkSize = 500

// Publisher replaces the four published relations with one run's output in a
// single transaction. Readers see either the previous run's tables or the new
// ones, never a mix.
type Publisher struct {
	db *sqlx.DB
}

func NewPublisher(db *sqlx.DB) *Publisher {
	return &Publisher{db: db}
}

func (p *Publisher) Publish(ctx context.Context, set usecase.PublishSet) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin publish tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{chargeTable, teamCapTable, summaryTable, teamTable} {
		query, args, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	charges := make([]chargeTableModel, 0, len(set.Charges))
	for _, c := range set.Charges {
		charges = append(charges, chargeModelFromDomain(c))
	}
	if err := insertChunked(ctx, tx, chargeTable, charges); err != nil {
		return err
	}

	caps := make([]teamCapTableModel, 0, len(set.TeamCaps))
	for _, t := range set.TeamCaps {
		caps = append(caps, teamCapModelFromDomain(t))
	}
	if err := insertChunked(ctx, tx, teamCapTable, caps); err != nil {
		return err
	}

	summaries := make([]summaryTableModel, 0, len(set.Summaries))
	for _, s := range set.Summaries {
		summaries = append(summaries, summaryModelFromDomain(s, set.LoadedAt))
	}
	if err := insertChunked(ctx, tx, summaryTable, summaries); err != nil {
		return err
	}

	teams := make([]teamTableModel, 0, len(set.Teams))
	for _, t := range set.Teams {
		teams = append(teams, teamModelFromDomain(t))
	}
	if err := insertChunked(ctx, tx, teamTable, teams); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit publish tx: %w", err)
	}

	return nil
}

func insertChunked[T any](ctx context.Context, tx *sqlx.Tx, table string, rows []T) error {
	for start := 0; start < len(rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		query, args, err := qb.InsertModels(table, rows[start:end])
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}
