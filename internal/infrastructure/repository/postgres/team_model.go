package postgres

import (
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/dimension"
)

type teamTableModel struct {
	Code      string    `db:"team_code"`
	Name      string    `db:"team_name"`
	CreatedAt time.Time `db:"created_at"`
}

func teamModelFromDomain(t dimension.Team) teamTableModel {
	return teamTableModel{Code: t.Code, Name: t.Name, CreatedAt: t.CreatedAt}
}

func (m teamTableModel) toDomain() dimension.Team {
	return dimension.Team{Code: m.Code, Name: m.Name, CreatedAt: m.CreatedAt}
}
