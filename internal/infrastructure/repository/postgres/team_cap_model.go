package postgres

import (
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
)

type teamCapTableModel struct {
	TeamCode          string    `db:"team_code"`
	TeamName          string    `db:"team_name"`
	Period            int       `db:"period"`
	ActiveCapAmount   *float64  `db:"active_cap_amount"`
	TotalChargeAmount float64   `db:"total_charge_amount"`
	SalaryCapAmount   *float64  `db:"salary_cap_amount"`
	CapSpaceAmount    *float64  `db:"cap_space_amount"`
	ChargePct         *float64  `db:"charge_pct"`
	ObservedAt        time.Time `db:"observed_at"`
	LoadedAt          time.Time `db:"loaded_at"`
}

func teamCapModelFromDomain(t teamcap.TeamCap) teamCapTableModel {
	return teamCapTableModel{
		TeamCode:          t.TeamCode,
		TeamName:          t.TeamName,
		Period:            t.Period,
		ActiveCapAmount:   t.ActiveCapAmount,
		TotalChargeAmount: t.TotalChargeAmount,
		SalaryCapAmount:   t.SalaryCapAmount,
		CapSpaceAmount:    t.CapSpaceAmount,
		ChargePct:         t.ChargePct,
		ObservedAt:        t.ObservedAt,
		LoadedAt:          t.LoadedAt,
	}
}

func (m teamCapTableModel) toDomain() teamcap.TeamCap {
	return teamcap.TeamCap{
		TeamCode:          m.TeamCode,
		TeamName:          m.TeamName,
		Period:            m.Period,
		ActiveCapAmount:   m.ActiveCapAmount,
		TotalChargeAmount: m.TotalChargeAmount,
		SalaryCapAmount:   m.SalaryCapAmount,
		CapSpaceAmount:    m.CapSpaceAmount,
		ChargePct:         m.ChargePct,
		ObservedAt:        m.ObservedAt,
		LoadedAt:          m.LoadedAt,
	}
}
