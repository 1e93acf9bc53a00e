package postgres

import (
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/analytics"
)

type summaryTableModel struct {
	Period             int       `db:"period"`
	TotalChargeAmount  float64   `db:"total_charge_amount"`
	MeanChargeAmount   float64   `db:"mean_charge_amount"`
	StdDevChargeAmount float64   `db:"stddev_charge_amount"`
	P75ChargeAmount    float64   `db:"p75_charge_amount"`
	P90ChargeAmount    float64   `db:"p90_charge_amount"`
	P95ChargeAmount    float64   `db:"p95_charge_amount"`
	MaxChargeAmount    float64   `db:"max_charge_amount"`
	PlayerCount        int       `db:"player_count"`
	LoadedAt           time.Time `db:"loaded_at"`
}

func summaryModelFromDomain(s analytics.PeriodSummary, loadedAt time.Time) summaryTableModel {
	return summaryTableModel{
		Period:             s.Period,
		TotalChargeAmount:  s.Total,
		MeanChargeAmount:   s.Mean,
		StdDevChargeAmount: s.StdDev,
		P75ChargeAmount:    s.P75,
		P90ChargeAmount:    s.P90,
		P95ChargeAmount:    s.P95,
		MaxChargeAmount:    s.Max,
		PlayerCount:        s.Count,
		LoadedAt:           loadedAt,
	}
}

func (m summaryTableModel) toDomain() analytics.PeriodSummary {
	return analytics.PeriodSummary{
		Period: m.Period,
		Total:  m.TotalChargeAmount,
		Mean:   m.MeanChargeAmount,
		StdDev: m.StdDevChargeAmount,
		P75:    m.P75ChargeAmount,
		P90:    m.P90ChargeAmount,
		P95:    m.P95ChargeAmount,
		Max:    m.MaxChargeAmount,
		Count:  m.PlayerCount,
	}
}
