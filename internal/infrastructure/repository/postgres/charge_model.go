package postgres

import (
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
)

type chargeTableModel struct {
	PlayerID              string    `db:"player_id"`
	PlayerName            string    `db:"player_name"`
	Position              string    `db:"position"`
	TeamCode              string    `db:"team_code"`
	Period                int       `db:"period"`
	ChargeAmount          float64   `db:"charge_amount"`
	TeamTotalChargeAmount *float64  `db:"team_total_charge_amount"`
	TeamTotalCapAmount    *float64  `db:"team_total_cap_amount"`
	TeamChargePct         *float64  `db:"team_charge_pct"`
	PctOfTeamTotal        *float64  `db:"pct_of_team_total"`
	ImpactTier            string    `db:"impact_tier"`
	LeagueTotalForPeriod  float64   `db:"league_total_for_period"`
	PctOfLeagueTotal      *float64  `db:"pct_of_league_total"`
	PercentileRank        *float64  `db:"percentile_rank"`
	RankWithinPeriod      *int      `db:"rank_within_period"`
	ObservedAt            time.Time `db:"observed_at"`
	LoadedAt              time.Time `db:"loaded_at"`
}

func chargeModelFromDomain(c deadmoney.RankedCharge) chargeTableModel {
	return chargeTableModel{
		PlayerID:              c.PlayerID,
		PlayerName:            c.PlayerName,
		Position:              c.Position,
		TeamCode:              c.TeamCode,
		Period:                c.Period,
		ChargeAmount:          c.ChargeAmount,
		TeamTotalChargeAmount: c.TeamTotalChargeAmount,
		TeamTotalCapAmount:    c.TeamTotalCapAmount,
		TeamChargePct:         c.TeamChargePct,
		PctOfTeamTotal:        c.PctOfTeamTotal,
		ImpactTier:            string(c.ImpactTier),
		LeagueTotalForPeriod:  c.LeagueTotalForPeriod,
		PctOfLeagueTotal:      c.PctOfLeagueTotal,
		PercentileRank:        c.PercentileRank,
		RankWithinPeriod:      c.RankWithinPeriod,
		ObservedAt:            c.ObservedAt,
		LoadedAt:              c.LoadedAt,
	}
}

func (m chargeTableModel) toDomain() deadmoney.RankedCharge {
	return deadmoney.RankedCharge{
		EnrichedCharge: deadmoney.EnrichedCharge{
			Charge: deadmoney.Charge{
				PlayerID:     m.PlayerID,
				PlayerName:   m.PlayerName,
				Position:     m.Position,
				TeamCode:     m.TeamCode,
				Period:       m.Period,
				ChargeAmount: m.ChargeAmount,
				ObservedAt:   m.ObservedAt,
				LoadedAt:     m.LoadedAt,
			},
			TeamTotalChargeAmount: m.TeamTotalChargeAmount,
			TeamTotalCapAmount:    m.TeamTotalCapAmount,
			TeamChargePct:         m.TeamChargePct,
			PctOfTeamTotal:        m.PctOfTeamTotal,
			ImpactTier:            deadmoney.ImpactTier(m.ImpactTier),
		},
		LeagueTotalForPeriod: m.LeagueTotalForPeriod,
		PctOfLeagueTotal:     m.PctOfLeagueTotal,
		PercentileRank:       m.PercentileRank,
		RankWithinPeriod:     m.RankWithinPeriod,
	}
}
