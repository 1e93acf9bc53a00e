package usecase

import (
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

// TierThresholds are the impact-tier cut points in USD millions. A charge at
// or above Major is "major", at or above Significant is "significant",
// everything below is "minor".
type TierThresholds struct {
	Significant float64
	Major       float64
}

// EnrichReport carries the join accounting surfaced in the run report.
type EnrichReport struct {
	Input        int `json:"input"`
	JoinMisses   int `json:"join_misses"`
	PctAnomalies int `json:"pct_anomalies"`
}

type EnricherService struct {
	tiers  TierThresholds
	logger *logging.Logger
}

func NewEnricherService(tiers TierThresholds, logger *logging.Logger) *EnricherService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EnricherService{tiers: tiers, logger: logger}
}

// Enrich left-joins each player charge against its team's cap snapshot for
// the same period and derives the share-of-team and impact-tier fields. A
// charge with no matching team keeps nil team fields and is counted as a
// join miss; it is never dropped. A team total of zero leaves the share nil
// rather than dividing by zero.
func (s *EnricherService) Enrich(charges []deadmoney.Charge, caps []teamcap.TeamCap) ([]deadmoney.EnrichedCharge, EnrichReport) {
	report := EnrichReport{Input: len(charges)}

	byTeamPeriod := make(map[teamcap.Key]teamcap.TeamCap, len(caps))
	for _, c := range caps {
		byTeamPeriod[c.Key()] = c
	}

	out := make([]deadmoney.EnrichedCharge, 0, len(charges))
	for _, charge := range charges {
		enriched := deadmoney.EnrichedCharge{
			Charge:     charge,
			ImpactTier: s.tierFor(charge.ChargeAmount),
		}

		snapshot, ok := byTeamPeriod[teamcap.Key{TeamCode: charge.TeamCode, Period: charge.Period}]
		if !ok {
			report.JoinMisses++
			out = append(out, enriched)
			continue
		}

		total := snapshot.TotalChargeAmount
		enriched.TeamTotalChargeAmount = &total
		enriched.TeamTotalCapAmount = snapshot.SalaryCapAmount
		enriched.TeamChargePct = snapshot.ChargePct

		if total > 0 {
			share := charge.ChargeAmount / total * 100
			enriched.PctOfTeamTotal = &share
			if share > 100 {
				report.PctAnomalies++
			}
		}

		out = append(out, enriched)
	}

	s.logger.Info("player charges enriched",
		"input", report.Input,
		"join_misses", report.JoinMisses,
		"pct_anomalies", report.PctAnomalies,
	)
	return out, report
}

func (s *EnricherService) tierFor(amount float64) deadmoney.ImpactTier {
	switch {
	case amount >= s.tiers.Major:
		return deadmoney.TierMajor
	case amount >= s.tiers.Significant:
		return deadmoney.TierSignificant
	default:
		return deadmoney.TierMinor
	}
}
