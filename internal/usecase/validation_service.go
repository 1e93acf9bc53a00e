package usecase

import (
	"fmt"
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/dimension"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

// minTeamsPerPeriod is the league size below which a period's team coverage
// is suspicious. The league has had 32 franchises since 2002; a little slack
// tolerates partial snapshots without going silent on truncated ones.
const minTeamsPerPeriod = 28

// ValidationReport separates violations that must fail the run from
// observations that only warrant a look.
type ValidationReport struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r ValidationReport) OK() bool { return len(r.Errors) == 0 }

type ValidationService struct {
	periodMin int
	logger    *logging.Logger
}

func NewValidationService(periodMin int, logger *logging.Logger) *ValidationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ValidationService{periodMin: periodMin, logger: logger}
}

// Validate checks the assembled relations against the contract the published
// tables promise: unique business keys, positive amounts, in-window periods
// and referential completeness against the team dimension. Percentages
// outside [0, 100] and thin per-period team coverage are warnings only.
func (s *ValidationService) Validate(charges []deadmoney.RankedCharge, caps []teamcap.TeamCap, teams []dimension.Team, loadedAt time.Time) ValidationReport {
	var report ValidationReport
	currentPeriod := loadedAt.Year()

	knownTeams := make(map[string]bool, len(teams))
	for _, team := range teams {
		if knownTeams[team.Code] {
			report.Errors = append(report.Errors, fmt.Sprintf("duplicate team dimension code %s", team.Code))
		}
		knownTeams[team.Code] = true
	}

	seenCharges := make(map[deadmoney.Key]bool, len(charges))
	for _, charge := range charges {
		key := charge.Key()
		if seenCharges[key] {
			report.Errors = append(report.Errors, fmt.Sprintf("duplicate charge key %s/%s/%d", key.PlayerID, key.TeamCode, key.Period))
		}
		seenCharges[key] = true

		if charge.ChargeAmount <= 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("non-positive charge amount for %s/%d", charge.PlayerID, charge.Period))
		}
		if charge.Period < s.periodMin || charge.Period > currentPeriod {
			report.Errors = append(report.Errors, fmt.Sprintf("charge period %d outside [%d, %d]", charge.Period, s.periodMin, currentPeriod))
		}
		if !knownTeams[charge.TeamCode] {
			report.Errors = append(report.Errors, fmt.Sprintf("charge team %s missing from team dimension", charge.TeamCode))
		}
		s.checkPct(&report, "pct_of_team_total", charge.PlayerID, charge.Period, charge.PctOfTeamTotal)
		s.checkPct(&report, "pct_of_league_total", charge.PlayerID, charge.Period, charge.PctOfLeagueTotal)
	}

	teamsPerPeriod := make(map[int]int)
	seenCaps := make(map[teamcap.Key]bool, len(caps))
	for _, snapshot := range caps {
		key := snapshot.Key()
		if seenCaps[key] {
			report.Errors = append(report.Errors, fmt.Sprintf("duplicate team cap key %s/%d", key.TeamCode, key.Period))
		}
		seenCaps[key] = true
		teamsPerPeriod[snapshot.Period]++

		if snapshot.TotalChargeAmount < 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("negative team charge total for %s/%d", snapshot.TeamCode, snapshot.Period))
		}
		if snapshot.Period < s.periodMin || snapshot.Period > currentPeriod {
			report.Errors = append(report.Errors, fmt.Sprintf("team cap period %d outside [%d, %d]", snapshot.Period, s.periodMin, currentPeriod))
		}
		if !knownTeams[snapshot.TeamCode] {
			report.Errors = append(report.Errors, fmt.Sprintf("team cap team %s missing from team dimension", snapshot.TeamCode))
		}
		s.checkPct(&report, "team_charge_pct", snapshot.TeamCode, snapshot.Period, snapshot.ChargePct)
	}

	for period, count := range teamsPerPeriod {
		if count < minTeamsPerPeriod {
			report.Warnings = append(report.Warnings, fmt.Sprintf("period %d has cap rows for only %d teams", period, count))
		}
	}

	if len(report.Errors) > 0 {
		s.logger.Error("published relations failed validation", "errors", len(report.Errors), "warnings", len(report.Warnings))
	} else if len(report.Warnings) > 0 {
		s.logger.Warn("published relations validated with warnings", "warnings", len(report.Warnings))
	} else {
		s.logger.Info("published relations validated")
	}
	return report
}

func (s *ValidationService) checkPct(report *ValidationReport, field, key string, period int, value *float64) {
	if value == nil {
		return
	}
	if *value < 0 || *value > 100 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%s %.2f outside [0, 100] for %s/%d", field, *value, key, period))
	}
}
