package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

// Column aliases accepted per source kind. Export headers drifted across
// snapshot vintages, so each canonical field matches the first non-empty
// alias. Columns outside these lists are ignored.
var (
	playerIDColumns     = []string{"player_id"}
	playerNameColumns   = []string{"player_name", "player"}
	positionColumns     = []string{"position", "pos"}
	playerTeamColumns   = []string{"team", "team_code"}
	periodColumns       = []string{"year", "season", "period"}
	playerAmountColumns = []string{"dead_cap_millions", "dead_cap_hit", "dead_money_millions"}

	teamCodeColumns      = []string{"team_code", "team", "abbreviation"}
	teamNameColumns      = []string{"team_name"}
	activeCapColumns     = []string{"active_cap_millions", "active_cap"}
	teamChargeColumns    = []string{"dead_money_millions", "dead_cap_millions", "dead_money"}
	salaryCapColumns     = []string{"salary_cap_millions", "salary_cap"}
	capSpaceColumns      = []string{"cap_space_millions", "cap_space"}
	teamChargePctColumns = []string{"dead_cap_pct", "dead_money_pct"}
)

// NormalizeReport carries the per-stage drop accounting surfaced in the run
// report. Row-level defects never fail a run.
type NormalizeReport struct {
	Input              int `json:"input"`
	Output             int `json:"output"`
	DroppedEssential   int `json:"dropped_essential"`
	DroppedNonPositive int `json:"dropped_non_positive"`
	DroppedOutOfWindow int `json:"dropped_out_of_window"`
	NulledFields       int `json:"nulled_fields"`
}

type NormalizerService struct {
	periodMin int
	logger    *logging.Logger
}

func NewNormalizerService(periodMin int, logger *logging.Logger) *NormalizerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &NormalizerService{periodMin: periodMin, logger: logger}
}

// NormalizeCharges turns raw player rows into typed staged charges. Rows
// missing an essential field (name, team, period, amount) are dropped and
// counted; non-positive amounts and out-of-window periods likewise. Every
// surviving row is stamped with the injected loadedAt so reruns over the
// same input are reproducible.
func (s *NormalizerService) NormalizeCharges(table RawTable, loadedAt time.Time) ([]deadmoney.Charge, NormalizeReport) {
	report := NormalizeReport{Input: len(table.Records)}
	currentPeriod := loadedAt.Year()

	out := make([]deadmoney.Charge, 0, len(table.Records))
	for _, record := range table.Records {
		name := strings.TrimSpace(firstValue(record.Values, playerNameColumns))
		team := normalizeTeamCode(firstValue(record.Values, playerTeamColumns))
		period, periodOK := parsePeriod(firstValue(record.Values, periodColumns))
		amount, amountOK := parseAmount(firstValue(record.Values, playerAmountColumns))
		if name == "" || team == "" || !periodOK || !amountOK {
			report.DroppedEssential++
			continue
		}
		if amount <= 0 {
			report.DroppedNonPositive++
			continue
		}
		if period < s.periodMin || period > currentPeriod {
			report.DroppedOutOfWindow++
			continue
		}

		playerID := strings.TrimSpace(firstValue(record.Values, playerIDColumns))
		if playerID == "" {
			playerID = derivePlayerID(name, team, period)
		}

		out = append(out, deadmoney.Charge{
			PlayerID:     playerID,
			PlayerName:   name,
			Position:     strings.ToUpper(strings.TrimSpace(firstValue(record.Values, positionColumns))),
			TeamCode:     team,
			Period:       period,
			ChargeAmount: amount,
			LoadedAt:     loadedAt,
			ObservedAt:   record.ObservedAt,
			Seq:          record.Seq,
		})
	}

	report.Output = len(out)
	s.logReport("player charges normalized", report)
	return out, report
}

// NormalizeTeamCaps turns raw team rows into typed staged cap snapshots.
// Essential fields are team code, period and the total charge amount; the
// remaining amounts are nulled, not dropped, when they fail to coerce.
func (s *NormalizerService) NormalizeTeamCaps(table RawTable, loadedAt time.Time) ([]teamcap.TeamCap, NormalizeReport) {
	report := NormalizeReport{Input: len(table.Records)}
	currentPeriod := loadedAt.Year()

	out := make([]teamcap.TeamCap, 0, len(table.Records))
	for _, record := range table.Records {
		name := strings.TrimSpace(firstValue(record.Values, teamNameColumns))
		code := normalizeTeamCode(firstValue(record.Values, teamCodeColumns))
		if code == "" {
			// Some vintages only carry the display name; it then doubles as
			// the code until a better-sourced batch supplies one.
			code = normalizeTeamCode(name)
		}
		period, periodOK := parsePeriod(firstValue(record.Values, periodColumns))
		total, totalOK := parseAmount(firstValue(record.Values, teamChargeColumns))
		if code == "" || !periodOK || !totalOK {
			report.DroppedEssential++
			continue
		}
		if total < 0 {
			report.DroppedNonPositive++
			continue
		}
		if period < s.periodMin || period > currentPeriod {
			report.DroppedOutOfWindow++
			continue
		}

		staged := teamcap.TeamCap{
			TeamCode:          code,
			TeamName:          name,
			Period:            period,
			TotalChargeAmount: total,
			LoadedAt:          loadedAt,
			ObservedAt:        record.ObservedAt,
			Seq:               record.Seq,
		}
		staged.ActiveCapAmount = s.optionalAmount(record.Values, activeCapColumns, &report)
		staged.SalaryCapAmount = s.optionalAmount(record.Values, salaryCapColumns, &report)
		staged.CapSpaceAmount = s.optionalAmount(record.Values, capSpaceColumns, &report)
		staged.ChargePct = s.optionalAmount(record.Values, teamChargePctColumns, &report)

		out = append(out, staged)
	}

	report.Output = len(out)
	s.logReport("team caps normalized", report)
	return out, report
}

func (s *NormalizerService) logReport(msg string, report NormalizeReport) {
	s.logger.Info(msg,
		"input", report.Input,
		"output", report.Output,
		"dropped_essential", report.DroppedEssential,
		"dropped_non_positive", report.DroppedNonPositive,
		"dropped_out_of_window", report.DroppedOutOfWindow,
		"nulled_fields", report.NulledFields,
	)
}

func (s *NormalizerService) optionalAmount(values map[string]string, columns []string, report *NormalizeReport) *float64 {
	raw := strings.TrimSpace(firstValue(values, columns))
	if raw == "" {
		return nil
	}
	amount, ok := parseAmount(raw)
	if !ok {
		report.NulledFields++
		return nil
	}
	return &amount
}

func firstValue(values map[string]string, columns []string) string {
	for _, column := range columns {
		if v, ok := values[column]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseAmount coerces a monetary string to float64, tolerating currency
// symbols, thousands separators and a trailing M suffix.
func parseAmount(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(strings.ToUpper(cleaned), "M")
	if cleaned == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

func parsePeriod(raw string) (int, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, false
	}
	period, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return period, true
}

func normalizeTeamCode(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}

// derivePlayerID builds the synthetic player key used when an export has no
// id column: the same name_team_period slug the historical data carries.
func derivePlayerID(name, team string, period int) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "_"))
	slug = strings.ReplaceAll(slug, ".", "")
	slug = strings.ReplaceAll(slug, "'", "")
	return fmt.Sprintf("%s_%s_%d", slug, strings.ToLower(team), period)
}
