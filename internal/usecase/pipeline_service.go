package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/analytics"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/dimension"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/rawbatch"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

// PublishSet is the complete output of one run. A publisher replaces every
// relation from it atomically: consumers never observe a half-replaced set.
type PublishSet struct {
	Charges   []deadmoney.RankedCharge
	TeamCaps  []teamcap.TeamCap
	Summaries []analytics.PeriodSummary
	Teams     []dimension.Team
	LoadedAt  time.Time
}

// Publisher replaces the published relations with a run's output in a single
// all-or-nothing operation.
type Publisher interface {
	Publish(ctx context.Context, set PublishSet) error
}

// KindReport is the load-stage accounting for one source kind.
type KindReport struct {
	Batches          int   `json:"batches"`
	RawRows          int   `json:"raw_rows"`
	DroppedMalformed int   `json:"dropped_malformed"`
	MissingPeriods   []int `json:"missing_periods,omitempty"`
}

// StageTimings records per-stage wall time in milliseconds.
type StageTimings struct {
	LoadMS      int64 `json:"load_ms"`
	TransformMS int64 `json:"transform_ms"`
	PublishMS   int64 `json:"publish_ms"`
	ValidateMS  int64 `json:"validate_ms"`
}

// RunReport is the machine-readable summary of one pipeline run, emitted as
// JSON by the command wrapper.
type RunReport struct {
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	DurationMS int64        `json:"duration_ms"`
	Stages     StageTimings `json:"stages"`
	PeriodMin  int          `json:"period_min"`
	PeriodMax  int          `json:"period_max"`

	PlayerLoad       KindReport      `json:"player_load"`
	TeamLoad         KindReport      `json:"team_load"`
	PlayerNormalize  NormalizeReport `json:"player_normalize"`
	TeamNormalize    NormalizeReport `json:"team_normalize"`
	PlayerDuplicates int             `json:"player_duplicates_removed"`
	TeamDuplicates   int             `json:"team_duplicates_removed"`
	Enrich           EnrichReport    `json:"enrich"`

	ChargesPublished   int  `json:"charges_published"`
	TeamCapsPublished  int  `json:"team_caps_published"`
	SummariesPublished int  `json:"summaries_published"`
	TeamsPublished     int  `json:"teams_published"`
	Published          bool `json:"published"`

	Validation ValidationReport `json:"validation"`
}

// PipelineService wires the staged transformation end to end: load raw
// batches, normalize, deduplicate, enrich, rank, build dimensions, publish,
// then validate what was published.
type PipelineService struct {
	periodMin  int
	loader     *LoaderService
	normalizer *NormalizerService
	dedup      *DedupService
	enricher   *EnricherService
	aggregator *AggregatorService
	dimensions *DimensionService
	validator  *ValidationService
	publisher  Publisher
	logger     *logging.Logger

	now func() time.Time
}

func NewPipelineService(
	periodMin int,
	loader *LoaderService,
	normalizer *NormalizerService,
	dedup *DedupService,
	enricher *EnricherService,
	aggregator *AggregatorService,
	dimensions *DimensionService,
	validator *ValidationService,
	publisher Publisher,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PipelineService{
		periodMin:  periodMin,
		loader:     loader,
		normalizer: normalizer,
		dedup:      dedup,
		enricher:   enricher,
		aggregator: aggregator,
		dimensions: dimensions,
		validator:  validator,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one full pipeline pass. Reruns over the same raw input
// produce the same published set. A run that loads zero raw rows fails
// before publishing so a bad acquisition pass cannot wipe previously
// published tables.
func (s *PipelineService) Run(ctx context.Context) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run")
	defer span.End()

	startedAt := s.now()
	loadedAt := startedAt
	periods := periodRange(s.periodMin, loadedAt.Year())

	report := RunReport{
		StartedAt: startedAt,
		PeriodMin: periods[0],
		PeriodMax: periods[len(periods)-1],
	}
	s.logger.InfoContext(ctx, "pipeline run started",
		"period_min", report.PeriodMin,
		"period_max", report.PeriodMax,
	)

	// The two source kinds are independent until the enrichment join, so
	// they load and normalize concurrently.
	var (
		charges   []deadmoney.Charge
		caps      []teamcap.TeamCap
		playerErr error
		teamErr   error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		var table RawTable
		table, playerErr = s.loader.Load(ctx, rawbatch.KindPlayerDeadMoney, periods)
		if playerErr != nil {
			return
		}
		report.PlayerLoad = kindReport(table)
		charges, report.PlayerNormalize = s.normalizer.NormalizeCharges(table, loadedAt)
	})
	wg.Go(func() {
		var table RawTable
		table, teamErr = s.loader.Load(ctx, rawbatch.KindTeamCap, periods)
		if teamErr != nil {
			return
		}
		report.TeamLoad = kindReport(table)
		caps, report.TeamNormalize = s.normalizer.NormalizeTeamCaps(table, loadedAt)
	})
	wg.Wait()
	report.Stages.LoadMS = s.now().Sub(startedAt).Milliseconds()
	if playerErr != nil {
		return s.finish(report), fmt.Errorf("load player dead money: %w", playerErr)
	}
	if teamErr != nil {
		return s.finish(report), fmt.Errorf("load team caps: %w", teamErr)
	}
	if report.PlayerLoad.RawRows == 0 && report.TeamLoad.RawRows == 0 {
		return s.finish(report), fmt.Errorf("%w: no raw rows loaded, keeping previously published tables", ErrNoData)
	}

	transformStart := s.now()
	charges, report.PlayerDuplicates = s.dedup.DedupCharges(charges)
	caps, report.TeamDuplicates = s.dedup.DedupTeamCaps(caps)
	caps = recomputeChargePct(caps)

	var enriched []deadmoney.EnrichedCharge
	enriched, report.Enrich = s.enricher.Enrich(charges, caps)

	ranked, summaries, err := s.aggregator.Rank(ctx, enriched)
	if err != nil {
		return s.finish(report), fmt.Errorf("rank charges: %w", err)
	}
	teams := s.dimensions.BuildTeams(caps, charges, loadedAt)
	report.Stages.TransformMS = s.now().Sub(transformStart).Milliseconds()

	set := PublishSet{
		Charges:   ranked,
		TeamCaps:  caps,
		Summaries: summaries,
		Teams:     teams,
		LoadedAt:  loadedAt,
	}
	publishStart := s.now()
	if err := s.publisher.Publish(ctx, set); err != nil {
		return s.finish(report), fmt.Errorf("publish run output: %w", err)
	}
	report.Stages.PublishMS = s.now().Sub(publishStart).Milliseconds()
	report.Published = true
	report.ChargesPublished = len(ranked)
	report.TeamCapsPublished = len(caps)
	report.SummariesPublished = len(summaries)
	report.TeamsPublished = len(teams)

	validateStart := s.now()
	report.Validation = s.validator.Validate(ranked, caps, teams, loadedAt)
	report.Stages.ValidateMS = s.now().Sub(validateStart).Milliseconds()
	if !report.Validation.OK() {
		return s.finish(report), fmt.Errorf("%w: %d errors", ErrValidationFailed, len(report.Validation.Errors))
	}

	final := s.finish(report)
	s.logger.InfoContext(ctx, "pipeline run finished",
		"charges", final.ChargesPublished,
		"team_caps", final.TeamCapsPublished,
		"summaries", final.SummariesPublished,
		"teams", final.TeamsPublished,
		"duration_ms", final.DurationMS,
	)
	return final, nil
}

func (s *PipelineService) finish(report RunReport) RunReport {
	report.FinishedAt = s.now()
	report.DurationMS = report.FinishedAt.Sub(report.StartedAt).Milliseconds()
	return report
}

// recomputeChargePct replaces the scraped dead-cap percentage with one
// derived from the row's own amounts whenever the salary cap is known. The
// scraped figure survives only when the recomputation has nothing to divide
// by.
func recomputeChargePct(caps []teamcap.TeamCap) []teamcap.TeamCap {
	for i := range caps {
		if caps[i].SalaryCapAmount != nil && *caps[i].SalaryCapAmount > 0 {
			pct := caps[i].TotalChargeAmount / *caps[i].SalaryCapAmount * 100
			caps[i].ChargePct = &pct
		}
	}
	return caps
}

func kindReport(table RawTable) KindReport {
	return KindReport{
		Batches:          table.BatchCount,
		RawRows:          len(table.Records),
		DroppedMalformed: table.DroppedMalformed,
		MissingPeriods:   table.MissingPeriods,
	}
}

func periodRange(min, max int) []int {
	if max < min {
		max = min
	}
	periods := make([]int, 0, max-min+1)
	for p := min; p <= max; p++ {
		periods = append(periods, p)
	}
	return periods
}
