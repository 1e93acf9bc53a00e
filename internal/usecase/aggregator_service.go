package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/analytics"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

// AggregatorConfig tunes the league-wide ranking stage.
type AggregatorConfig struct {
	// NoiseFloor is the USD-millions threshold under which a charge is still
	// published but excluded from the ranking and summary universe.
	NoiseFloor float64
	// PercentileCutoffs are the percentile levels computed per period. The
	// summary row carries the 75/90/95 levels; omitting one leaves its column
	// at zero.
	PercentileCutoffs []float64
	// MaxWorkers bounds the per-period worker pool.
	MaxWorkers int
}

type AggregatorService struct {
	cfg    AggregatorConfig
	logger *logging.Logger
}

func NewAggregatorService(cfg AggregatorConfig, logger *logging.Logger) *AggregatorService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	return &AggregatorService{cfg: cfg, logger: logger}
}

// periodResult is what one pool task produces for one period.
type periodResult struct {
	ranked  []deadmoney.RankedCharge
	summary *analytics.PeriodSummary
}

// Rank computes the league-wide distribution fields for every enriched
// charge and one summary row per period. Periods are independent, so each is
// ranked by its own pool task. Charges under the noise floor are passed
// through with nil rank and percentile fields. Output ordering is
// deterministic: period ascending, discovery order within a period.
func (s *AggregatorService) Rank(ctx context.Context, charges []deadmoney.EnrichedCharge) ([]deadmoney.RankedCharge, []analytics.PeriodSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregatorService.Rank")
	defer span.End()

	byPeriod := make(map[int][]deadmoney.EnrichedCharge)
	for _, charge := range charges {
		byPeriod[charge.Period] = append(byPeriod[charge.Period], charge)
	}
	periods := make([]int, 0, len(byPeriod))
	for period := range byPeriod {
		periods = append(periods, period)
	}
	sort.Ints(periods)

	pool, err := ants.NewPool(s.cfg.MaxWorkers)
	if err != nil {
		return nil, nil, fmt.Errorf("create aggregation pool: %w", err)
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[int]periodResult, len(periods))
	)
	for _, period := range periods {
		period := period
		rows := byPeriod[period]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			result := s.rankPeriod(period, rows)
			mu.Lock()
			results[period] = result
			mu.Unlock()
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			return nil, nil, fmt.Errorf("submit period %d: %w", period, err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	ranked := make([]deadmoney.RankedCharge, 0, len(charges))
	summaries := make([]analytics.PeriodSummary, 0, len(periods))
	for _, period := range periods {
		result := results[period]
		ranked = append(ranked, result.ranked...)
		if result.summary != nil {
			summaries = append(summaries, *result.summary)
		}
	}

	s.logger.InfoContext(ctx, "charges ranked",
		"charges", len(ranked),
		"periods", len(periods),
		"summaries", len(summaries),
	)
	return ranked, summaries, nil
}

// rankPeriod ranks one period's charges against each other. The ranking
// universe is the subset at or above the noise floor; amounts below it keep
// nil distribution fields.
func (s *AggregatorService) rankPeriod(period int, rows []deadmoney.EnrichedCharge) periodResult {
	universe := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.ChargeAmount >= s.cfg.NoiseFloor {
			universe = append(universe, row.ChargeAmount)
		}
	}
	sort.Float64s(universe)

	var leagueTotal float64
	for _, amount := range universe {
		leagueTotal += amount
	}

	rankOf := denseRanks(universe)

	ranked := make([]deadmoney.RankedCharge, 0, len(rows))
	for _, row := range rows {
		rc := deadmoney.RankedCharge{
			EnrichedCharge:       row,
			LeagueTotalForPeriod: leagueTotal,
		}
		if leagueTotal > 0 {
			share := row.ChargeAmount / leagueTotal * 100
			rc.PctOfLeagueTotal = &share
		}
		if row.ChargeAmount >= s.cfg.NoiseFloor && len(universe) > 0 {
			rank := rankOf[row.ChargeAmount]
			rc.RankWithinPeriod = &rank

			smaller := sort.SearchFloat64s(universe, row.ChargeAmount)
			pctRank := float64(smaller) / float64(len(universe))
			rc.PercentileRank = &pctRank
		}
		ranked = append(ranked, rc)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Seq < ranked[j].Seq })

	result := periodResult{ranked: ranked}
	if len(universe) > 0 {
		summary := s.summarize(period, universe, leagueTotal)
		result.summary = &summary
	}
	return result
}

// summarize computes the distribution row for one period over the ascending
// universe amounts.
func (s *AggregatorService) summarize(period int, ascending []float64, total float64) analytics.PeriodSummary {
	n := len(ascending)
	mean := total / float64(n)

	var variance float64
	for _, amount := range ascending {
		d := amount - mean
		variance += d * d
	}
	variance /= float64(n)

	summary := analytics.PeriodSummary{
		Period: period,
		Total:  total,
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Max:    ascending[n-1],
		Count:  n,
	}
	for _, cutoff := range s.cfg.PercentileCutoffs {
		value := percentileAt(ascending, cutoff)
		switch cutoff {
		case 75:
			summary.P75 = value
		case 90:
			summary.P90 = value
		case 95:
			summary.P95 = value
		}
	}
	return summary
}

// denseRanks maps each distinct amount to its 1-based rank, largest first.
// Equal amounts share a rank and the next distinct amount takes the next
// integer.
func denseRanks(ascending []float64) map[float64]int {
	ranks := make(map[float64]int, len(ascending))
	rank := 0
	for i := len(ascending) - 1; i >= 0; i-- {
		if _, seen := ranks[ascending[i]]; !seen {
			rank++
			ranks[ascending[i]] = rank
		}
	}
	return ranks
}

// percentileAt returns the linearly interpolated percentile (0-100 scale)
// over amounts sorted ascending.
func percentileAt(ascending []float64, cutoff float64) float64 {
	n := len(ascending)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return ascending[0]
	}
	h := (float64(n) - 1) * cutoff / 100
	lower := int(math.Floor(h))
	if lower >= n-1 {
		return ascending[n-1]
	}
	frac := h - float64(lower)
	return ascending[lower] + frac*(ascending[lower+1]-ascending[lower])
}
