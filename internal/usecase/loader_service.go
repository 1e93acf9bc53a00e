package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/rawbatch"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

// RawRecord is one raw row flattened to a field-name → raw-value map, plus
// the provenance the deduplicator needs: when its batch was retrieved and
// its global position in batch-discovery order.
type RawRecord struct {
	Values     map[string]string
	ObservedAt time.Time
	Seq        int
}

// RawTable is every surviving raw row of one source kind, concatenated over
// all discovered batches.
type RawTable struct {
	Kind             rawbatch.Kind
	Records          []RawRecord
	BatchCount       int
	DroppedMalformed int
	MissingPeriods   []int
}

type LoaderService struct {
	provider rawbatch.Provider
	logger   *logging.Logger
}

func NewLoaderService(provider rawbatch.Provider, logger *logging.Logger) *LoaderService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LoaderService{provider: provider, logger: logger}
}

// Load materializes all raw batches of one kind for the requested periods.
// Rows with the wrong arity are dropped and counted; a period with no batch
// is recorded as missing, never treated as an error. Values are kept as raw
// strings: typing is the normalizer's job.
func (s *LoaderService) Load(ctx context.Context, kind rawbatch.Kind, periods []int) (RawTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LoaderService.Load")
	defer span.End()

	if !kind.Valid() {
		return RawTable{}, fmt.Errorf("%w: unknown source kind %q", ErrInvalidInput, kind)
	}
	if len(periods) == 0 {
		return RawTable{}, fmt.Errorf("%w: at least one period is required", ErrInvalidInput)
	}

	batches, err := s.provider.ListBatches(ctx, kind, periods)
	if err != nil {
		return RawTable{}, fmt.Errorf("list %s batches: %w", kind, err)
	}

	table := RawTable{Kind: kind}
	covered := make(map[int]bool, len(periods))
	seq := 0
	for _, batch := range batches {
		if err := batch.Validate(); err != nil {
			return RawTable{}, fmt.Errorf("invalid %s batch: %w", kind, err)
		}
		table.BatchCount++
		if !batch.Empty() {
			covered[batch.Period] = true
		}

		for _, row := range batch.Rows {
			if len(row) != len(batch.Columns) {
				table.DroppedMalformed++
				continue
			}
			values := make(map[string]string, len(batch.Columns))
			for i, column := range batch.Columns {
				values[column] = row[i]
			}
			table.Records = append(table.Records, RawRecord{
				Values:     values,
				ObservedAt: batch.RetrievedAt,
				Seq:        seq,
			})
			seq++
		}
	}

	for _, period := range periods {
		if !covered[period] {
			table.MissingPeriods = append(table.MissingPeriods, period)
		}
	}

	if table.DroppedMalformed > 0 {
		s.logger.WarnContext(ctx, "dropped malformed raw rows",
			"kind", string(kind),
			"dropped", table.DroppedMalformed,
		)
	}
	s.logger.InfoContext(ctx, "raw batches loaded",
		"kind", string(kind),
		"batches", table.BatchCount,
		"rows", len(table.Records),
		"missing_periods", len(table.MissingPeriods),
	)

	return table, nil
}
