package analytics

import "context"

// Repository reads back the published per-period summaries.
type Repository interface {
	ListSummaries(ctx context.Context) ([]PeriodSummary, error)
}
