package teamcap

import "context"

// Repository reads back the published team-period fact.
type Repository interface {
	ListByPeriod(ctx context.Context, period int) ([]TeamCap, error)
	ListAll(ctx context.Context) ([]TeamCap, error)
}
