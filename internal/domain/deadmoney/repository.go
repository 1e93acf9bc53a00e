package deadmoney

import "context"

// Repository reads back the published player-period ranked fact.
type Repository interface {
	ListByPeriod(ctx context.Context, period int) ([]RankedCharge, error)
	ListAll(ctx context.Context) ([]RankedCharge, error)
}
