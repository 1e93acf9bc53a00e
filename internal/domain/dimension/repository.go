package dimension

import "context"

// Repository reads back the published team dimension.
type Repository interface {
	ListTeams(ctx context.Context) ([]Team, error)
}
