package memory

import (
	"context"
	"testing"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/usecase"
	"github.com/stretchr/testify/require"
)

func publishedCharge(id string, period int) deadmoney.RankedCharge {
	return deadmoney.RankedCharge{EnrichedCharge: deadmoney.EnrichedCharge{Charge: deadmoney.Charge{
		PlayerID:     id,
		TeamCode:     "DEN",
		Period:       period,
		ChargeAmount: 1,
	}}}
}

func TestStorePublishReplacesWholeSet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Publish(ctx, usecase.PublishSet{
		Charges:  []deadmoney.RankedCharge{publishedCharge("p1", 2023), publishedCharge("p2", 2024)},
		TeamCaps: []teamcap.TeamCap{{TeamCode: "DEN", Period: 2023, TotalChargeAmount: 10}},
	}))

	byPeriod, err := store.ListByPeriod(ctx, 2023)
	require.NoError(t, err)
	require.Len(t, byPeriod, 1)
	require.Equal(t, "p1", byPeriod[0].PlayerID)

	// A second publish fully replaces the first, it never appends.
	require.NoError(t, store.Publish(ctx, usecase.PublishSet{
		Charges: []deadmoney.RankedCharge{publishedCharge("p3", 2023)},
	}))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "p3", all[0].PlayerID)

	caps, err := store.ListAllTeamCaps(ctx)
	require.NoError(t, err)
	require.Empty(t, caps)
}

func TestStoreRepositoriesReadPublishedSet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Publish(ctx, usecase.PublishSet{
		Charges:  []deadmoney.RankedCharge{publishedCharge("p1", 2023)},
		TeamCaps: []teamcap.TeamCap{{TeamCode: "DEN", Period: 2023, TotalChargeAmount: 10}},
	}))

	charges, err := NewChargeRepository(store).ListByPeriod(ctx, 2023)
	require.NoError(t, err)
	require.Len(t, charges, 1)

	caps, err := NewTeamCapRepository(store).ListByPeriod(ctx, 2023)
	require.NoError(t, err)
	require.Len(t, caps, 1)
}
