package localdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/rawbatch"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestListBatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "spotrac_player_dead_money_2023.csv",
		"Player,Team,Year,Dead_Cap_Millions\nRussell Wilson,DEN,2023,35.4\n")
	writeFile(t, dir, "spotrac_player_dead_money_2023_refresh.csv",
		"Player,Team,Year,Dead_Cap_Millions\nRussell Wilson,DEN,2023,35.4\n")
	writeFile(t, dir, "spotrac_team_cap_2023.csv",
		"Team_Code,Year,Dead_Money_Millions\nDEN,2023,89.1\n")

	provider := NewProvider(dir, logging.NewNop())
	batches, err := provider.ListBatches(context.Background(), rawbatch.KindPlayerDeadMoney, []int{2023, 2024})
	require.NoError(t, err)
	require.Len(t, batches, 2, "team_cap files and absent periods must not appear")

	first := batches[0]
	require.Equal(t, "spotrac_player_dead_money_2023.csv", first.Source)
	require.Equal(t, 2023, first.Period)
	require.Equal(t, []string{"player", "team", "year", "dead_cap_millions"}, first.Columns)
	require.Equal(t, [][]string{{"Russell Wilson", "DEN", "2023", "35.4"}}, first.Rows)
	require.False(t, first.RetrievedAt.IsZero())

	require.Equal(t, "spotrac_player_dead_money_2023_refresh.csv", batches[1].Source)
}

func TestListBatchesEmptyDir(t *testing.T) {
	provider := NewProvider(t.TempDir(), logging.NewNop())
	batches, err := provider.ListBatches(context.Background(), rawbatch.KindTeamCap, []int{2023})
	require.NoError(t, err)
	require.Empty(t, batches)
}

func TestListBatchesHeaderOnlyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "spotrac_team_cap_2024.csv", "Team_Code,Year,Dead_Money_Millions\n")

	provider := NewProvider(dir, logging.NewNop())
	batches, err := provider.ListBatches(context.Background(), rawbatch.KindTeamCap, []int{2024})
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.True(t, batches[0].Empty())
}
