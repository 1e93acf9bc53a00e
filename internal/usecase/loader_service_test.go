package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/rawbatch"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

type stubProvider struct {
	batches map[rawbatch.Kind][]rawbatch.Batch
	err     error
}

func (p *stubProvider) ListBatches(_ context.Context, kind rawbatch.Kind, _ []int) ([]rawbatch.Batch, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.batches[kind], nil
}

func TestLoaderServiceLoad(t *testing.T) {
	retrieved := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	provider := &stubProvider{batches: map[rawbatch.Kind][]rawbatch.Batch{
		rawbatch.KindPlayerDeadMoney: {
			{
				Kind:        rawbatch.KindPlayerDeadMoney,
				Period:      2023,
				Source:      "spotrac_player_dead_money_2023.csv",
				Columns:     []string{"player", "team", "year", "dead_cap_millions"},
				Rows:        [][]string{{"Russell Wilson", "DEN", "2023", "35.4"}, {"short", "row"}},
				RetrievedAt: retrieved,
			},
			{
				Kind:        rawbatch.KindPlayerDeadMoney,
				Period:      2024,
				Source:      "spotrac_player_dead_money_2024.csv",
				Columns:     []string{"player", "team", "year", "dead_cap_millions"},
				Rows:        [][]string{{"Derek Carr", "LV", "2024", "11.3"}},
				RetrievedAt: retrieved,
			},
		},
	}}
	svc := NewLoaderService(provider, logging.NewNop())

	table, err := svc.Load(context.Background(), rawbatch.KindPlayerDeadMoney, []int{2023, 2024, 2025})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if table.BatchCount != 2 {
		t.Fatalf("expected 2 batches, got %d", table.BatchCount)
	}
	if len(table.Records) != 2 {
		t.Fatalf("expected 2 surviving records, got %d", len(table.Records))
	}
	if table.DroppedMalformed != 1 {
		t.Fatalf("expected 1 malformed row dropped, got %d", table.DroppedMalformed)
	}
	if len(table.MissingPeriods) != 1 || table.MissingPeriods[0] != 2025 {
		t.Fatalf("expected period 2025 missing, got %v", table.MissingPeriods)
	}

	if got := table.Records[0].Values["player"]; got != "Russell Wilson" {
		t.Fatalf("unexpected first record player: %q", got)
	}
	if table.Records[0].Seq != 0 || table.Records[1].Seq != 1 {
		t.Fatalf("expected sequential seq values, got %d and %d", table.Records[0].Seq, table.Records[1].Seq)
	}
	if !table.Records[1].ObservedAt.Equal(retrieved) {
		t.Fatalf("expected record stamped with batch retrieval time")
	}
}

func TestLoaderServiceLoadInvalidInput(t *testing.T) {
	svc := NewLoaderService(&stubProvider{}, logging.NewNop())

	if _, err := svc.Load(context.Background(), rawbatch.Kind("bogus"), []int{2024}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown kind, got %v", err)
	}
	if _, err := svc.Load(context.Background(), rawbatch.KindTeamCap, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty periods, got %v", err)
	}
}

func TestLoaderServiceLoadProviderError(t *testing.T) {
	wantErr := errors.New("disk gone")
	svc := NewLoaderService(&stubProvider{err: wantErr}, logging.NewNop())

	if _, err := svc.Load(context.Background(), rawbatch.KindTeamCap, []int{2024}); !errors.Is(err, wantErr) {
		t.Fatalf("expected provider error to propagate, got %v", err)
	}
}
