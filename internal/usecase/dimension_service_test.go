package usecase

import (
	"testing"
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

func TestBuildTeams(t *testing.T) {
	loadedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewDimensionService(logging.NewNop())

	caps := []teamcap.TeamCap{
		{TeamCode: "DEN", TeamName: "Denver Broncos", Period: 2023},
		{TeamCode: "DEN", TeamName: "Denver Broncos FC", Period: 2024}, // later name must not win
		{TeamCode: "GB", TeamName: "", Period: 2023},
	}
	charges := []deadmoney.Charge{
		{PlayerID: "p1", TeamCode: "LV", Period: 2023, ChargeAmount: 1},
		{PlayerID: "p2", TeamCode: "DEN", Period: 2023, ChargeAmount: 2},
	}

	teams := svc.BuildTeams(caps, charges, loadedAt)
	if len(teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(teams))
	}
	if teams[0].Code != "DEN" || teams[1].Code != "GB" || teams[2].Code != "LV" {
		t.Fatalf("expected teams sorted by code, got %+v", teams)
	}
	if teams[0].Name != "Denver Broncos" {
		t.Fatalf("first observed name must win, got %q", teams[0].Name)
	}
	if teams[1].Name != "GB" {
		t.Fatalf("blank name falls back to code, got %q", teams[1].Name)
	}
	if teams[2].Name != "LV" {
		t.Fatalf("charge-only team uses its code as name, got %q", teams[2].Name)
	}
	if !teams[0].CreatedAt.Equal(loadedAt) {
		t.Fatalf("expected CreatedAt stamped with loadedAt")
	}
}
