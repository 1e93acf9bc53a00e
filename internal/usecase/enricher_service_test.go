package usecase

import (
	"testing"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

var testTiers = TierThresholds{Significant: 2, Major: 10}

func TestEnrichJoinsTeamContext(t *testing.T) {
	svc := NewEnricherService(testTiers, logging.NewNop())
	salaryCap := 224.8

	charges := []deadmoney.Charge{
		{PlayerID: "p1", TeamCode: "DEN", Period: 2023, ChargeAmount: 35.4, Seq: 0},
		{PlayerID: "p2", TeamCode: "XXX", Period: 2023, ChargeAmount: 5, Seq: 1},
	}
	caps := []teamcap.TeamCap{
		{TeamCode: "DEN", Period: 2023, TotalChargeAmount: 88.5, SalaryCapAmount: &salaryCap},
	}

	out, report := svc.Enrich(charges, caps)
	if len(out) != 2 {
		t.Fatalf("expected every charge to survive the join, got %d", len(out))
	}
	if report.JoinMisses != 1 {
		t.Fatalf("expected 1 join miss, got %d", report.JoinMisses)
	}

	joined := out[0]
	if joined.TeamTotalChargeAmount == nil || *joined.TeamTotalChargeAmount != 88.5 {
		t.Fatalf("expected team total joined, got %v", joined.TeamTotalChargeAmount)
	}
	if joined.PctOfTeamTotal == nil || *joined.PctOfTeamTotal != 35.4/88.5*100 {
		t.Fatalf("unexpected share of team total: %v", joined.PctOfTeamTotal)
	}

	missed := out[1]
	if missed.TeamTotalChargeAmount != nil || missed.PctOfTeamTotal != nil {
		t.Fatalf("expected nil team fields on join miss, got %+v", missed)
	}
	if missed.ImpactTier != deadmoney.TierSignificant {
		t.Fatalf("tier should not depend on the join, got %q", missed.ImpactTier)
	}
}

func TestEnrichZeroTeamTotalLeavesShareNil(t *testing.T) {
	svc := NewEnricherService(testTiers, logging.NewNop())

	charges := []deadmoney.Charge{{PlayerID: "p1", TeamCode: "GB", Period: 2023, ChargeAmount: 1.5}}
	caps := []teamcap.TeamCap{{TeamCode: "GB", Period: 2023, TotalChargeAmount: 0}}

	out, _ := svc.Enrich(charges, caps)
	if out[0].TeamTotalChargeAmount == nil || *out[0].TeamTotalChargeAmount != 0 {
		t.Fatalf("expected joined zero total, got %v", out[0].TeamTotalChargeAmount)
	}
	if out[0].PctOfTeamTotal != nil {
		t.Fatalf("expected nil share for zero team total, got %v", *out[0].PctOfTeamTotal)
	}
}

func TestEnrichImpactTiers(t *testing.T) {
	svc := NewEnricherService(testTiers, logging.NewNop())

	cases := []struct {
		amount float64
		want   deadmoney.ImpactTier
	}{
		{0.5, deadmoney.TierMinor},
		{1.99, deadmoney.TierMinor},
		{2, deadmoney.TierSignificant},
		{9.99, deadmoney.TierSignificant},
		{10, deadmoney.TierMajor},
		{35.4, deadmoney.TierMajor},
	}
	for _, tc := range cases {
		if got := svc.tierFor(tc.amount); got != tc.want {
			t.Fatalf("tierFor(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
