package usecase

import (
	"testing"
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

var normalizeLoadedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func rawRecords(values ...map[string]string) []RawRecord {
	records := make([]RawRecord, 0, len(values))
	for i, v := range values {
		records = append(records, RawRecord{Values: v, ObservedAt: normalizeLoadedAt, Seq: i})
	}
	return records
}

func TestNormalizeCharges(t *testing.T) {
	svc := NewNormalizerService(2011, logging.NewNop())

	table := RawTable{Records: rawRecords(
		map[string]string{"player": "Russell Wilson", "team": "den", "year": "2023", "dead_cap_millions": "$35.4M"},
		map[string]string{"player": "", "team": "DEN", "year": "2023", "dead_cap_millions": "1.0"},
		map[string]string{"player": "Ghost Entry", "team": "DEN", "year": "2023", "dead_cap_millions": "0"},
		map[string]string{"player": "Old Timer", "team": "GB", "year": "2009", "dead_cap_millions": "2.0"},
		map[string]string{"player": "Future Man", "team": "GB", "year": "2026", "dead_cap_millions": "2.0"},
	)}

	charges, report := svc.NormalizeCharges(table, normalizeLoadedAt)
	if len(charges) != 1 {
		t.Fatalf("expected 1 surviving charge, got %d", len(charges))
	}
	if report.DroppedEssential != 1 || report.DroppedNonPositive != 1 || report.DroppedOutOfWindow != 2 {
		t.Fatalf("unexpected drop accounting: %+v", report)
	}

	charge := charges[0]
	if charge.TeamCode != "DEN" {
		t.Fatalf("expected team code upper-cased, got %q", charge.TeamCode)
	}
	if charge.ChargeAmount != 35.4 {
		t.Fatalf("expected currency noise stripped, got %v", charge.ChargeAmount)
	}
	if charge.PlayerID != "russell_wilson_den_2023" {
		t.Fatalf("unexpected derived player id %q", charge.PlayerID)
	}
	if !charge.LoadedAt.Equal(normalizeLoadedAt) {
		t.Fatalf("expected charge stamped with loadedAt")
	}
}

func TestNormalizeChargesKeepsExplicitPlayerID(t *testing.T) {
	svc := NewNormalizerService(2011, logging.NewNop())

	table := RawTable{Records: rawRecords(
		map[string]string{"player_id": "wilsru01", "player": "Russell Wilson", "team": "DEN", "year": "2023", "dead_cap_millions": "35.4"},
	)}
	charges, _ := svc.NormalizeCharges(table, normalizeLoadedAt)
	if len(charges) != 1 || charges[0].PlayerID != "wilsru01" {
		t.Fatalf("expected explicit player id to win, got %+v", charges)
	}
}

func TestNormalizeTeamCaps(t *testing.T) {
	svc := NewNormalizerService(2011, logging.NewNop())

	table := RawTable{Records: rawRecords(
		map[string]string{
			"team_code":           "DEN",
			"team_name":           "Denver Broncos",
			"year":                "2023",
			"dead_money_millions": "89.1",
			"salary_cap_millions": "224.8",
			"cap_space_millions":  "not-a-number",
		},
		map[string]string{"team_name": "Green Bay Packers", "year": "2023", "dead_money_millions": "0"},
		map[string]string{"team_code": "LV", "year": "2023", "dead_money_millions": ""},
	)}

	caps, report := svc.NormalizeTeamCaps(table, normalizeLoadedAt)
	if len(caps) != 2 {
		t.Fatalf("expected 2 surviving caps, got %d", len(caps))
	}
	if report.DroppedEssential != 1 {
		t.Fatalf("expected 1 essential drop, got %d", report.DroppedEssential)
	}
	if report.NulledFields != 1 {
		t.Fatalf("expected 1 nulled optional field, got %d", report.NulledFields)
	}

	den := caps[0]
	if den.SalaryCapAmount == nil || *den.SalaryCapAmount != 224.8 {
		t.Fatalf("expected salary cap parsed, got %v", den.SalaryCapAmount)
	}
	if den.CapSpaceAmount != nil {
		t.Fatalf("expected unparseable cap space nulled, got %v", *den.CapSpaceAmount)
	}

	// A row without a code keeps its name as the code so it can still join.
	gb := caps[1]
	if gb.TeamCode != "GREEN BAY PACKERS" {
		t.Fatalf("expected name fallback code, got %q", gb.TeamCode)
	}
	if gb.TotalChargeAmount != 0 {
		t.Fatalf("zero team total is valid, got %v", gb.TotalChargeAmount)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"35.4", 35.4, true},
		{"$1,234.5", 1234.5, true},
		{"12M", 12, true},
		{"$0.5M", 0.5, true},
		{"-3.2", -3.2, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseAmount(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parseAmount(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
