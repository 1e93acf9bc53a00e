package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PeriodMin != 2011 {
		t.Fatalf("unexpected PeriodMin: %d", cfg.PeriodMin)
	}
	if cfg.Analytics.TierSignificant != 2.0 || cfg.Analytics.TierMajor != 10.0 {
		t.Fatalf("unexpected tier thresholds: %+v", cfg.Analytics)
	}
	if len(cfg.Analytics.PercentileCutoffs) != 3 || cfg.Analytics.PercentileCutoffs[1] != 90 {
		t.Fatalf("unexpected percentile cutoffs: %v", cfg.Analytics.PercentileCutoffs)
	}
	if cfg.RawDataDir != "data/raw" {
		t.Fatalf("unexpected RawDataDir: %q", cfg.RawDataDir)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_TierOrderingValidated(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("IMPACT_TIER_SIGNIFICANT", "12")
	t.Setenv("IMPACT_TIER_MAJOR", "5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when major tier is below significant tier")
	}
}

func TestLoad_PercentileCutoffBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PERCENTILE_CUTOFFS", "75,150")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for cutoff outside (0,100)")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_SpotracConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SPOTRAC_ENABLED", "true")
	t.Setenv("SPOTRAC_TIMEOUT", "45s")
	t.Setenv("SPOTRAC_MAX_RETRIES", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.SpotracEnabled {
		t.Fatalf("expected SpotracEnabled=true")
	}
	if cfg.SpotracTimeout != 45*time.Second {
		t.Fatalf("unexpected SpotracTimeout: %s", cfg.SpotracTimeout)
	}
	if cfg.SpotracMaxRetries != 4 {
		t.Fatalf("unexpected SpotracMaxRetries: %d", cfg.SpotracMaxRetries)
	}
}

func TestLoad_PeriodMinFloor(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PERIOD_MIN", "1980")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for PERIOD_MIN before the cap era")
	}
}
