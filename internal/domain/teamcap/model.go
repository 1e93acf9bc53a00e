package teamcap

import (
	"fmt"
	"time"
)

// TeamCap is one staged, typed team-level cap snapshot for a period.
// Amounts are USD millions. Non-essential amounts that failed coercion are
// nil rather than zero so downstream math can tell "unknown" from "0".
type TeamCap struct {
	TeamCode          string
	TeamName          string
	Period            int
	ActiveCapAmount   *float64
	TotalChargeAmount float64
	SalaryCapAmount   *float64
	CapSpaceAmount    *float64
	ChargePct         *float64
	LoadedAt          time.Time

	ObservedAt time.Time
	Seq        int
}

// Key is the business key for a team cap observation.
type Key struct {
	TeamCode string
	Period   int
}

func (t TeamCap) Key() Key {
	return Key{TeamCode: t.TeamCode, Period: t.Period}
}

func (t TeamCap) Validate() error {
	if t.TeamCode == "" {
		return fmt.Errorf("team cap team code is required")
	}
	if t.Period <= 0 {
		return fmt.Errorf("team cap period must be greater than zero")
	}
	if t.TotalChargeAmount < 0 {
		return fmt.Errorf("team cap total charge amount cannot be negative")
	}

	return nil
}
