package deadmoney

import (
	"fmt"
	"time"
)

// ImpactTier buckets the magnitude of a single dead-money charge.
type ImpactTier string

const (
	TierMinor       ImpactTier = "minor"
	TierSignificant ImpactTier = "significant"
	TierMajor       ImpactTier = "major"
)

// Charge is one staged, typed player-level dead-money observation.
// Amounts are USD millions.
type Charge struct {
	PlayerID     string
	PlayerName   string
	Position     string
	TeamCode     string
	Period       int
	ChargeAmount float64
	LoadedAt     time.Time

	// Dedup provenance: when the source batch was retrieved and the row's
	// global position in batch-discovery order.
	ObservedAt time.Time
	Seq        int
}

// Key is the business key for a player charge observation.
type Key struct {
	PlayerID string
	TeamCode string
	Period   int
}

func (c Charge) Key() Key {
	return Key{PlayerID: c.PlayerID, TeamCode: c.TeamCode, Period: c.Period}
}

func (c Charge) Validate() error {
	if c.PlayerID == "" {
		return fmt.Errorf("charge player id is required")
	}
	if c.TeamCode == "" {
		return fmt.Errorf("charge team code is required")
	}
	if c.Period <= 0 {
		return fmt.Errorf("charge period must be greater than zero")
	}
	if c.ChargeAmount <= 0 {
		return fmt.Errorf("charge amount must be greater than zero")
	}

	return nil
}

// EnrichedCharge is a Charge joined against its team cap context. Team-derived
// fields are nil when no team record matched (the join is a left join; a
// player observation is never dropped for lack of team context).
type EnrichedCharge struct {
	Charge

	TeamTotalChargeAmount *float64
	TeamTotalCapAmount    *float64
	TeamChargePct         *float64
	PctOfTeamTotal        *float64
	ImpactTier            ImpactTier
}

// RankedCharge is an EnrichedCharge plus league-wide distribution fields.
// Percentile and rank fields are nil for records under the configured noise
// floor: those rows are published but excluded from the ranking universe.
type RankedCharge struct {
	EnrichedCharge

	LeagueTotalForPeriod float64
	PctOfLeagueTotal     *float64
	PercentileRank       *float64
	RankWithinPeriod     *int
}
