package analytics

import "fmt"

// PeriodSummary is the per-period distribution row backing trend views.
// It is computed over the charges above the configured noise floor.
type PeriodSummary struct {
	Period int
	Total  float64
	Mean   float64
	StdDev float64
	P75    float64
	P90    float64
	P95    float64
	Max    float64
	Count  int
}

func (s PeriodSummary) Validate() error {
	if s.Period <= 0 {
		return fmt.Errorf("summary period must be greater than zero")
	}
	if s.Count < 0 {
		return fmt.Errorf("summary count cannot be negative")
	}

	return nil
}
