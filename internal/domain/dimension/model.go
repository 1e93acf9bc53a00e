package dimension

import (
	"fmt"
	"time"
)

// Team is one row of the derived team reference table. It is built from the
// staged team data on every run, never hand-maintained; a code that shows up
// without a display name falls back to the code itself.
type Team struct {
	Code      string
	Name      string
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.Code == "" {
		return fmt.Errorf("dimension team code is required")
	}
	if t.Name == "" {
		return fmt.Errorf("dimension team name is required")
	}

	return nil
}
