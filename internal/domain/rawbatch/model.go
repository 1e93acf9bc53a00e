package rawbatch

import (
	"fmt"
	"time"
)

// Kind identifies which source feed a raw batch came from.
type Kind string

const (
	KindPlayerDeadMoney Kind = "player_dead_money"
	KindTeamCap         Kind = "team_cap"
)

func (k Kind) Valid() bool {
	return k == KindPlayerDeadMoney || k == KindTeamCap
}

// Batch is one homogeneous raw export for a (kind, period) pair, exactly as
// handed over by the acquisition collaborator. Values are untyped strings;
// typing happens in the normalizer.
type Batch struct {
	Kind        Kind
	Period      int
	Source      string
	Columns     []string
	Rows        [][]string
	RetrievedAt time.Time
}

func (b Batch) Validate() error {
	if !b.Kind.Valid() {
		return fmt.Errorf("unknown batch kind %q", b.Kind)
	}
	if len(b.Columns) == 0 {
		return fmt.Errorf("batch %s period=%d has no header row", b.Kind, b.Period)
	}

	return nil
}

// Empty reports whether the batch carries no data rows. An empty batch means
// "nothing to process for this period", never an error.
func (b Batch) Empty() bool {
	return len(b.Rows) == 0
}
