package usecase

import (
	"sort"
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

type DedupService struct {
	logger *logging.Logger
}

func NewDedupService(logger *logging.Logger) *DedupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DedupService{logger: logger}
}

// DedupCharges collapses repeated observations of one (player, team, period)
// to a single survivor: the observation with the latest retrieval timestamp,
// ties broken by earliest batch-discovery order. The same raw input always
// yields the same survivor. Returns survivors in discovery order plus the
// number of rows removed.
func (s *DedupService) DedupCharges(items []deadmoney.Charge) ([]deadmoney.Charge, int) {
	best := make(map[deadmoney.Key]deadmoney.Charge, len(items))
	for _, item := range items {
		current, seen := best[item.Key()]
		if !seen || supersedes(item.ObservedAt, item.Seq, current.ObservedAt, current.Seq) {
			best[item.Key()] = item
		}
	}

	out := make([]deadmoney.Charge, 0, len(best))
	for _, item := range best {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })

	removed := len(items) - len(out)
	if removed > 0 {
		s.logger.Info("player charge duplicates removed", "removed", removed, "survivors", len(out))
	}
	return out, removed
}

// DedupTeamCaps applies the same rule over the (team, period) key.
func (s *DedupService) DedupTeamCaps(items []teamcap.TeamCap) ([]teamcap.TeamCap, int) {
	best := make(map[teamcap.Key]teamcap.TeamCap, len(items))
	for _, item := range items {
		current, seen := best[item.Key()]
		if !seen || supersedes(item.ObservedAt, item.Seq, current.ObservedAt, current.Seq) {
			best[item.Key()] = item
		}
	}

	out := make([]teamcap.TeamCap, 0, len(best))
	for _, item := range best {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })

	removed := len(items) - len(out)
	if removed > 0 {
		s.logger.Info("team cap duplicates removed", "removed", removed, "survivors", len(out))
	}
	return out, removed
}

// supersedes reports whether the candidate observation should replace the
// incumbent: newer retrieval wins, identical retrieval keeps the
// first-discovered row.
func supersedes(candObserved time.Time, candSeq int, curObserved time.Time, curSeq int) bool {
	if candObserved.After(curObserved) {
		return true
	}
	if candObserved.Equal(curObserved) {
		return candSeq < curSeq
	}
	return false
}
