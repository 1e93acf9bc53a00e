package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/dimension"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
)

type DimensionService struct {
	logger *logging.Logger
}

func NewDimensionService(logger *logging.Logger) *DimensionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DimensionService{logger: logger}
}

// BuildTeams assembles the team dimension from every team code seen in the
// run. The display name comes from the first cap snapshot that carried one
// (first observed wins); a code seen only on player charges falls back to
// the code itself. Output is sorted by code.
func (s *DimensionService) BuildTeams(caps []teamcap.TeamCap, charges []deadmoney.Charge, loadedAt time.Time) []dimension.Team {
	names := make(map[string]string)
	for _, snapshot := range caps {
		if _, seen := names[snapshot.TeamCode]; seen {
			continue
		}
		name := strings.TrimSpace(snapshot.TeamName)
		if name == "" {
			name = snapshot.TeamCode
		}
		names[snapshot.TeamCode] = name
	}
	for _, charge := range charges {
		if _, seen := names[charge.TeamCode]; !seen {
			names[charge.TeamCode] = charge.TeamCode
		}
	}

	out := make([]dimension.Team, 0, len(names))
	for code, name := range names {
		out = append(out, dimension.Team{Code: code, Name: name, CreatedAt: loadedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })

	s.logger.Info("team dimension built", "teams", len(out))
	return out
}
