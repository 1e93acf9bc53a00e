package memory

import (
	"context"
	"sync"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/analytics"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/deadmoney"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/dimension"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/teamcap"
	"github.com/nfl-analytics/dead-money-pipeline/internal/usecase"
)

// Store holds the published relations in memory. Publish swaps the whole set
// under one lock, so readers observe either the previous run or the new one.
// It backs local runs and tests where postgres is not wired.
type Store struct {
	mu  sync.RWMutex
	set usecase.PublishSet
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Publish(_ context.Context, set usecase.PublishSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	return nil
}

func (s *Store) ListByPeriod(_ context.Context, period int) ([]deadmoney.RankedCharge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]deadmoney.RankedCharge, 0)
	for _, charge := range s.set.Charges {
		if charge.Period == period {
			out = append(out, charge)
		}
	}
	return out, nil
}

func (s *Store) ListAll(_ context.Context) ([]deadmoney.RankedCharge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]deadmoney.RankedCharge(nil), s.set.Charges...), nil
}

func (s *Store) ListTeamCapsByPeriod(_ context.Context, period int) ([]teamcap.TeamCap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]teamcap.TeamCap, 0)
	for _, snapshot := range s.set.TeamCaps {
		if snapshot.Period == period {
			out = append(out, snapshot)
		}
	}
	return out, nil
}

func (s *Store) ListAllTeamCaps(_ context.Context) ([]teamcap.TeamCap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]teamcap.TeamCap(nil), s.set.TeamCaps...), nil
}

func (s *Store) ListSummaries(_ context.Context) ([]analytics.PeriodSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]analytics.PeriodSummary(nil), s.set.Summaries...), nil
}

func (s *Store) ListTeams(_ context.Context) ([]dimension.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]dimension.Team(nil), s.set.Teams...), nil
}

// ChargeRepository adapts the store to the player fact read interface.
type ChargeRepository struct{ store *Store }

func NewChargeRepository(store *Store) *ChargeRepository {
	return &ChargeRepository{store: store}
}

func (r *ChargeRepository) ListByPeriod(ctx context.Context, period int) ([]deadmoney.RankedCharge, error) {
	return r.store.ListByPeriod(ctx, period)
}

func (r *ChargeRepository) ListAll(ctx context.Context) ([]deadmoney.RankedCharge, error) {
	return r.store.ListAll(ctx)
}

// TeamCapRepository adapts the store to the team fact read interface.
type TeamCapRepository struct{ store *Store }

func NewTeamCapRepository(store *Store) *TeamCapRepository {
	return &TeamCapRepository{store: store}
}

func (r *TeamCapRepository) ListByPeriod(ctx context.Context, period int) ([]teamcap.TeamCap, error) {
	return r.store.ListTeamCapsByPeriod(ctx, period)
}

func (r *TeamCapRepository) ListAll(ctx context.Context) ([]teamcap.TeamCap, error) {
	return r.store.ListAllTeamCaps(ctx)
}
