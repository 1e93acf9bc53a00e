package app

import (
	"github.com/nfl-analytics/dead-money-pipeline/internal/config"
	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/rawbatch"
	"github.com/nfl-analytics/dead-money-pipeline/internal/infrastructure/acquisition/localdir"
	"github.com/nfl-analytics/dead-money-pipeline/internal/infrastructure/acquisition/spotrac"
	"github.com/nfl-analytics/dead-money-pipeline/internal/infrastructure/repository/postgres"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/resilience"
	"github.com/nfl-analytics/dead-money-pipeline/internal/usecase"
)

// NewPipeline wires the full run: raw batch provider, the staged
// transformation services and the warehouse publisher. The returned cleanup
// closes the warehouse connection.
func NewPipeline(cfg config.Config, logger *logging.Logger) (*usecase.PipelineService, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := connectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := db.Close

	provider := newProvider(cfg, logger)
	pipeline := usecase.NewPipelineService(
		cfg.PeriodMin,
		usecase.NewLoaderService(provider, logger),
		usecase.NewNormalizerService(cfg.PeriodMin, logger),
		usecase.NewDedupService(logger),
		usecase.NewEnricherService(usecase.TierThresholds{
			Significant: cfg.Analytics.TierSignificant,
			Major:       cfg.Analytics.TierMajor,
		}, logger),
		usecase.NewAggregatorService(usecase.AggregatorConfig{
			NoiseFloor:        cfg.Analytics.NoiseFloor,
			PercentileCutoffs: cfg.Analytics.PercentileCutoffs,
			MaxWorkers:        cfg.Analytics.MaxWorkers,
		}, logger),
		usecase.NewDimensionService(logger),
		usecase.NewValidationService(cfg.PeriodMin, logger),
		postgres.NewPublisher(db),
		logger,
	)

	return pipeline, cleanup, nil
}

// newProvider picks the acquisition source: the live site when scraping is
// enabled, otherwise previously downloaded snapshots on disk.
func newProvider(cfg config.Config, logger *logging.Logger) rawbatch.Provider {
	if cfg.SpotracEnabled {
		return spotrac.NewClient(spotrac.ClientConfig{
			BaseURL:    cfg.SpotracBaseURL,
			Timeout:    cfg.SpotracTimeout,
			MaxRetries: cfg.SpotracMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.BreakerConfig{
				Enabled:          cfg.SpotracCircuitEnabled,
				FailureThreshold: cfg.SpotracCircuitFailureCount,
				OpenTimeout:      cfg.SpotracCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SpotracCircuitHalfOpenMaxReq,
			},
		})
	}
	return localdir.NewProvider(cfg.RawDataDir, logger)
}
