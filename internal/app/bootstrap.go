package app

import (
	"context"
	"fmt"

	"mortgage/internal/config"
	"mortgage/internal/regression"
	"mortgage/internal/repository"
	"mortgage/internal/service"
	"mortgage/internal/utils"
)

// NewDatasetLoader picks the dataset source named in the configuration.
// The returned close function releases any connection the loader holds.
func NewDatasetLoader(cfg *config.Config) (repository.DatasetLoader, func() error, error) {
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.Dataset.Table,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.SourceCSV:
		return repository.NewCSVRepository(cfg.Dataset.Path), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

// BoostingParams maps the model configuration onto the rate model parameters
func BoostingParams(m config.ModelConfig) regression.BoostingParams {
	p := regression.DefaultBoostingParams()
	p.Estimators = m.Estimators
	p.LearningRate = m.LearningRate
	p.MaxDepth = m.MaxDepth
	p.MinSamplesSplit = m.MinSamplesSplit
	p.MinSamplesLeaf = m.MinSamplesLeaf
	p.Subsample = m.Subsample
	p.Seed = m.Seed
	return p
}

// LoadBundle loads the dataset once and fits both models
func LoadBundle(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*service.ModelBundle, error) {
	loader, closeFn, err := NewDatasetLoader(cfg)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer closeFn()

	ds, err := loader.LoadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("Loaded %d property records from %s (num_rooms column: %v)", len(ds.Records), ds.Origin, ds.HasRooms)

	return service.Initialize(ds, service.FitOptions{
		Region:   cfg.Dataset.Region,
		Seed:     cfg.Model.Seed,
		SeedSet:  cfg.Model.SeedSet,
		Boosting: BoostingParams(cfg.Model),
	}, logger)
}
