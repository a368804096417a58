package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"mortgage/internal/features"
	"mortgage/internal/model"
	"mortgage/internal/regression"
	"mortgage/internal/utils"

	"golang.org/x/sync/errgroup"
)

// ErrNoTrainingData is returned when no record survives the region filter
var ErrNoTrainingData = errors.New("no training rows matched the region filter")

// FitOptions controls training data synthesis and model fitting
type FitOptions struct {
	Region   string
	Seed     int64
	SeedSet  bool // when false a time-derived seed is used and logged
	Boosting regression.BoostingParams
}

// ModelBundle holds both fitted models and the district encoding they were
// trained with. It is built once at startup and shared read-only.
type ModelBundle struct {
	valuation    *regression.LinearModel
	rate         *regression.GradientBoostingModel
	encoder      *features.LocationEncoder
	region       string
	trainingRows int
	seed         int64
}

// Initialize derives training rows from the dataset and fits both models
func Initialize(ds *model.Dataset, opts FitOptions, logger *utils.Logger) (*ModelBundle, error) {
	seed := opts.Seed
	if !opts.SeedSet {
		seed = time.Now().UnixNano()
		logger.Warn("MODEL_SEED not set, synthetic borrower columns drawn with seed %d", seed)
	}

	deriver := features.NewDeriver(opts.Region, rand.New(rand.NewSource(seed)))
	rows, enc := deriver.Derive(ds)
	logger.Info("Derived %d training rows across %d districts from %d records (%s, region %q)",
		len(rows), enc.Len(), len(ds.Records), ds.Origin, opts.Region)

	opts.Seed, opts.SeedSet = seed, true
	return Fit(rows, enc, opts, logger)
}

// Fit trains the valuation and rate models on already derived rows. The
// region and seed in opts are recorded on the bundle as given.
func Fit(rows []model.TrainingRow, enc *features.LocationEncoder, opts FitOptions, logger *utils.Logger) (*ModelBundle, error) {
	if len(rows) == 0 {
		return nil, ErrNoTrainingData
	}

	start := time.Now()

	var (
		valuation *regression.LinearModel
		rate      *regression.GradientBoostingModel
	)

	// The two fits share no state
	var g errgroup.Group
	g.Go(func() error {
		x, y := features.ValuationMatrix(rows)
		m, err := regression.FitLinear(x, y)
		if err != nil {
			return fmt.Errorf("fit valuation model: %w", err)
		}
		valuation = m
		return nil
	})
	g.Go(func() error {
		x, y := features.RateMatrix(rows)
		m, err := regression.FitGradientBoosting(x, y, opts.Boosting)
		if err != nil {
			return fmt.Errorf("fit rate model: %w", err)
		}
		rate = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Valuation model: intercept=%.4f coefficients=%v", valuation.Intercept(), valuation.Coefficients())
	if score := rate.TrainScore(); len(score) > 0 {
		logger.Debug("Rate model: init=%.4f final train MSE=%.6f", rate.InitialPrediction(), score[len(score)-1])
	}

	logger.Info("Fitted valuation and rate models on %d rows in %s", len(rows), time.Since(start).Round(time.Millisecond))

	return &ModelBundle{
		valuation:    valuation,
		rate:         rate,
		encoder:      enc,
		region:       opts.Region,
		trainingRows: len(rows),
		seed:         opts.Seed,
	}, nil
}

// Evaluator returns the evaluation entry point bound to this bundle
func (b *ModelBundle) Evaluator() *Evaluator {
	return NewEvaluator(b.valuation, b.rate)
}

// Districts returns the sorted districts available for selection
func (b *ModelBundle) Districts() []string {
	return b.encoder.Districts()
}

// DistrictOptions pairs every district with its location score
func (b *ModelBundle) DistrictOptions() []model.DistrictOption {
	districts := b.encoder.Districts()
	out := make([]model.DistrictOption, len(districts))
	for i, d := range districts {
		score, _ := b.encoder.Encode(d)
		out[i] = model.DistrictOption{District: d, LocationScore: score}
	}
	return out
}

// LocationScore looks up the score of an exact district name
func (b *ModelBundle) LocationScore(district string) (int, bool) {
	return b.encoder.Encode(district)
}

// ResolveDistrict maps a user supplied district name to a known one,
// tolerating case, spacing and common abbreviations
func (b *ModelBundle) ResolveDistrict(name string) (string, bool) {
	return utils.ResolveName(name, b.encoder.Districts())
}

// Describe summarizes the fitted models
func (b *ModelBundle) Describe() model.ModelInfoResponse {
	coefs := b.valuation.Coefficients()
	named := make(map[string]float64, len(coefs))
	for i, c := range coefs {
		named[features.ValuationFeatureNames[i]] = c
	}

	p := b.rate.Params()
	return model.ModelInfoResponse{
		Region:       b.region,
		TrainingRows: b.trainingRows,
		Seed:         b.seed,
		Valuation: model.ValuationInfo{
			Intercept:    b.valuation.Intercept(),
			Coefficients: named,
		},
		Rate: model.RateInfo{
			InitialPrediction: b.rate.InitialPrediction(),
			Estimators:        b.rate.Estimators(),
			LearningRate:      p.LearningRate,
			MaxDepth:          p.MaxDepth,
		},
		Districts: b.DistrictOptions(),
	}
}
