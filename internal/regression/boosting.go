package regression

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// BoostingParams configures gradient boosting
type BoostingParams struct {
	Estimators      int
	LearningRate    float64
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Subsample       float64
	Seed            int64 // only consulted when Subsample < 1
}

// DefaultBoostingParams returns 100 depth-3 trees at learning rate 0.1
func DefaultBoostingParams() BoostingParams {
	return BoostingParams{
		Estimators:      100,
		LearningRate:    0.1,
		MaxDepth:        3,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Subsample:       1.0,
	}
}

// Validate reports unusable parameters
func (p BoostingParams) Validate() error {
	switch {
	case p.Estimators < 1:
		return fmt.Errorf("%w: estimators must be >= 1, got %d", ErrInvalidParams, p.Estimators)
	case p.LearningRate <= 0:
		return fmt.Errorf("%w: learning rate must be > 0, got %g", ErrInvalidParams, p.LearningRate)
	case p.MaxDepth < 1:
		return fmt.Errorf("%w: max depth must be >= 1, got %d", ErrInvalidParams, p.MaxDepth)
	case p.MinSamplesSplit < 2:
		return fmt.Errorf("%w: min samples split must be >= 2, got %d", ErrInvalidParams, p.MinSamplesSplit)
	case p.MinSamplesLeaf < 1:
		return fmt.Errorf("%w: min samples leaf must be >= 1, got %d", ErrInvalidParams, p.MinSamplesLeaf)
	case p.Subsample <= 0 || p.Subsample > 1:
		return fmt.Errorf("%w: subsample must be in (0, 1], got %g", ErrInvalidParams, p.Subsample)
	}
	return nil
}

// GradientBoostingModel is an additive ensemble of regression trees fit on
// squared error. It is immutable once returned by FitGradientBoosting.
type GradientBoostingModel struct {
	params     BoostingParams
	init       float64
	trees      []*RegressionTree
	trainScore []float64
}

// FitGradientBoosting fits the ensemble. The initial prediction is the mean
// of y; each stage fits a tree to the current residuals and adds it scaled
// by the learning rate.
func FitGradientBoosting(x [][]float64, y []float64, params BoostingParams) (*GradientBoostingModel, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := checkInputs(x, y); err != nil {
		return nil, err
	}
	n := len(x)

	m := &GradientBoostingModel{
		params:     params,
		init:       stat.Mean(y, nil),
		trees:      make([]*RegressionTree, 0, params.Estimators),
		trainScore: make([]float64, 0, params.Estimators),
	}

	tp := treeParams{
		maxDepth:        params.MaxDepth,
		minSamplesSplit: params.MinSamplesSplit,
		minSamplesLeaf:  params.MinSamplesLeaf,
	}

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = m.init
	}
	residual := make([]float64, n)

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	sampleSize := n
	var rng *rand.Rand
	if params.Subsample < 1 {
		sampleSize = max(1, int(params.Subsample*float64(n)))
		rng = rand.New(rand.NewSource(params.Seed))
	}

	for stage := 0; stage < params.Estimators; stage++ {
		for i := range residual {
			residual[i] = y[i] - pred[i]
		}

		idx := all
		if rng != nil {
			idx = rng.Perm(n)[:sampleSize]
		}

		tree := fitTree(x, residual, idx, tp)
		m.trees = append(m.trees, tree)

		var loss float64
		for i := range pred {
			pred[i] += params.LearningRate * tree.Predict(x[i])
			d := y[i] - pred[i]
			loss += d * d
		}
		m.trainScore = append(m.trainScore, loss/float64(n))
	}

	return m, nil
}

// Predict returns init + Σ learningRate*tree(x), accumulated in stage order
// exactly as during fitting. Output is unbounded.
func (m *GradientBoostingModel) Predict(x []float64) float64 {
	sum := m.init
	for _, t := range m.trees {
		sum += m.params.LearningRate * t.Predict(x)
	}
	return sum
}

// InitialPrediction returns the constant the ensemble starts from
func (m *GradientBoostingModel) InitialPrediction() float64 {
	return m.init
}

// Params returns the parameters the model was fit with
func (m *GradientBoostingModel) Params() BoostingParams {
	return m.params
}

// Estimators returns the number of fitted trees
func (m *GradientBoostingModel) Estimators() int {
	return len(m.trees)
}

// TrainScore returns the mean squared training error after each stage
func (m *GradientBoostingModel) TrainScore() []float64 {
	out := make([]float64, len(m.trainScore))
	copy(out, m.trainScore)
	return out
}
