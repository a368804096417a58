package regression

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoSamples is returned when a model is fit on an empty dataset
	ErrNoSamples = errors.New("regression: no training samples")
	// ErrDimensionMismatch is returned for ragged matrices or mismatched targets
	ErrDimensionMismatch = errors.New("regression: dimension mismatch")
	// ErrNonFiniteInput is returned when X or y contains NaN or Inf
	ErrNonFiniteInput = errors.New("regression: input contains NaN or infinity")
	// ErrInvalidParams is returned for unusable hyperparameters
	ErrInvalidParams = errors.New("regression: invalid parameters")
)

// checkInputs validates a design matrix and target, returning the feature count
func checkInputs(x [][]float64, y []float64) (int, error) {
	if len(x) == 0 {
		return 0, ErrNoSamples
	}
	if len(y) != len(x) {
		return 0, fmt.Errorf("%w: %d rows but %d targets", ErrDimensionMismatch, len(x), len(y))
	}

	p := len(x[0])
	if p == 0 {
		return 0, fmt.Errorf("%w: zero features", ErrDimensionMismatch)
	}

	for i, row := range x {
		if len(row) != p {
			return 0, fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(row), p)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("%w: x[%d][%d] = %v", ErrNonFiniteInput, i, j, v)
			}
		}
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return 0, fmt.Errorf("%w: y[%d] = %v", ErrNonFiniteInput, i, y[i])
		}
	}
	return p, nil
}
