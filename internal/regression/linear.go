package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// LinearModel is an ordinary least squares fit with intercept.
// It is immutable once returned by FitLinear.
type LinearModel struct {
	intercept    float64
	coefficients []float64
}

// NewLinearModel builds a model from known coefficients
func NewLinearModel(intercept float64, coefficients []float64) *LinearModel {
	c := make([]float64, len(coefficients))
	copy(c, coefficients)
	return &LinearModel{intercept: intercept, coefficients: c}
}

// FitLinear fits y ~ intercept + X·coef by least squares. X and y are
// centered first, then the minimum-norm solution is taken from the SVD of
// the centered X, so collinear or constant columns do not fail the fit.
func FitLinear(x [][]float64, y []float64) (*LinearModel, error) {
	p, err := checkInputs(x, y)
	if err != nil {
		return nil, err
	}
	n := len(x)

	xMean := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		xMean[j] = stat.Mean(col, nil)
	}
	yMean := stat.Mean(y, nil)

	a := mat.NewDense(n, p, nil)
	b := mat.NewVecDense(n, nil)
	for i := range x {
		for j := 0; j < p; j++ {
			a.Set(i, j, x[i][j]-xMean[j])
		}
		b.SetVec(i, y[i]-yMean)
	}

	coef := make([]float64, p)

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("regression: SVD factorization failed")
	}

	rcond := float64(max(n, p)) * epsilon
	if rank := svd.Rank(rcond); rank > 0 {
		var sol mat.VecDense
		svd.SolveVecTo(&sol, b, rank)
		for j := 0; j < p; j++ {
			coef[j] = sol.AtVec(j)
		}
	}

	return &LinearModel{
		intercept:    yMean - floats.Dot(xMean, coef),
		coefficients: coef,
	}, nil
}

// epsilon is the float64 machine epsilon
var epsilon = math.Nextafter(1, 2) - 1

// Predict returns intercept + x·coef. No clamping is applied.
func (m *LinearModel) Predict(x []float64) float64 {
	sum := m.intercept
	for j, c := range m.coefficients {
		sum += c * x[j]
	}
	return sum
}

// Intercept returns the fitted intercept
func (m *LinearModel) Intercept() float64 {
	return m.intercept
}

// Coefficients returns a copy of the fitted coefficients
func (m *LinearModel) Coefficients() []float64 {
	c := make([]float64, len(m.coefficients))
	copy(c, m.coefficients)
	return c
}
