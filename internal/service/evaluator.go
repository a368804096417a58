package service

import (
	"errors"

	"mortgage/internal/features"
	"mortgage/internal/model"
	"mortgage/internal/utils"
)

// ErrZeroEstimatedValue is returned when the valuation model predicts
// exactly zero, leaving the loan-to-value ratio undefined
var ErrZeroEstimatedValue = errors.New("estimated property value is zero, loan-to-value is undefined")

// Output precision of the evaluation triple
const (
	ValuePrecision = 2
	LTVPrecision   = 3
	RatePrecision  = 2
)

// Predictor is a fitted regression model
type Predictor interface {
	Predict(x []float64) float64
}

// Evaluator runs the valuation -> LTV -> rate pipeline. It holds no mutable
// state and is safe for concurrent use.
type Evaluator struct {
	valuation Predictor
	rate      Predictor
}

// NewEvaluator creates an evaluator over two fitted models
func NewEvaluator(valuation, rate Predictor) *Evaluator {
	return &Evaluator{valuation: valuation, rate: rate}
}

// Evaluate predicts the property value, derives the loan-to-value ratio from
// the requested loan and that prediction, then predicts the interest rate.
// Inputs are not range checked.
func (e *Evaluator) Evaluate(req model.EvaluationRequest) (model.EvaluationResult, error) {
	value := e.valuation.Predict(features.ValuationFeatures(req.LocationScore, req.SizeSqft, req.NumRooms))
	if value == 0 {
		return model.EvaluationResult{}, ErrZeroEstimatedValue
	}

	ltv := req.LoanAmount / value
	rate := e.rate.Predict(features.RateFeatures(ltv, req.CreditScore, req.AnnualIncome))

	return model.EvaluationResult{
		EstimatedValue: utils.Round(value, ValuePrecision),
		LTV:            utils.Round(ltv, LTVPrecision),
		InterestRate:   utils.Round(rate, RatePrecision),
	}, nil
}
