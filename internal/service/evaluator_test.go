package service

import (
	"errors"
	"sync"
	"testing"

	"mortgage/internal/model"
	"mortgage/internal/regression"
	"mortgage/internal/utils"
)

// stubRate returns a fixed rate and records the last feature vector it saw
type stubRate struct {
	mu   sync.Mutex
	rate float64
	last []float64
}

func (s *stubRate) Predict(x []float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = append([]float64(nil), x...)
	return s.rate
}

func boundaryRequest() model.EvaluationRequest {
	return model.EvaluationRequest{
		LocationScore: 2,
		SizeSqft:      1000,
		NumRooms:      3,
		LoanAmount:    480000,
		CreditScore:   710,
		AnnualIncome:  88000,
	}
}

func TestEvaluate_BoundaryScenario(t *testing.T) {
	valuation := regression.NewLinearModel(100000, []float64{5000, 300, 20000})
	rate := &stubRate{rate: 4.23456}
	e := NewEvaluator(valuation, rate)

	got, err := e.Evaluate(boundaryRequest())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	want := model.EvaluationResult{EstimatedValue: 470000, LTV: 1.021, InterestRate: 4.23}
	if got != want {
		t.Errorf("Evaluate() = %+v, want %+v", got, want)
	}

	// Rate model sees the unrounded ltv followed by credit score and income
	if len(rate.last) != 3 {
		t.Fatalf("rate features = %v, want 3 values", rate.last)
	}
	if rate.last[0] != 480000.0/470000.0 || rate.last[1] != 710 || rate.last[2] != 88000 {
		t.Errorf("rate features = %v", rate.last)
	}
}

func TestEvaluate_LTVMatchesRoundedRatio(t *testing.T) {
	tests := []struct {
		name string
		req  model.EvaluationRequest
	}{
		{name: "below value", req: model.EvaluationRequest{LocationScore: 0, SizeSqft: 300, NumRooms: 1, LoanAmount: 50000, CreditScore: 300, AnnualIncome: 20000}},
		{name: "large loan", req: model.EvaluationRequest{LocationScore: 5, SizeSqft: 5000, NumRooms: 10, LoanAmount: 3000000, CreditScore: 850, AnnualIncome: 500000}},
		{name: "form defaults", req: boundaryRequest()},
	}

	valuation := regression.NewLinearModel(12345.678, []float64{7100.5, 412.25, 18500})
	e := NewEvaluator(valuation, &stubRate{rate: 4})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(tt.req)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			value := valuation.Predict([]float64{float64(tt.req.LocationScore), tt.req.SizeSqft, float64(tt.req.NumRooms)})
			if want := utils.Round(tt.req.LoanAmount/value, 3); got.LTV != want {
				t.Errorf("LTV = %v, want %v", got.LTV, want)
			}
			if want := utils.Round(value, 2); got.EstimatedValue != want {
				t.Errorf("EstimatedValue = %v, want %v", got.EstimatedValue, want)
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := NewEvaluator(regression.NewLinearModel(100000, []float64{5000, 300, 20000}), &stubRate{rate: 3.987})

	first, err := e.Evaluate(boundaryRequest())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Evaluate(boundaryRequest())
			if err != nil || got != first {
				t.Errorf("repeated Evaluate() = %+v, %v; want %+v", got, err, first)
			}
		}()
	}
	wg.Wait()
}

func TestEvaluate_ZeroValue(t *testing.T) {
	e := NewEvaluator(regression.NewLinearModel(0, []float64{0, 0, 0}), &stubRate{rate: 4})

	_, err := e.Evaluate(boundaryRequest())
	if !errors.Is(err, ErrZeroEstimatedValue) {
		t.Errorf("Evaluate() error = %v, want ErrZeroEstimatedValue", err)
	}
}

func TestEvaluate_NegativeValueNotGuarded(t *testing.T) {
	e := NewEvaluator(regression.NewLinearModel(-500000, []float64{0, 0, 0}), &stubRate{rate: 4})

	got, err := e.Evaluate(boundaryRequest())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got.EstimatedValue != -500000 || got.LTV != -0.96 {
		t.Errorf("Evaluate() = %+v", got)
	}
	if got.InterestRate != 4 {
		t.Errorf("InterestRate = %v, want 4", got.InterestRate)
	}
}
