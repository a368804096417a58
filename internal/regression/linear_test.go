package regression

import (
	"errors"
	"math"
	"testing"
)

func linearData() ([][]float64, []float64) {
	var x [][]float64
	var y []float64
	for score := 0; score < 5; score++ {
		for _, size := range []float64{600, 900, 1250, 2000} {
			for rooms := 1; rooms <= 4; rooms++ {
				// vary size with score so the columns are not collinear
				s := size + float64(score*rooms)
				x = append(x, []float64{float64(score), s, float64(rooms)})
				y = append(y, 100000+5000*float64(score)+300*s+20000*float64(rooms))
			}
		}
	}
	return x, y
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Abs(b))
}

func TestFitLinear_RecoversCoefficients(t *testing.T) {
	x, y := linearData()
	m, err := FitLinear(x, y)
	if err != nil {
		t.Fatalf("FitLinear() error = %v", err)
	}

	want := []float64{5000, 300, 20000}
	for j, c := range m.Coefficients() {
		if !approxEqual(c, want[j], 1e-8) {
			t.Errorf("coef[%d] = %v, want %v", j, c, want[j])
		}
	}
	if !approxEqual(m.Intercept(), 100000, 1e-8) {
		t.Errorf("Intercept() = %v, want 100000", m.Intercept())
	}

	got := m.Predict([]float64{2, 1000, 3})
	if !approxEqual(got, 470000, 1e-8) {
		t.Errorf("Predict = %v, want 470000", got)
	}
}

func TestFitLinear_Deterministic(t *testing.T) {
	x, y := linearData()
	m, err := FitLinear(x, y)
	if err != nil {
		t.Fatalf("FitLinear() error = %v", err)
	}

	in := []float64{3, 1480.5, 2}
	first := m.Predict(in)
	for i := 0; i < 100; i++ {
		if got := m.Predict(in); math.Float64bits(got) != math.Float64bits(first) {
			t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
		}
	}
}

func TestFitLinear_NoClamping(t *testing.T) {
	m := NewLinearModel(1000, []float64{0, 10, 0})
	if got := m.Predict([]float64{0, -500, 0}); got != -4000 {
		t.Errorf("Predict with negative size = %v, want -4000", got)
	}
}

func TestFitLinear_Collinear(t *testing.T) {
	x := [][]float64{{1, 2}, {2, 4}, {3, 6}, {4, 8}}
	y := []float64{3, 5, 7, 9}

	m, err := FitLinear(x, y)
	if err != nil {
		t.Fatalf("FitLinear() error = %v", err)
	}
	for i := range x {
		if got := m.Predict(x[i]); !approxEqual(got, y[i], 1e-9) {
			t.Errorf("Predict(%v) = %v, want %v", x[i], got, y[i])
		}
	}
}

func TestFitLinear_SingleSample(t *testing.T) {
	m, err := FitLinear([][]float64{{1, 900, 3}}, []float64{450000})
	if err != nil {
		t.Fatalf("FitLinear() error = %v", err)
	}
	if m.Intercept() != 450000 {
		t.Errorf("Intercept() = %v, want 450000", m.Intercept())
	}
	for j, c := range m.Coefficients() {
		if c != 0 {
			t.Errorf("coef[%d] = %v, want 0", j, c)
		}
	}
}

func TestFitLinear_Errors(t *testing.T) {
	tests := []struct {
		name string
		x    [][]float64
		y    []float64
		want error
	}{
		{name: "empty", x: nil, y: nil, want: ErrNoSamples},
		{name: "target length", x: [][]float64{{1}, {2}}, y: []float64{1}, want: ErrDimensionMismatch},
		{name: "ragged", x: [][]float64{{1, 2}, {2}}, y: []float64{1, 2}, want: ErrDimensionMismatch},
		{name: "nan feature", x: [][]float64{{1}, {math.NaN()}}, y: []float64{1, 2}, want: ErrNonFiniteInput},
		{name: "inf target", x: [][]float64{{1}, {2}}, y: []float64{1, math.Inf(1)}, want: ErrNonFiniteInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitLinear(tt.x, tt.y)
			if !errors.Is(err, tt.want) {
				t.Errorf("FitLinear() error = %v, want %v", err, tt.want)
			}
		})
	}
}
