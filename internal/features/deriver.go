package features

import (
	"math/rand"
	"strings"

	"mortgage/internal/model"
)

// Simulation constants for the synthetic borrower columns. Integer ranges
// are half-open [min, max).
const (
	LoanToValueAssumption = 0.8

	RoomsMin = 2
	RoomsMax = 5

	CreditScoreMin = 650
	CreditScoreMax = 800

	AnnualIncomeMin = 70000
	AnnualIncomeMax = 120000

	InterestRateMin = 3.5
	InterestRateMax = 4.8
)

// Feature names in model input order
var (
	ValuationFeatureNames = []string{"location_score", "property_size_sqft", "num_rooms"}
	RateFeatureNames      = []string{"ltv", "credit_score", "annual_income"}
)

// Deriver turns raw property records into training rows. The same Deriver
// (and its encoder) must be used when assembling prediction inputs.
type Deriver struct {
	region string
	rng    *rand.Rand
}

// NewDeriver creates a deriver for one region. rng supplies every synthetic
// draw; seed it explicitly for reproducible fits.
func NewDeriver(region string, rng *rand.Rand) *Deriver {
	return &Deriver{region: region, rng: rng}
}

// Filter keeps records whose state contains the region (case-insensitive)
// and that have no missing value in any retained column
func (d *Deriver) Filter(ds *model.Dataset) []model.PropertyRecord {
	region := strings.ToLower(d.region)

	kept := make([]model.PropertyRecord, 0, len(ds.Records))
	for _, r := range ds.Records {
		if !strings.Contains(strings.ToLower(r.State), region) {
			continue
		}
		if strings.TrimSpace(r.District) == "" || r.LandArea == nil || r.Price == nil {
			continue
		}
		if ds.HasRooms && r.NumRooms == nil {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Derive filters the dataset and computes every derived column. It returns
// the rows together with the location encoder built from the surviving
// districts. An empty result is not an error here; fitting rejects it.
func (d *Deriver) Derive(ds *model.Dataset) ([]model.TrainingRow, *LocationEncoder) {
	records := d.Filter(ds)

	districts := make([]string, len(records))
	for i, r := range records {
		districts[i] = r.District
	}
	enc := NewLocationEncoder(districts)

	rows := make([]model.TrainingRow, len(records))
	for i, r := range records {
		score, _ := enc.Encode(r.District)
		value := *r.Price
		loan := value * LoanToValueAssumption
		// Zero value yields a non-finite ratio; the rate model refuses it.
		ltv := loan / value
		rows[i] = model.TrainingRow{
			District:       r.District,
			LocationScore:  score,
			SizeSqft:       *r.LandArea,
			EstimatedValue: value,
			LoanAmount:     loan,
			LTV:            ltv,
		}
		if ds.HasRooms {
			rows[i].NumRooms = *r.NumRooms
		}
	}

	// Draws are taken column by column so a fixed seed reproduces the
	// same synthetic columns for the same filtered dataset.
	if !ds.HasRooms {
		for i := range rows {
			rows[i].NumRooms = RoomsMin + d.rng.Intn(RoomsMax-RoomsMin)
		}
	}
	for i := range rows {
		rows[i].CreditScore = CreditScoreMin + d.rng.Intn(CreditScoreMax-CreditScoreMin)
	}
	for i := range rows {
		rows[i].AnnualIncome = AnnualIncomeMin + d.rng.Intn(AnnualIncomeMax-AnnualIncomeMin)
	}
	for i := range rows {
		rows[i].InterestRate = InterestRateMin + d.rng.Float64()*(InterestRateMax-InterestRateMin)
	}

	return rows, enc
}

// ValuationFeatures assembles the valuation model input vector
func ValuationFeatures(locationScore int, sizeSqft float64, numRooms int) []float64 {
	return []float64{float64(locationScore), sizeSqft, float64(numRooms)}
}

// RateFeatures assembles the rate model input vector
func RateFeatures(ltv float64, creditScore int, annualIncome float64) []float64 {
	return []float64{ltv, float64(creditScore), annualIncome}
}

// ValuationMatrix returns the valuation design matrix and target
func ValuationMatrix(rows []model.TrainingRow) ([][]float64, []float64) {
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i] = ValuationFeatures(r.LocationScore, r.SizeSqft, r.NumRooms)
		y[i] = r.EstimatedValue
	}
	return x, y
}

// RateMatrix returns the rate design matrix and target
func RateMatrix(rows []model.TrainingRow) ([][]float64, []float64) {
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i] = RateFeatures(r.LTV, r.CreditScore, float64(r.AnnualIncome))
		y[i] = r.InterestRate
	}
	return x, y
}
