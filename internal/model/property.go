package model

// PropertyRecord represents one row of the transaction dataset.
// Numeric fields are nil when the source cell is missing.
type PropertyRecord struct {
	State    string   `json:"state" db:"state"`
	District string   `json:"district" db:"district"`
	LandArea *float64 `json:"land_area,omitempty" db:"land_area"` // square feet
	NumRooms *int     `json:"num_rooms,omitempty" db:"num_rooms"`
	Price    *float64 `json:"price,omitempty" db:"price"`
}

// Dataset is the raw result of a single load. HasRooms reports whether the
// source carries a num_rooms column at all; when it does not, room counts
// are synthesized during feature derivation.
type Dataset struct {
	Records  []PropertyRecord
	HasRooms bool
	Origin   string // file path or table name, for logging
}

// TrainingRow is a PropertyRecord after filtering plus the derived and
// simulated columns both models are fit on
type TrainingRow struct {
	District       string  `json:"district"`
	LocationScore  int     `json:"location_score"`
	SizeSqft       float64 `json:"property_size_sqft"`
	NumRooms       int     `json:"num_rooms"`
	EstimatedValue float64 `json:"estimated_value"`
	LoanAmount     float64 `json:"loan_amount"`
	CreditScore    int     `json:"credit_score"`
	AnnualIncome   int     `json:"annual_income"`
	InterestRate   float64 `json:"interest_rate"`
	LTV            float64 `json:"ltv"`
}

// DistrictOption is a selectable district and its location score
type DistrictOption struct {
	District      string `json:"district"`
	LocationScore int    `json:"location_score"`
}
