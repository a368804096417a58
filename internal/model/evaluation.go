package model

// EvaluationRequest holds the six runtime inputs of one evaluation
type EvaluationRequest struct {
	LocationScore int
	SizeSqft      float64
	NumRooms      int
	LoanAmount    float64
	CreditScore   int
	AnnualIncome  float64
}

// EvaluationResult is the rounded (value, ltv, rate) triple
type EvaluationResult struct {
	EstimatedValue float64 `json:"estimated_value"` // 2 decimal places
	LTV            float64 `json:"ltv"`             // 3 decimal places
	InterestRate   float64 `json:"interest_rate"`   // 2 decimal places
}

// EvaluateRequest is the JSON body of POST /api/v1/evaluate.
// Ranges mirror the limits of the web form. Either District or
// LocationScore must be set; District wins when both are present.
type EvaluateRequest struct {
	District      string  `json:"district" form:"district"`
	LocationScore *int    `json:"location_score,omitempty" form:"location_score" binding:"omitempty,min=0"`
	SizeSqft      float64 `json:"size_sqft" form:"size_sqft" binding:"required,min=300,max=5000"`
	NumRooms      int     `json:"num_rooms" form:"num_rooms" binding:"required,min=1,max=10"`
	LoanAmount    float64 `json:"loan_amount" form:"loan_amount" binding:"required,min=50000,max=3000000"`
	CreditScore   int     `json:"credit_score" form:"credit_score" binding:"required,min=300,max=850"`
	AnnualIncome  float64 `json:"annual_income" form:"annual_income" binding:"required,min=20000,max=500000"`
}

// EvaluateResponse is returned by the JSON API
type EvaluateResponse struct {
	RequestID     string           `json:"request_id,omitempty"`
	District      string           `json:"district,omitempty"`
	LocationScore int              `json:"location_score"`
	Result        EvaluationResult `json:"result"`
	Display       DisplayMetrics   `json:"display"`
	Took          int64            `json:"took_ms"`
}

// DisplayMetrics are the formatted strings shown on the form
type DisplayMetrics struct {
	EstimatedValue string `json:"estimated_value"`
	LTV            string `json:"ltv"`
	InterestRate   string `json:"interest_rate"`
}

// ModelInfoResponse describes the fitted models
type ModelInfoResponse struct {
	Region       string           `json:"region"`
	TrainingRows int              `json:"training_rows"`
	Seed         int64            `json:"seed"`
	Valuation    ValuationInfo    `json:"valuation"`
	Rate         RateInfo         `json:"rate"`
	Districts    []DistrictOption `json:"districts"`
}

// ValuationInfo exposes the linear model coefficients
type ValuationInfo struct {
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
}

// RateInfo exposes the boosting configuration
type RateInfo struct {
	InitialPrediction float64 `json:"initial_prediction"`
	Estimators        int     `json:"estimators"`
	LearningRate      float64 `json:"learning_rate"`
	MaxDepth          int     `json:"max_depth"`
}
