package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"mortgage/internal/model"
	"mortgage/internal/service"
	"mortgage/internal/utils"

	"github.com/gin-gonic/gin"
)

// DistrictCatalog exposes the districts the models were trained on
type DistrictCatalog interface {
	DistrictOptions() []model.DistrictOption
	LocationScore(district string) (int, bool)
	ResolveDistrict(name string) (string, bool)
}

// Evaluator runs one mortgage evaluation
type Evaluator interface {
	Evaluate(req model.EvaluationRequest) (model.EvaluationResult, error)
}

// EvaluationHandler serves the evaluation form and API
type EvaluationHandler struct {
	catalog   DistrictCatalog
	evaluator Evaluator
	region    string
	logger    *utils.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(catalog DistrictCatalog, evaluator Evaluator, region string, logger *utils.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		catalog:   catalog,
		evaluator: evaluator,
		region:    region,
		logger:    logger,
	}
}

// DefaultEvaluateRequest holds the initial values of the form
func DefaultEvaluateRequest() model.EvaluateRequest {
	return model.EvaluateRequest{
		SizeSqft:     1000,
		NumRooms:     3,
		LoanAmount:   480000,
		CreditScore:  710,
		AnnualIncome: 88000,
	}
}

// Display formats a result the way the form shows it
func Display(r model.EvaluationResult) model.DisplayMetrics {
	return model.DisplayMetrics{
		EstimatedValue: utils.FormatCurrency("MYR", r.EstimatedValue),
		LTV:            utils.FormatFixed(r.LTV, service.LTVPrecision),
		InterestRate:   utils.FormatFixed(r.InterestRate, service.RatePrecision),
	}
}

// Evaluate handles POST /api/v1/evaluate
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	start := time.Now()

	var req model.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	district, score, status, err := h.locate(req)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	result, err := h.evaluator.Evaluate(toEvaluationRequest(req, score))
	if err != nil {
		h.logger.Warn("Evaluation failed for %q (score %d): %v", district, score, err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.EvaluateResponse{
		RequestID:     requestID(c),
		District:      district,
		LocationScore: score,
		Result:        result,
		Display:       Display(result),
		Took:          time.Since(start).Milliseconds(),
	})
}

// Districts handles GET /api/v1/districts
func (h *EvaluationHandler) Districts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"region":    h.region,
		"districts": h.catalog.DistrictOptions(),
	})
}

// formPage is the data rendered by index.html
type formPage struct {
	Region    string
	Districts []model.DistrictOption
	Form      model.EvaluateRequest
	Result    *model.DisplayMetrics
	Error     string
}

// Form handles GET /
func (h *EvaluationHandler) Form(c *gin.Context) {
	form := DefaultEvaluateRequest()
	if opts := h.catalog.DistrictOptions(); len(opts) > 0 {
		form.District = opts[0].District
	}
	h.render(c, http.StatusOK, form, nil, "")
}

// SubmitForm handles POST /evaluate
func (h *EvaluationHandler) SubmitForm(c *gin.Context) {
	var req model.EvaluateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusBadRequest, req, nil, validationMessage(err))
		return
	}

	district, score, status, err := h.locate(req)
	if err != nil {
		h.render(c, status, req, nil, err.Error())
		return
	}
	req.District = district

	result, err := h.evaluator.Evaluate(toEvaluationRequest(req, score))
	if err != nil {
		h.logger.Warn("Form evaluation failed for %q: %v", district, err)
		h.render(c, statusFor(err), req, nil, err.Error())
		return
	}

	display := Display(result)
	h.render(c, http.StatusOK, req, &display, "")
}

func (h *EvaluationHandler) render(c *gin.Context, status int, form model.EvaluateRequest, result *model.DisplayMetrics, msg string) {
	c.HTML(status, "index.html", formPage{
		Region:    h.region,
		Districts: h.catalog.DistrictOptions(),
		Form:      form,
		Result:    result,
		Error:     msg,
	})
}

// locate resolves the district and its location score. A district name
// takes precedence over a raw score; either must belong to a trained district.
func (h *EvaluationHandler) locate(req model.EvaluateRequest) (string, int, int, error) {
	if req.District != "" {
		district, ok := h.catalog.ResolveDistrict(req.District)
		if !ok {
			return "", 0, http.StatusNotFound, errors.New("unknown district: " + req.District)
		}
		score, _ := h.catalog.LocationScore(district)
		return district, score, http.StatusOK, nil
	}

	if req.LocationScore != nil {
		score := *req.LocationScore
		for _, opt := range h.catalog.DistrictOptions() {
			if opt.LocationScore == score {
				return opt.District, score, http.StatusOK, nil
			}
		}
		return "", score, http.StatusNotFound, fmt.Errorf("unknown location_score: %d", score)
	}

	return "", 0, http.StatusBadRequest, errors.New("district or location_score is required")
}

func toEvaluationRequest(req model.EvaluateRequest, score int) model.EvaluationRequest {
	return model.EvaluationRequest{
		LocationScore: score,
		SizeSqft:      req.SizeSqft,
		NumRooms:      req.NumRooms,
		LoanAmount:    req.LoanAmount,
		CreditScore:   req.CreditScore,
		AnnualIncome:  req.AnnualIncome,
	}
}

func statusFor(err error) int {
	if errors.Is(err, service.ErrZeroEstimatedValue) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
