package handler

import (
	"net/http"

	"mortgage/internal/model"

	"github.com/gin-gonic/gin"
)

// ModelDescriber summarizes the fitted models
type ModelDescriber interface {
	Describe() model.ModelInfoResponse
}

// ModelHandler exposes model metadata
type ModelHandler struct {
	describer ModelDescriber
}

// NewModelHandler creates a new model handler
func NewModelHandler(describer ModelDescriber) *ModelHandler {
	return &ModelHandler{describer: describer}
}

// Info handles GET /api/v1/model
func (h *ModelHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.describer.Describe())
}
