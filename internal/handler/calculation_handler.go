package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/pollination"
	"github.com/jengzang/pollinator-abundance/pkg/response"
)

// CalculationService runs calculations for the handler
type CalculationService interface {
	Calculate(ctx context.Context, req models.CalculationRequest) (*models.CalculationResult, error)
	CalculateDefault(ctx context.Context) (*models.CalculationResult, error)
}

// CalculationHandler handles HTTP requests for pollinator abundance calculations
type CalculationHandler struct {
	service CalculationService
}

// NewCalculationHandler creates a new calculation handler
func NewCalculationHandler(service CalculationService) *CalculationHandler {
	return &CalculationHandler{service: service}
}

// Calculate handles POST /api/v1/calculate
func (h *CalculationHandler) Calculate(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		response.BadRequest(c, "Invalid request body: plantation_id, roi_id and ca_id must be positive integers")
		return
	}

	result, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CalculateDefault handles GET /api/v1/calculate/default
func (h *CalculationHandler) CalculateDefault(c *gin.Context) {
	result, err := h.service.CalculateDefault(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// StatusFor maps a calculation error to its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, pollination.ErrDataNotFound):
		return http.StatusNotFound
	case errors.Is(err, pollination.ErrInvalidGeometry), errors.Is(err, pollination.ErrAlignment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.Error(err)
	switch status := StatusFor(err); status {
	case http.StatusNotFound:
		response.NotFound(c, err.Error())
	case http.StatusUnprocessableEntity:
		response.UnprocessableEntity(c, err.Error())
	case http.StatusInternalServerError:
		// Internal details stay in the log
		response.InternalError(c, "Calculation failed")
	default:
		response.Error(c, status, err.Error())
	}
}
