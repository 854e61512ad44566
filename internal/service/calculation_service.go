package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/pollination"
)

// Calculator is the calculation the service times and logs
type Calculator interface {
	Calculate(ctx context.Context, plantationID, roiID, caID int64) (*models.CalculationResult, error)
}

// CalculationService handles business logic for pollinator abundance calculations
type CalculationService struct {
	calc     Calculator
	defaults models.CalculationRequest
	logger   *zap.Logger
}

// NewCalculationService creates a new calculation service. defaults is used by CalculateDefault.
func NewCalculationService(calc Calculator, defaults models.CalculationRequest, logger *zap.Logger) *CalculationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculationService{calc: calc, defaults: defaults, logger: logger}
}

// Calculate runs one calculation
func (s *CalculationService) Calculate(ctx context.Context, req models.CalculationRequest) (*models.CalculationResult, error) {
	start := time.Now()
	result, err := s.calc.Calculate(ctx, req.PlantationID, req.ROIID, req.CAID)
	elapsed := time.Since(start)

	fields := []zap.Field{
		zap.Int64("plantation_id", req.PlantationID),
		zap.Int64("roi_id", req.ROIID),
		zap.Int64("ca_id", req.CAID),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		if pollination.IsClientError(err) {
			s.logger.Info("Calculation rejected", append(fields, zap.Error(err))...)
		} else {
			s.logger.Error("Calculation failed", append(fields, zap.Error(err))...)
		}
		return nil, err
	}

	s.logger.Info("Calculation completed", append(fields,
		zap.Float64("ratio_x", result.RatioX),
		zap.Float64("ratio_y", result.RatioY))...)
	return result, nil
}

// CalculateDefault runs the configured default scenario
func (s *CalculationService) CalculateDefault(ctx context.Context) (*models.CalculationResult, error) {
	return s.Calculate(ctx, s.defaults)
}

// Defaults returns the identifiers used by CalculateDefault
func (s *CalculationService) Defaults() models.CalculationRequest {
	return s.defaults
}
