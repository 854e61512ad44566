package pollination

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jengzang/pollinator-abundance/internal/models"
)

// Config holds calculator settings
type Config struct {
	CellSizeKm float64
	Logger     *zap.Logger
}

// Calculator runs the pollinator abundance calculation against injected data sources.
// It holds no per-call state and is safe for concurrent use when its collaborators are.
type Calculator struct {
	geometry   GeometryResolver
	surfaces   SurfaceProvider
	cellSizeKm float64
	logger     *zap.Logger
}

// NewCalculator creates a new calculator
func NewCalculator(geometry GeometryResolver, surfaces SurfaceProvider, cfg Config) *Calculator {
	if cfg.CellSizeKm <= 0 {
		cfg.CellSizeKm = DefaultCellSizeKm
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Calculator{
		geometry:   geometry,
		surfaces:   surfaces,
		cellSizeKm: cfg.CellSizeKm,
		logger:     cfg.Logger,
	}
}

// Calculate compares the ROI with its surrounding CA for a plantation.
// It returns either a complete result or an error.
func (c *Calculator) Calculate(ctx context.Context, plantationID, roiID, caID int64) (*models.CalculationResult, error) {
	ids := []struct {
		name string
		id   int64
	}{{"plantation", plantationID}, {"roi", roiID}, {"ca", caID}}
	for _, v := range ids {
		if v.id <= 0 {
			return nil, fmt.Errorf("%s id %d is not positive: %w", v.name, v.id, ErrDataNotFound)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := c.logger.With(
		zap.Int64("plantation_id", plantationID),
		zap.Int64("roi_id", roiID),
		zap.Int64("ca_id", caID),
	)

	ca, err := c.geometry.Zone(ctx, models.ZoneKindCA, caID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ca %d: %w", caID, err)
	}
	frame, err := BuildFrame(ca, c.cellSizeKm)
	if err != nil {
		return nil, err
	}
	log.Debug("Built ca frame",
		zap.Float64("width_km", frame.WidthKm),
		zap.Float64("height_km", frame.HeightKm),
		zap.Int("cols", frame.Cols),
		zap.Int("rows", frame.Rows))

	roi, err := c.geometry.Zone(ctx, models.ZoneKindROI, roiID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roi %d: %w", roiID, err)
	}
	alignment, err := ResolveAlignment(frame, roi)
	if err != nil {
		return nil, err
	}
	if !alignment.Contained {
		log.Warn("ROI extends beyond CA, summarizing the intersection only")
	}

	caSummary, err := c.summarize(ctx, frame, CAZone(frame), SurfaceRequest{
		PlantationID: plantationID,
		Kind:         models.ZoneKindCA,
		ZoneID:       caID,
	})
	if err != nil {
		return nil, err
	}
	roiSummary, err := c.summarize(ctx, frame, ROIZone(frame, alignment), SurfaceRequest{
		PlantationID: plantationID,
		Kind:         models.ZoneKindROI,
		ZoneID:       roiID,
	})
	if err != nil {
		return nil, err
	}

	return &models.CalculationResult{
		RatioX:          alignment.RatioX,
		RatioY:          alignment.RatioY,
		WidthKmCA:       frame.WidthKm,
		HeightKmCA:      frame.HeightKm,
		AlignmentPointX: alignment.Point.X,
		AlignmentPointY: alignment.Point.Y,
		ResultValues: models.ResultValues{
			CA:    caSummary,
			ROI:   roiSummary,
			Delta: ComposeDelta(caSummary, roiSummary),
		},
	}, nil
}

func (c *Calculator) summarize(ctx context.Context, frame *Frame, zone Zone, req SurfaceRequest) (models.Summary, error) {
	if err := ctx.Err(); err != nil {
		return models.Summary{}, err
	}
	surface, err := c.surfaces.Surface(ctx, req)
	if err != nil {
		return models.Summary{}, fmt.Errorf("failed to load %s surface for plantation %d: %w", zone.Name, req.PlantationID, err)
	}
	summary, err := Aggregate(frame, zone, surface)
	if err != nil {
		return models.Summary{}, err
	}
	return summary, nil
}
