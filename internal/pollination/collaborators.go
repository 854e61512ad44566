package pollination

import (
	"context"

	"github.com/jengzang/pollinator-abundance/internal/models"
)

// GeometryResolver looks up zone boundaries by identifier.
// Implementations return an error wrapping ErrDataNotFound for unknown identifiers.
type GeometryResolver interface {
	Zone(ctx context.Context, kind models.ZoneKind, id int64) (models.Zone, error)
}

// SurfaceRequest identifies the abundance surface to evaluate over one zone
type SurfaceRequest struct {
	PlantationID int64
	Kind         models.ZoneKind
	ZoneID       int64
}

// SurfaceProvider loads abundance rasters.
// Every call returns a raster owned by the caller; implementations must not share it.
type SurfaceProvider interface {
	Surface(ctx context.Context, req SurfaceRequest) (*models.Raster, error)
}
