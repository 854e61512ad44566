package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jengzang/pollinator-abundance/internal/database"
	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/pollination"
)

// SurfaceRepository handles database operations for abundance rasters
type SurfaceRepository struct {
	db *database.DB
}

// NewSurfaceRepository creates a new surface repository
func NewSurfaceRepository(db *database.DB) *SurfaceRepository {
	return &SurfaceRepository{db: db}
}

// Surface implements pollination.SurfaceProvider. A raster bound to the
// requested zone takes precedence over the plantation-wide raster.
func (r *SurfaceRepository) Surface(ctx context.Context, req pollination.SurfaceRequest) (*models.Raster, error) {
	query := `SELECT id, plantation_id, crs, origin_x, origin_y, cell_width, cell_height, rows, cols, nodata
		FROM rasters
		WHERE plantation_id = ?
			AND ((zone_kind = ? AND zone_id = ?) OR (zone_kind = '' AND zone_id = 0))
		ORDER BY zone_id DESC
		LIMIT 1`

	var rs models.Raster
	err := r.db.QueryRowContext(ctx, query, req.PlantationID, string(req.Kind), req.ZoneID).Scan(
		&rs.ID, &rs.PlantationID, &rs.CRS,
		&rs.OriginX, &rs.OriginY, &rs.CellWidth, &rs.CellHeight,
		&rs.Rows, &rs.Cols, &rs.NoData,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("surface for plantation %d: %w", req.PlantationID, pollination.ErrDataNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query surface for plantation %d: %w", req.PlantationID, err)
	}

	if err := r.loadBands(ctx, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

func (r *SurfaceRepository) loadBands(ctx context.Context, rs *models.Raster) error {
	rows, err := r.db.QueryContext(ctx, `SELECT layer, data FROM raster_bands WHERE raster_id = ?`, rs.ID)
	if err != nil {
		return fmt.Errorf("failed to query bands of raster %d: %w", rs.ID, err)
	}
	defer rows.Close()

	rs.Bands = make(map[models.Layer][]float64, len(models.Layers))
	for rows.Next() {
		var layer string
		var data []byte
		if err := rows.Scan(&layer, &data); err != nil {
			return fmt.Errorf("failed to scan band of raster %d: %w", rs.ID, err)
		}
		band, err := decodeBand(data, rs.Rows*rs.Cols)
		if err != nil {
			return fmt.Errorf("raster %d band %s: %w", rs.ID, layer, err)
		}
		rs.Bands[models.Layer(layer)] = band
	}
	return rows.Err()
}

// SaveRaster inserts or replaces a raster and its bands. A zero zoneID binds
// the raster to every zone of its plantation.
func (r *SurfaceRepository) SaveRaster(ctx context.Context, rs *models.Raster, kind models.ZoneKind, zoneID int64) error {
	if err := rs.Validate(); err != nil {
		return err
	}
	if zoneID == 0 {
		kind = ""
	}

	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO rasters
			(id, plantation_id, zone_kind, zone_id, crs, origin_x, origin_y, cell_width, cell_height, rows, cols, nodata)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rs.ID, rs.PlantationID, string(kind), zoneID, string(rs.CRS),
			rs.OriginX, rs.OriginY, rs.CellWidth, rs.CellHeight, rs.Rows, rs.Cols, rs.NoData)
		if err != nil {
			return fmt.Errorf("failed to save raster %d: %w", rs.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM raster_bands WHERE raster_id = ?`, rs.ID); err != nil {
			return fmt.Errorf("failed to clear bands of raster %d: %w", rs.ID, err)
		}
		for _, layer := range models.Layers {
			band, ok := rs.Bands[layer]
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO raster_bands (raster_id, layer, data) VALUES (?, ?, ?)`,
				rs.ID, string(layer), encodeBand(band)); err != nil {
				return fmt.Errorf("failed to save band %s of raster %d: %w", layer, rs.ID, err)
			}
		}
		return nil
	})
}
