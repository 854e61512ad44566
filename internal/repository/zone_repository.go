package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jengzang/pollinator-abundance/internal/database"
	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/pollination"
)

// ZoneRepository handles database operations for CA and ROI boundaries
type ZoneRepository struct {
	db *database.DB
}

// NewZoneRepository creates a new zone repository
func NewZoneRepository(db *database.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// Zone implements pollination.GeometryResolver
func (r *ZoneRepository) Zone(ctx context.Context, kind models.ZoneKind, id int64) (models.Zone, error) {
	query := `SELECT id, kind, name, crs, ring FROM zones WHERE kind = ? AND id = ?`

	var z models.Zone
	var ring string
	err := r.db.QueryRowContext(ctx, query, string(kind), id).Scan(&z.ID, &z.Kind, &z.Name, &z.CRS, &ring)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Zone{}, fmt.Errorf("%s %d: %w", kind, id, pollination.ErrDataNotFound)
	}
	if err != nil {
		return models.Zone{}, fmt.Errorf("failed to query %s %d: %w", kind, id, err)
	}

	if err := json.Unmarshal([]byte(ring), &z.Ring); err != nil {
		return models.Zone{}, fmt.Errorf("failed to decode ring of %s: %w", z, err)
	}
	if len(z.Ring) == 0 {
		return models.Zone{}, fmt.Errorf("%s has no geometry: %w", z, pollination.ErrDataNotFound)
	}
	return z, nil
}

// SaveZone inserts or replaces a zone
func (r *ZoneRepository) SaveZone(ctx context.Context, z models.Zone) error {
	ring, err := json.Marshal(z.Ring)
	if err != nil {
		return fmt.Errorf("failed to encode ring of %s: %w", z, err)
	}

	query := `INSERT INTO zones (kind, id, name, crs, ring) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET name = excluded.name, crs = excluded.crs, ring = excluded.ring`
	if _, err := r.db.ExecContext(ctx, query, string(z.Kind), z.ID, z.Name, string(z.CRS), string(ring)); err != nil {
		return fmt.Errorf("failed to save %s: %w", z, err)
	}
	return nil
}

// ListZones returns every zone of the given kind ordered by id
func (r *ZoneRepository) ListZones(ctx context.Context, kind models.ZoneKind) ([]models.Zone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind, name, crs, ring FROM zones WHERE kind = ? ORDER BY id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	defer rows.Close()

	var zones []models.Zone
	for rows.Next() {
		var z models.Zone
		var ring string
		if err := rows.Scan(&z.ID, &z.Kind, &z.Name, &z.CRS, &ring); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		if err := json.Unmarshal([]byte(ring), &z.Ring); err != nil {
			return nil, fmt.Errorf("failed to decode ring of %s: %w", z, err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}
