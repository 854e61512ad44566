// Package fixture provides an in-memory zone and surface store with a deterministic
// reference dataset. It backs the default scenario used by smoke tests, profiling and
// the seed command.
package fixture

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/pollination"
)

type zoneKey struct {
	kind models.ZoneKind
	id   int64
}

// SurfaceKey binds a raster to a plantation, optionally narrowed to one zone.
// A zero ZoneID means the raster covers every zone of the plantation.
type SurfaceKey struct {
	PlantationID int64
	Kind         models.ZoneKind
	ZoneID       int64
}

// Store is an in-memory GeometryResolver and SurfaceProvider
type Store struct {
	mu      sync.RWMutex
	zones   map[zoneKey]models.Zone
	rasters map[SurfaceKey]*models.Raster
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		zones:   make(map[zoneKey]models.Zone),
		rasters: make(map[SurfaceKey]*models.Raster),
	}
}

// AddZone stores a copy of the zone
func (s *Store) AddZone(z models.Zone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[zoneKey{z.Kind, z.ID}] = z.Clone()
}

// AddRaster stores a copy of the raster under key
func (s *Store) AddRaster(key SurfaceKey, r *models.Raster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rasters[key] = cloneRaster(r)
}

// Zone implements pollination.GeometryResolver
func (s *Store) Zone(ctx context.Context, kind models.ZoneKind, id int64) (models.Zone, error) {
	if err := ctx.Err(); err != nil {
		return models.Zone{}, err
	}

	s.mu.RLock()
	z, ok := s.zones[zoneKey{kind, id}]
	s.mu.RUnlock()
	if !ok {
		return models.Zone{}, fmt.Errorf("%s %d: %w", kind, id, pollination.ErrDataNotFound)
	}
	if len(z.Ring) == 0 {
		return models.Zone{}, fmt.Errorf("%s has no geometry: %w", z, pollination.ErrDataNotFound)
	}
	return z.Clone(), nil
}

// Surface implements pollination.SurfaceProvider. A zone-specific raster takes
// precedence over the plantation-wide one.
func (s *Store) Surface(ctx context.Context, req pollination.SurfaceRequest) (*models.Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.rasters[SurfaceKey{req.PlantationID, req.Kind, req.ZoneID}]; ok {
		return cloneRaster(r), nil
	}
	if r, ok := s.rasters[SurfaceKey{PlantationID: req.PlantationID}]; ok {
		return cloneRaster(r), nil
	}
	return nil, fmt.Errorf("surface for plantation %d: %w", req.PlantationID, pollination.ErrDataNotFound)
}

// Zones returns every stored zone ordered by kind and id
func (s *Store) Zones() []models.Zone {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Zone, 0, len(s.zones))
	for _, z := range s.zones {
		out = append(out, z.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Rasters returns every stored raster with its binding, ordered by raster id
func (s *Store) Rasters() ([]SurfaceKey, []*models.Raster) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]SurfaceKey, 0, len(s.rasters))
	for k := range s.rasters {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return s.rasters[keys[i]].ID < s.rasters[keys[j]].ID
	})

	rasters := make([]*models.Raster, len(keys))
	for i, k := range keys {
		rasters[i] = cloneRaster(s.rasters[k])
	}
	return keys, rasters
}

// Writer persists zones and rasters
type Writer interface {
	SaveZone(ctx context.Context, z models.Zone) error
	SaveRaster(ctx context.Context, r *models.Raster, kind models.ZoneKind, zoneID int64) error
}

// SeedInto copies the store contents into w
func (s *Store) SeedInto(ctx context.Context, w Writer) error {
	for _, z := range s.Zones() {
		if err := w.SaveZone(ctx, z); err != nil {
			return fmt.Errorf("failed to seed %s: %w", z, err)
		}
	}

	keys, rasters := s.Rasters()
	for i, r := range rasters {
		if err := w.SaveRaster(ctx, r, keys[i].Kind, keys[i].ZoneID); err != nil {
			return fmt.Errorf("failed to seed raster %d: %w", r.ID, err)
		}
	}
	return nil
}

func cloneRaster(r *models.Raster) *models.Raster {
	if r == nil {
		return nil
	}
	out := *r
	out.Bands = make(map[models.Layer][]float64, len(r.Bands))
	for layer, band := range r.Bands {
		out.Bands[layer] = append([]float64(nil), band...)
	}
	return &out
}
