package repository_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/pollinator-abundance/internal/database"
	"github.com/jengzang/pollinator-abundance/internal/fixture"
	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/pollination"
	"github.com/jengzang/pollinator-abundance/internal/repository"
)

type seedWriter struct {
	*repository.ZoneRepository
	*repository.SurfaceRepository
}

func setupRepositories(t *testing.T) (*repository.ZoneRepository, *repository.SurfaceRepository) {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "pollinator.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp(database.Migrations(), nil))

	zones := repository.NewZoneRepository(db)
	surfaces := repository.NewSurfaceRepository(db)
	require.NoError(t, fixture.Default().SeedInto(context.Background(), seedWriter{zones, surfaces}))
	return zones, surfaces
}

func TestZoneRepository(t *testing.T) {
	zones, _ := setupRepositories(t)
	ctx := context.Background()

	want, err := fixture.Default().Zone(ctx, models.ZoneKindROI, fixture.DefaultROIID)
	require.NoError(t, err)

	got, err := zones.Zone(ctx, models.ZoneKindROI, fixture.DefaultROIID)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("zone mismatch (-want +got):\n%s", diff)
	}

	_, err = zones.Zone(ctx, models.ZoneKindCA, 99)
	assert.ErrorIs(t, err, pollination.ErrDataNotFound)

	// The same id under the other kind is a different zone
	_, err = zones.Zone(ctx, models.ZoneKindROI, fixture.BowtieCAID)
	assert.ErrorIs(t, err, pollination.ErrDataNotFound)

	cas, err := zones.ListZones(ctx, models.ZoneKindCA)
	require.NoError(t, err)
	ids := make([]int64, len(cas))
	for i, z := range cas {
		ids[i] = z.ID
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)

	// A stored zone without a boundary resolves to nothing
	require.NoError(t, zones.SaveZone(ctx, models.Zone{ID: 9, Kind: models.ZoneKindROI, CRS: models.CRSProjected}))
	_, err = zones.Zone(ctx, models.ZoneKindROI, 9)
	assert.ErrorIs(t, err, pollination.ErrDataNotFound)
	assert.NotErrorIs(t, err, pollination.ErrInvalidGeometry)

	renamed := got
	renamed.Name = "renamed"
	require.NoError(t, zones.SaveZone(ctx, renamed))
	got, err = zones.Zone(ctx, models.ZoneKindROI, fixture.DefaultROIID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
}

func TestSurfaceRepository(t *testing.T) {
	_, surfaces := setupRepositories(t)
	ctx := context.Background()

	t.Run("plantation-wide raster round-trips", func(t *testing.T) {
		req := pollination.SurfaceRequest{PlantationID: fixture.DefaultPlantationID, Kind: models.ZoneKindCA, ZoneID: 1}
		want, err := fixture.Default().Surface(ctx, req)
		require.NoError(t, err)

		got, err := surfaces.Surface(ctx, req)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b float64) bool {
			return a == b || (math.IsNaN(a) && math.IsNaN(b))
		})); diff != "" {
			t.Errorf("raster mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("zone-specific raster wins", func(t *testing.T) {
		roi, err := surfaces.Surface(ctx, pollination.SurfaceRequest{
			PlantationID: fixture.MixedResolutionPlantationID, Kind: models.ZoneKindROI, ZoneID: fixture.DefaultROIID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), roi.ID)

		ca, err := surfaces.Surface(ctx, pollination.SurfaceRequest{
			PlantationID: fixture.MixedResolutionPlantationID, Kind: models.ZoneKindCA, ZoneID: fixture.DefaultCAID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), ca.ID)
	})

	t.Run("unknown plantation", func(t *testing.T) {
		_, err := surfaces.Surface(ctx, pollination.SurfaceRequest{PlantationID: 99, Kind: models.ZoneKindCA, ZoneID: 1})
		assert.ErrorIs(t, err, pollination.ErrDataNotFound)
	})

	t.Run("invalid raster is rejected", func(t *testing.T) {
		bad := &models.Raster{ID: 42, PlantationID: 9, CRS: models.CRSProjected, CellWidth: 1, CellHeight: 1}
		assert.Error(t, surfaces.SaveRaster(ctx, bad, "", 0))
	})
}

func TestCalculatorOverRepositoriesMatchesFixture(t *testing.T) {
	zones, surfaces := setupRepositories(t)
	ctx := context.Background()

	store := fixture.Default()
	want, err := pollination.NewCalculator(store, store, pollination.Config{}).Calculate(ctx, 1, 1, 1)
	require.NoError(t, err)

	got, err := pollination.NewCalculator(zones, surfaces, pollination.Config{}).Calculate(ctx, 1, 1, 1)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result mismatch (-fixture +sqlite):\n%s", diff)
	}
}

func TestBandCodecRoundTrip(t *testing.T) {
	_, surfaces := setupRepositories(t)
	ctx := context.Background()

	r := &models.Raster{
		ID: 50, PlantationID: 50, CRS: models.CRSProjected,
		OriginY: 2, CellWidth: 1, CellHeight: 1, Rows: 2, Cols: 2, NoData: models.DefaultNoData,
		Bands: map[models.Layer][]float64{
			models.LayerPollinatorAbundance: {0, math.SmallestNonzeroFloat64, math.MaxFloat64, models.DefaultNoData},
		},
	}
	require.NoError(t, surfaces.SaveRaster(ctx, r, "", 0))

	got, err := surfaces.Surface(ctx, pollination.SurfaceRequest{PlantationID: 50, Kind: models.ZoneKindCA, ZoneID: 1})
	require.NoError(t, err)
	assert.Equal(t, r.Bands, got.Bands)
}
