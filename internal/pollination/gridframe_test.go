package pollination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/spatial"
)

func rectZone(kind models.ZoneKind, id int64, crs models.CRS, minX, minY, maxX, maxY float64) models.Zone {
	return models.Zone{
		ID:   id,
		Kind: kind,
		CRS:  crs,
		Ring: []models.Coord{{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY}},
	}
}

func TestBuildFrameProjected(t *testing.T) {
	t.Parallel()

	ca := rectZone(models.ZoneKindCA, 1, models.CRSProjected, 500000, 4000000, 510000, 4010000)
	frame, err := BuildFrame(ca, 0.1)
	require.NoError(t, err)

	assert.Equal(t, 10.0, frame.WidthKm)
	assert.Equal(t, 10.0, frame.HeightKm)
	assert.Equal(t, spatial.Point{X: 500000, Y: 4000000}, frame.Origin)
	assert.Equal(t, 100, frame.Cols)
	assert.Equal(t, 100, frame.Rows)
	assert.Equal(t, spatial.Point{X: 0, Y: 0}, frame.Boundary[0])
	assert.Equal(t, spatial.Point{X: 10, Y: 10}, frame.Boundary[2])

	assert.Equal(t, spatial.Point{X: 0.05, Y: 0.05}, frame.CellCenter(0, 0))
	assert.InDelta(t, 0.01, frame.CellAreaKm2(), 1e-15)
}

func TestBuildFrameGeographic(t *testing.T) {
	t.Parallel()

	mid := rectZone(models.ZoneKindCA, 3, models.CRSGeographic, 12.50, 45.00, 12.60, 45.08)
	frame, err := BuildFrame(mid, 0.1)
	require.NoError(t, err)

	assert.InDelta(t, 7.857, frame.WidthKm, 0.01)
	assert.InDelta(t, 8.8956, frame.HeightKm, 0.001)
	assert.Equal(t, 79, frame.Cols)
	assert.Equal(t, 89, frame.Rows)

	// Same angular size, higher latitude: narrower, equally tall
	north := rectZone(models.ZoneKindCA, 5, models.CRSGeographic, 12.50, 70.00, 12.60, 70.08)
	high, err := BuildFrame(north, 0.1)
	require.NoError(t, err)
	assert.Less(t, high.WidthKm, frame.WidthKm*0.5)
	assert.InDelta(t, frame.HeightKm, high.HeightKm, 1e-9)
}

func TestBuildFrameRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		zone    models.Zone
		cell    float64
		wantErr error
	}{
		{
			name: "collinear",
			zone: models.Zone{ID: 2, Kind: models.ZoneKindCA, CRS: models.CRSProjected,
				Ring: []models.Coord{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 10}}},
			cell:    0.1,
			wantErr: ErrInvalidGeometry,
		},
		{
			name: "bowtie",
			zone: models.Zone{ID: 4, Kind: models.ZoneKindCA, CRS: models.CRSProjected,
				Ring: []models.Coord{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}}},
			cell:    0.1,
			wantErr: ErrInvalidGeometry,
		},
		{
			name:    "two vertices",
			zone:    models.Zone{ID: 6, Kind: models.ZoneKindCA, CRS: models.CRSProjected, Ring: []models.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}}},
			cell:    0.1,
			wantErr: ErrInvalidGeometry,
		},
		{
			name:    "unknown crs",
			zone:    rectZone(models.ZoneKindCA, 7, models.CRS("EPSG:3857"), 0, 0, 10, 10),
			cell:    0.1,
			wantErr: ErrInvalidGeometry,
		},
		{
			name:    "zero cell size",
			zone:    rectZone(models.ZoneKindCA, 1, models.CRSProjected, 0, 0, 10000, 10000),
			cell:    0,
			wantErr: ErrComputation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildFrame(tt.zone, tt.cell)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, frame)
		})
	}
}

func TestBuildFrameAcceptsClosedRing(t *testing.T) {
	t.Parallel()

	ca := rectZone(models.ZoneKindCA, 1, models.CRSProjected, 0, 0, 3000, 2000)
	ca.Ring = append(ca.Ring, ca.Ring[0], ca.Ring[0])

	frame, err := BuildFrame(ca, 1)
	require.NoError(t, err)
	assert.Len(t, frame.Boundary, 4)
	assert.Equal(t, 3, frame.Cols)
	assert.Equal(t, 2, frame.Rows)
}
