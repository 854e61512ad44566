package fixture

import (
	"math"

	"github.com/jengzang/pollinator-abundance/internal/models"
)

// Default scenario identifiers
const (
	DefaultPlantationID int64 = 1
	DefaultROIID        int64 = 1
	DefaultCAID         int64 = 1
)

// Identifiers of the other scenarios in the reference dataset
const (
	// Plantation whose surface holds no data at all
	EmptyPlantationID int64 = 2
	// Geographic plantation, CA and ROI (WGS84 degrees)
	GeographicPlantationID int64 = 3
	GeographicCAID         int64 = 3
	GeographicROIID        int64 = 3
	// Plantation with a finer ROI-specific surface next to its plantation-wide one
	MixedResolutionPlantationID int64 = 4

	// ROI straddling the north-east corner of the default CA
	OverhangingROIID int64 = 2
	// CA whose vertices are collinear
	DegenerateCAID int64 = 2
	// CA whose boundary crosses itself
	BowtieCAID int64 = 4
	// ROI expressed in a different CRS than the default CA
	GeographicOnlyROIID int64 = 3
)

// Projected origin of the default CA (metres)
const (
	caEasting  = 500000.0
	caNorthing = 4000000.0
)

// Default returns a store populated with the reference dataset.
//
// The default CA is a 10 km x 10 km square; the default ROI is a 2 km x 4 km
// rectangle whose south-west corner sits 4 km east and 3 km north of the CA's.
func Default() *Store {
	s := NewStore()

	s.AddZone(rect(models.ZoneKindCA, DefaultCAID, "reference conservation area", models.CRSProjected,
		caEasting, caNorthing, caEasting+10000, caNorthing+10000))
	s.AddZone(rect(models.ZoneKindROI, DefaultROIID, "reference plantation footprint", models.CRSProjected,
		caEasting+4000, caNorthing+3000, caEasting+6000, caNorthing+7000))
	s.AddZone(rect(models.ZoneKindROI, OverhangingROIID, "overhanging buffer", models.CRSProjected,
		caEasting+8000, caNorthing+8000, caEasting+12000, caNorthing+12000))
	s.AddZone(models.Zone{
		ID: DegenerateCAID, Kind: models.ZoneKindCA, Name: "collinear", CRS: models.CRSProjected,
		Ring: []models.Coord{
			{X: caEasting, Y: caNorthing},
			{X: caEasting + 5000, Y: caNorthing + 5000},
			{X: caEasting + 10000, Y: caNorthing + 10000},
		},
	})
	s.AddZone(models.Zone{
		ID: BowtieCAID, Kind: models.ZoneKindCA, Name: "bowtie", CRS: models.CRSProjected,
		Ring: []models.Coord{
			{X: caEasting, Y: caNorthing},
			{X: caEasting + 10000, Y: caNorthing + 10000},
			{X: caEasting + 10000, Y: caNorthing},
			{X: caEasting, Y: caNorthing + 10000},
		},
	})

	s.AddZone(rect(models.ZoneKindCA, GeographicCAID, "alpine conservation area", models.CRSGeographic,
		12.50, 45.00, 12.60, 45.08))
	s.AddZone(rect(models.ZoneKindROI, GeographicROIID, "alpine orchard", models.CRSGeographic,
		12.53, 45.02, 12.55, 45.05))

	// 100 m cells covering the default CA
	s.AddRaster(SurfaceKey{PlantationID: DefaultPlantationID},
		fieldRaster(1, DefaultPlantationID, models.CRSProjected, caEasting, caNorthing+10000, 100, 100, 100, 100))

	empty := fieldRaster(2, EmptyPlantationID, models.CRSProjected, caEasting, caNorthing+10000, 100, 100, 100, 100)
	for _, band := range empty.Bands {
		for i := range band {
			band[i] = empty.NoData
		}
	}
	s.AddRaster(SurfaceKey{PlantationID: EmptyPlantationID}, empty)

	// 0.001 degree cells with a margin around the geographic CA
	s.AddRaster(SurfaceKey{PlantationID: GeographicPlantationID},
		fieldRaster(3, GeographicPlantationID, models.CRSGeographic, 12.49, 45.09, 0.001, 0.001, 110, 120))

	s.AddRaster(SurfaceKey{PlantationID: MixedResolutionPlantationID},
		fieldRaster(4, MixedResolutionPlantationID, models.CRSProjected, caEasting, caNorthing+10000, 250, 250, 40, 40))
	s.AddRaster(SurfaceKey{PlantationID: MixedResolutionPlantationID, Kind: models.ZoneKindROI, ZoneID: DefaultROIID},
		uniformRaster(5, MixedResolutionPlantationID, caEasting+4000, caNorthing+7000, 50, 80, 40, 1.0))

	return s
}

func rect(kind models.ZoneKind, id int64, name string, crs models.CRS, minX, minY, maxX, maxY float64) models.Zone {
	return models.Zone{
		ID:   id,
		Kind: kind,
		Name: name,
		CRS:  crs,
		Ring: []models.Coord{
			{X: minX, Y: minY},
			{X: maxX, Y: minY},
			{X: maxX, Y: maxY},
			{X: minX, Y: maxY},
		},
	}
}

// fieldRaster builds smooth, non-negative abundance, nesting and floral layers
// with a sparse pattern of no-data cells.
func fieldRaster(id, plantationID int64, crs models.CRS, originX, originY, cellW, cellH float64, rows, cols int) *models.Raster {
	r := &models.Raster{
		ID:           id,
		PlantationID: plantationID,
		CRS:          crs,
		OriginX:      originX,
		OriginY:      originY,
		CellWidth:    cellW,
		CellHeight:   cellH,
		Rows:         rows,
		Cols:         cols,
		NoData:       models.DefaultNoData,
		Bands:        make(map[models.Layer][]float64, len(models.Layers)),
	}

	pa := make([]float64, rows*cols)
	hn := make([]float64, rows*cols)
	fr := make([]float64, rows*cols)
	for row := 0; row < rows; row++ {
		v := (float64(row) + 0.5) / float64(rows)
		for col := 0; col < cols; col++ {
			u := (float64(col) + 0.5) / float64(cols)
			i := row*cols + col

			pa[i] = 0.5 + 0.35*math.Sin(3*math.Pi*u)*math.Cos(2*math.Pi*v)
			hn[i] = 0.4 + 0.3*math.Cos(2*math.Pi*u)
			fr[i] = 0.3 + 0.25*math.Sin(4*math.Pi*v) + 0.1*u

			if (row*31+col*17)%23 == 0 {
				pa[i] = r.NoData
			}
			if (row+col)%37 == 0 {
				fr[i] = math.NaN()
			}
		}
	}

	r.Bands[models.LayerPollinatorAbundance] = pa
	r.Bands[models.LayerNestingSuitability] = hn
	r.Bands[models.LayerFloralResources] = fr
	return r
}

func uniformRaster(id, plantationID int64, originX, originY, cell float64, rows, cols int, value float64) *models.Raster {
	r := &models.Raster{
		ID:           id,
		PlantationID: plantationID,
		CRS:          models.CRSProjected,
		OriginX:      originX,
		OriginY:      originY,
		CellWidth:    cell,
		CellHeight:   cell,
		Rows:         rows,
		Cols:         cols,
		NoData:       models.DefaultNoData,
		Bands:        make(map[models.Layer][]float64, len(models.Layers)),
	}
	for _, layer := range models.Layers {
		band := make([]float64, rows*cols)
		for i := range band {
			band[i] = value
		}
		r.Bands[layer] = band
	}
	return r
}
