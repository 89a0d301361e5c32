package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/austral-geolab/landchange-api-poc/internal/change"
	"github.com/austral-geolab/landchange-api-poc/internal/indices"
	"github.com/austral-geolab/landchange-api-poc/internal/raster"
)

// Index band order inside a stack file. Kept stable so stacks written
// by one run are readable by any later run.
var stackBandNames = []string{"NDVI", "NDBI", "NDWI", "BSI"}

// WriteStack writes the four index grids as one GTiff, NaN as nodata.
func WriteStack(stack *indices.Stack, path string) error {
	grids := []*raster.Grid{stack.NDVI, stack.NDBI, stack.NDWI, stack.BSI}

	dataset, err := godal.Create(godal.GTiff, path, len(grids), godal.Float32, stack.Width(), stack.Height())
	if err != nil {
		return fmt.Errorf("failed to create stack file %s: %w", path, err)
	}
	defer dataset.Close()

	if err := applyGeoreference(dataset, stack.NDVI.GeoTransform, stack.NDVI.Projection); err != nil {
		return err
	}

	for i, grid := range grids {
		band := dataset.Bands()[i]
		if err := band.SetNoData(math.NaN()); err != nil {
			return fmt.Errorf("failed to set nodata on band %s: %w", stackBandNames[i], err)
		}
		if err := band.Write(0, 0, grid.Data, grid.Width, grid.Height); err != nil {
			return fmt.Errorf("failed to write band %s: %w", stackBandNames[i], err)
		}
	}

	return nil
}

// LoadStack reads a stack file written by WriteStack.
func LoadStack(path string, date time.Time) (*indices.Stack, error) {
	grids := make([]*raster.Grid, len(stackBandNames))
	for i := range stackBandNames {
		grid, err := ReadGrid(path, i)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from %s: %w", stackBandNames[i], path, err)
		}
		grids[i] = grid
	}
	return &indices.Stack{
		Date: date,
		NDVI: grids[0],
		NDBI: grids[1],
		NDWI: grids[2],
		BSI:  grids[3],
	}, nil
}

// WriteChangeRaster writes the categorical raster as a single Int16
// band with nodata 0. Invalid cells already carry code 0, so the
// nodata convention matches the classifier's forced-zero policy.
func WriteChangeRaster(r *change.Raster, path string) error {
	dataset, err := godal.Create(godal.GTiff, path, 1, godal.Int16, r.Width, r.Height)
	if err != nil {
		return fmt.Errorf("failed to create change raster %s: %w", path, err)
	}
	defer dataset.Close()

	if err := applyGeoreference(dataset, r.GeoTransform, r.Projection); err != nil {
		return err
	}

	band := dataset.Bands()[0]
	if err := band.SetNoData(0); err != nil {
		return fmt.Errorf("failed to set nodata: %w", err)
	}

	data := make([]float64, len(r.Codes))
	for i, code := range r.Codes {
		data[i] = float64(code)
	}
	if err := band.Write(0, 0, data, r.Width, r.Height); err != nil {
		return fmt.Errorf("failed to write change raster: %w", err)
	}

	return nil
}

// LoadChangeRaster reads a raster written by WriteChangeRaster. The
// validity mask is not round-tripped: invalid cells were forced to
// code 0 on write, so every cell loads as valid no-change.
func LoadChangeRaster(path string) (*change.Raster, error) {
	grid, err := ReadGrid(path, 0)
	if err != nil {
		return nil, err
	}

	r := &change.Raster{
		Codes:        make([]int8, len(grid.Data)),
		Valid:        make([]bool, len(grid.Data)),
		Width:        grid.Width,
		Height:       grid.Height,
		GeoTransform: grid.GeoTransform,
		Projection:   grid.Projection,
	}
	for i, v := range grid.Data {
		if math.IsNaN(v) {
			r.Valid[i] = true
			continue
		}
		r.Codes[i] = int8(v)
		r.Valid[i] = true
	}
	return r, nil
}

func applyGeoreference(dataset *godal.Dataset, geoTransform [6]float64, projection string) error {
	if err := dataset.SetGeoTransform(geoTransform); err != nil {
		return fmt.Errorf("failed to set geotransform: %w", err)
	}
	if projection == "" {
		return nil
	}
	sr, err := godal.NewSpatialRefFromWKT(projection)
	if err != nil {
		return fmt.Errorf("failed to parse projection: %w", err)
	}
	defer sr.Close()
	if err := dataset.SetSpatialRef(sr); err != nil {
		return fmt.Errorf("failed to set spatial ref: %w", err)
	}
	return nil
}
