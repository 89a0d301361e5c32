package scene

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"
	"github.com/austral-geolab/landchange-api-poc/internal/raster"
)

// ReadGrid reads one band of a raster file into a Grid. Nodata cells
// become NaN so downstream math propagates them instead of mapping
// them to zero.
func ReadGrid(path string, bandIndex int) (*raster.Grid, error) {
	dataset, err := godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to open raster %s: %w", path, err)
	}
	defer dataset.Close()

	return readBand(dataset, bandIndex)
}

func readBand(dataset *godal.Dataset, bandIndex int) (*raster.Grid, error) {
	bands := dataset.Bands()
	if bandIndex < 0 || bandIndex >= len(bands) {
		return nil, fmt.Errorf("band index %d out of range, dataset has %d bands", bandIndex, len(bands))
	}
	band := bands[bandIndex]

	width := dataset.Structure().SizeX
	height := dataset.Structure().SizeY
	data := make([]float64, width*height)
	if err := band.Read(0, 0, data, width, height); err != nil {
		return nil, fmt.Errorf("failed to read raster data: %w", err)
	}

	grid := &raster.Grid{
		Data:   data,
		Width:  width,
		Height: height,
		NoData: math.NaN(),
	}

	if geoTransform, err := dataset.GeoTransform(); err == nil {
		grid.GeoTransform = geoTransform
	}
	if sr := dataset.SpatialRef(); sr != nil {
		if wkt, err := sr.WKT(); err == nil {
			grid.Projection = wkt
		}
		sr.Close()
	}

	if nodata, ok := band.NoData(); ok {
		grid.NoData = nodata
		for i, v := range grid.Data {
			if v == nodata {
				grid.Data[i] = math.NaN()
			}
		}
	}

	return grid, nil
}
