package delivery

import (
	"errors"
	"fmt"
	"os"

	"github.com/austral-geolab/landchange-api-poc/internal/properties"
	"github.com/austral-geolab/landchange-api-poc/internal/scene"
	"github.com/austral-geolab/landchange-api-poc/internal/zonal"
	"github.com/austral-geolab/landchange-api-poc/output"
	"github.com/gocarina/gocsv"
)

// ZonalAnalysis aggregates the classified change raster over the zone
// polygons of the given GeoJSON layer and writes the per-zone table as
// CSV plus a GeoJSON export joining the counts back onto the zones.
// Zones that do not overlap the raster are reported and emitted as
// zero rows.
func ZonalAnalysis(zonesPath, idProperty string, pixelAreaHa float64) ([]zonal.ChangeZoneRow, error) {
	raster, err := scene.LoadChangeRaster(ClassifiedRasterPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load change raster (run change detection first): %w", err)
	}

	zones, err := zonal.LoadZones(zonesPath, idProperty)
	if err != nil {
		return nil, err
	}

	counts, zoneErrs := zonal.Aggregate(raster, zones)
	for _, zoneErr := range zoneErrs {
		var geomErr *zonal.ZoneGeometryError
		if errors.As(zoneErr, &geomErr) {
			fmt.Printf("Warning: %s\n", geomErr.Error())
		}
	}

	rows := zonal.BuildChangeRows(counts, pixelAreaHa)

	resultDir := fmt.Sprintf("%s/data/result", properties.RootPath())
	if err := os.MkdirAll(resultDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create result folder: %w", err)
	}

	csvPath := fmt.Sprintf("%s/zonal_stats.csv", resultDir)
	file, err := os.Create(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create zonal stats file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return nil, fmt.Errorf("failed to save zonal stats: %w", err)
	}
	fmt.Println("Zonal statistics saved to", csvPath)

	geojsonPath := fmt.Sprintf("%s/zonal_stats.geojson", resultDir)
	if err := output.CreateZonalGeoJSON(zones, rows, geojsonPath); err != nil {
		return nil, err
	}

	if err := zonalDiffStats(zones, pixelAreaHa, resultDir); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	return rows, nil
}

// zonalDiffStats aggregates the signed differencing raster over the
// same zones when a differencing run exists. Optional: the classified
// raster is the primary product.
func zonalDiffStats(zones []zonal.Zone, pixelAreaHa float64, resultDir string) error {
	raster, err := scene.LoadChangeRaster(DiffRasterPath())
	if err != nil {
		return fmt.Errorf("skipping differencing zonal stats: %w", err)
	}

	counts, _ := zonal.Aggregate(raster, zones)
	rows := zonal.BuildDiffRows(counts, pixelAreaHa)

	csvPath := fmt.Sprintf("%s/zonal_diff_stats.csv", resultDir)
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create differencing zonal stats file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to save differencing zonal stats: %w", err)
	}
	fmt.Println("Differencing zonal statistics saved to", csvPath)
	return nil
}
