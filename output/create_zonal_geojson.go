package output

import (
	"fmt"
	"os"

	"github.com/austral-geolab/landchange-api-poc/internal/zonal"
	"github.com/paulmach/orb/geojson"
)

// CreateZonalGeoJSON joins the per-zone change counts back onto the
// zone geometries so the table can be mapped directly.
func CreateZonalGeoJSON(zones []zonal.Zone, rows []zonal.ChangeZoneRow, path string) error {
	rowByZone := make(map[string]zonal.ChangeZoneRow, len(rows))
	for _, row := range rows {
		rowByZone[row.Zone] = row
	}

	fc := geojson.NewFeatureCollection()
	for _, zone := range zones {
		feature := geojson.NewFeature(zone.Geometry)
		feature.Properties["zone"] = zone.ID

		row, ok := rowByZone[zone.ID]
		if !ok {
			continue
		}
		feature.Properties["total_pixels"] = row.TotalPixels
		feature.Properties["no_change"] = row.NoChange
		feature.Properties["urbanization"] = row.Urbanization
		feature.Properties["vegetation_loss"] = row.VegetationLoss
		feature.Properties["vegetation_gain"] = row.VegetationGain
		feature.Properties["new_water"] = row.NewWater
		feature.Properties["water_loss"] = row.WaterLoss
		feature.Properties["urbanization_ha"] = row.UrbanizationHa
		feature.Properties["vegetation_loss_ha"] = row.VegetationLossHa
		feature.Properties["vegetation_gain_ha"] = row.VegetationGainHa
		fc.Append(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal zonal geojson: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write zonal geojson: %w", err)
	}
	fmt.Println("Zonal GeoJSON saved to", path)
	return nil
}
