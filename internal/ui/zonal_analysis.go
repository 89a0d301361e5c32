package ui

import (
	"fmt"

	"github.com/austral-geolab/landchange-api-poc/internal/delivery"
	"github.com/austral-geolab/landchange-api-poc/internal/zonal"
)

// ZonalAnalysis handles the UI for aggregating the classified change
// raster over zone polygons
func ZonalAnalysis() {
	PrintWarning("- Run change detection first, the classified raster is the aggregation input.\n- The zones '.geojson' file should identify each zone by an id property.")

	zonesPath := ReadString("Enter the path to the zones GeoJSON: ")
	if zonesPath == "" {
		PrintError("zones path cannot be empty")
		return
	}

	idProperty := ReadString("Enter the zone id property name [id]: ")
	if idProperty == "" {
		idProperty = "id"
	}

	pixelAreaHa, err := ReadFloat("Enter the pixel area in hectares", zonal.DefaultPixelAreaHa)
	if err != nil {
		PrintError(err.Error())
		return
	}

	rows, err := delivery.ZonalAnalysis(zonesPath, idProperty, pixelAreaHa)
	if err != nil {
		PrintError(err.Error())
		return
	}

	for _, row := range rows {
		fmt.Printf("Zone %s: %d pixels, %.2f ha vegetation loss, %.2f ha urbanization\n",
			row.Zone, row.TotalPixels, row.VegetationLossHa, row.UrbanizationHa)
	}

	PrintSuccess("Zonal analysis finished!")
}
