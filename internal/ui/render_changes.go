package ui

import (
	"fmt"
	"os"

	"github.com/austral-geolab/landchange-api-poc/internal/delivery"
	"github.com/austral-geolab/landchange-api-poc/internal/properties"
	"github.com/austral-geolab/landchange-api-poc/internal/scene"
	"github.com/austral-geolab/landchange-api-poc/output"
)

// RenderChangeMaps handles the UI for rendering the latest change
// rasters as PNG images
func RenderChangeMaps() {
	resultDir := fmt.Sprintf("%s/data/result", properties.RootPath())
	if err := os.MkdirAll(resultDir, os.ModePerm); err != nil {
		PrintError(fmt.Sprintf("failed to create result folder: %v", err))
		return
	}

	classified, err := scene.LoadChangeRaster(delivery.ClassifiedRasterPath())
	if err != nil {
		PrintError(fmt.Sprintf("Error loading classified raster (run change detection first): %s", err.Error()))
		return
	}
	if _, err := output.CreateChangeImage(classified, fmt.Sprintf("%s/change_classified.png", resultDir)); err != nil {
		PrintError(err.Error())
		return
	}

	diff, err := scene.LoadChangeRaster(delivery.DiffRasterPath())
	if err != nil {
		PrintError(fmt.Sprintf("Error loading differencing raster: %s", err.Error()))
		return
	}
	if _, err := output.CreateDiffImage(diff, fmt.Sprintf("%s/change_diff_ndvi.png", resultDir)); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess("Change maps rendered!")
}
