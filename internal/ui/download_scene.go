package ui

import (
	"fmt"

	"github.com/austral-geolab/landchange-api-poc/internal/copernicus"
)

// DownloadScene handles the UI for fetching a Sentinel-2 mosaic of a
// study area from the Copernicus Data Space
func DownloadScene() {
	PrintWarning("- A '.geojson' file with the study area polygon is required.\n- Copernicus credentials must be set in the environment.")

	studyArea, err := ReadStudyArea("Enter the path to the study area GeoJSON: ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	date, err := ReadDate("Enter the scene date (YYYY-MM-DD): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	fmt.Println("Requesting scene from Copernicus, this may take a while...")
	path, err := copernicus.DownloadScene(studyArea, date)
	if err != nil {
		PrintError(fmt.Sprintf("Error downloading scene: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Scene saved to %s", path))
}
