package copernicus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/properties"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/oauth2/clientcredentials"
)

const processURL = "https://sh.dataspace.copernicus.eu/api/v1/process"

const requestRetries = 10

// evalscript requesting the five bands the index calculator needs:
// blue, green, red, NIR at 10m and SWIR1 at 20m, as reflectance.
const evalscript = `
    //VERSION=3
    function setup() {
      return {
        input: ["B02", "B03", "B04", "B08", "B11"],
        output: {
          id: "default",
          bands: 5,
          sampleType: SampleType.FLOAT32,
        },
      }
    }

    function evaluatePixel(sample) {
      return [sample.B02, sample.B03, sample.B04, sample.B08, sample.B11];
    }
  `

func calculatePixels(distance float64, resolution float64) int {
	pixels := distance * (111_000.0 / resolution)
	if pixels < 1 {
		return 1
	}
	return int(pixels)
}

// RequestScene fetches a Sentinel-2 L2A mosaic of the study area for
// the given time range from the Copernicus Data Space process API and
// returns the GeoTIFF bytes.
func RequestScene(studyArea orb.Geometry, startDate, endDate time.Time) ([]byte, error) {
	bound := studyArea.Bound()

	widthPixels := calculatePixels(bound.Max[0]-bound.Min[0], 10)
	heightPixels := calculatePixels(bound.Max[1]-bound.Min[1], 10)
	// Clamp to the allowed range (1-2500)
	if widthPixels > 2500 {
		widthPixels = 2500
	}
	if heightPixels > 2500 {
		heightPixels = 2500
	}

	geometryJSON, err := geojson.NewGeometry(studyArea).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export study area to GeoJSON: %w", err)
	}
	var geometryMap map[string]interface{}
	if err := json.Unmarshal(geometryJSON, &geometryMap); err != nil {
		return nil, fmt.Errorf("failed to parse study area GeoJSON: %w", err)
	}

	requestPayload := map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"geometry": geometryMap,
			},
			"data": []map[string]interface{}{
				{
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": startDate.Format(time.RFC3339),
							"to":   endDate.Format(time.RFC3339),
						},
					},
					"type": "sentinel-2-l2a",
				},
			},
		},
		"output": map[string]interface{}{
			"width":  widthPixels,
			"height": heightPixels,
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": evalscript,
		"mosaicking": "mostRecent",
	}

	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %v", err)
	}

	clientID := properties.CopernicusClientID()
	clientSecret := properties.CopernicusClientSecret()
	tokenURL := properties.CopernicusTokenURL()
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return nil, fmt.Errorf("missing required environment variables: COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET, or COPERNICUS_TOKEN_URL")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := config.Client(context.Background())

	var response *http.Response
	for attempt := 1; attempt <= requestRetries; attempt++ {
		response, err = httpClient.Post(processURL, "application/json", bytes.NewBuffer(requestBody))
		if err == nil && response.StatusCode == http.StatusOK {
			break
		}

		if response != nil {
			body, _ := io.ReadAll(response.Body)
			response.Body.Close()
			response = nil
			fmt.Printf("Attempt %d failed: %s\n", attempt, string(body))
		} else {
			fmt.Printf("Attempt %d failed: %v\n", attempt, err)
		}

		time.Sleep(5 * time.Second)
	}

	if response == nil {
		return nil, fmt.Errorf("failed to request scene after %d attempts: %v", requestRetries, err)
	}
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}
	return content, nil
}

// DownloadScene fetches the mosaic closest to the given date (one-day
// window) and stores it under data/scenes.
func DownloadScene(studyArea orb.Geometry, date time.Time) (string, error) {
	content, err := RequestScene(studyArea, date, date.AddDate(0, 0, 1))
	if err != nil {
		return "", err
	}

	outputDir := fmt.Sprintf("%s/data/scenes", properties.RootPath())
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create scenes folder: %w", err)
	}

	outputPath := fmt.Sprintf("%s/scene_%s.tif", outputDir, date.Format("2006-01-02"))
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to save scene: %w", err)
	}
	return outputPath, nil
}
