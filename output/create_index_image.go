package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/austral-geolab/landchange-api-poc/internal/raster"
	"github.com/fogleman/gg"
)

const legendHeight = 24

func normalize(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	norm := (value - min) / (max - min)
	if norm < 0 {
		return 0
	}
	if norm > 1 {
		return 1
	}
	return norm
}

// valueToColor maps a normalized index value onto a blue-green-red
// ramp.
func valueToColor(norm float64) (float64, float64, float64) {
	if norm <= 0.5 {
		// Transition from blue to green
		ratio := norm / 0.5
		return 0, ratio, 1 - ratio
	}
	// Transition from green to red
	ratio := (norm - 0.5) / 0.5
	return ratio, 1 - ratio, 0
}

// CreateIndexImage renders one index grid as a PNG with a color ramp
// legend at the bottom. Index values are normalized over [-1, 1]; NaN
// cells render dark gray.
func CreateIndexImage(grid *raster.Grid, indexName, outputImagePath string) (string, error) {
	if !strings.HasSuffix(outputImagePath, ".png") {
		outputImagePath += ".png"
	}

	dc := gg.NewContext(grid.Width, grid.Height+legendHeight)
	dc.SetRGB(0.15, 0.15, 0.15)
	dc.Clear()

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			value := grid.At(x, y)
			if math.IsNaN(value) {
				continue
			}
			r, g, b := valueToColor(normalize(value, -1, 1))
			dc.SetRGB(r, g, b)
			dc.SetPixel(x, y)
		}
	}

	// legend ramp
	for x := 0; x < grid.Width; x++ {
		r, g, b := valueToColor(float64(x) / float64(grid.Width-1))
		dc.SetRGB(r, g, b)
		for y := grid.Height + 4; y < grid.Height+legendHeight-4; y++ {
			dc.SetPixel(x, y)
		}
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(fmt.Sprintf("%s  -1 .. +1", indexName), float64(grid.Width)/2, float64(grid.Height)+float64(legendHeight)/2, 0.5, 0.35)

	if err := dc.SavePNG(outputImagePath); err != nil {
		return "", fmt.Errorf("failed to save index image: %w", err)
	}

	fmt.Println("PNG image created successfully as", outputImagePath)
	return outputImagePath, nil
}
