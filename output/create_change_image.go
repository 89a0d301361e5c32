package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/austral-geolab/landchange-api-poc/internal/change"
	"github.com/austral-geolab/landchange-api-poc/internal/properties"
)

// CreateChangeImage renders the multi-rule change raster as a PNG
// using the class legend from properties.
func CreateChangeImage(r *change.Raster, outputImagePath string) (string, error) {
	if !strings.HasSuffix(outputImagePath, ".png") {
		outputImagePath += ".png"
	}

	newImage := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			name := change.Class(r.At(x, y)).Name()
			clr := properties.ChangeColorMap[name]
			newImage.Set(x, y, color.RGBA{R: clr.R, G: clr.G, B: clr.B, A: clr.A})
		}
	}

	if err := savePNG(newImage, outputImagePath); err != nil {
		return "", err
	}

	fmt.Println("PNG image created successfully as", outputImagePath)
	return outputImagePath, nil
}

// CreateDiffImage renders the signed differencing raster as a PNG.
func CreateDiffImage(r *change.Raster, outputImagePath string) (string, error) {
	if !strings.HasSuffix(outputImagePath, ".png") {
		outputImagePath += ".png"
	}

	newImage := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			clr := properties.DiffColorMap[r.At(x, y)]
			newImage.Set(x, y, color.RGBA{R: clr.R, G: clr.G, B: clr.B, A: clr.A})
		}
	}

	if err := savePNG(newImage, outputImagePath); err != nil {
		return "", err
	}

	fmt.Println("PNG image created successfully as", outputImagePath)
	return outputImagePath, nil
}

func savePNG(img image.Image, path string) error {
	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	defer outputFile.Close()

	if err := png.Encode(outputFile, img); err != nil {
		return fmt.Errorf("failed to encode PNG file: %w", err)
	}
	return nil
}
