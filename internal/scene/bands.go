package scene

import (
	"archive/zip"
	"fmt"
	"strings"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/indices"
	"github.com/austral-geolab/landchange-api-poc/internal/raster"
)

// Band file suffixes inside a Sentinel-2 L2A archive. The 10m suffixes
// are tried first, then the unqualified names some products use.
var bandSuffixes = map[string][]string{
	"blue":  {"_B02_10m.jp2", "_B02.jp2"},
	"green": {"_B03_10m.jp2", "_B03.jp2"},
	"red":   {"_B04_10m.jp2", "_B04.jp2"},
	"nir":   {"_B08_10m.jp2", "_B08.jp2"},
	"swir1": {"_B11_20m.jp2", "_B11.jp2"},
}

// findBandInZip locates a band file inside the product zip and returns
// a GDAL /vsizip/ path for it, without extracting the archive.
func findBandInZip(zipPath string, suffixes []string) (string, bool) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", false
	}
	defer reader.Close()

	for _, suffix := range suffixes {
		for _, file := range reader.File {
			if !strings.Contains(file.Name, "IMG_DATA") {
				continue
			}
			if strings.HasSuffix(file.Name, suffix) {
				return fmt.Sprintf("/vsizip/%s/%s", zipPath, file.Name), true
			}
		}
	}
	return "", false
}

// LoadBands reads the five required bands of one product zip onto the
// 10m reference grid. The 20m SWIR1 band is resampled bilinearly to
// the reference shape. Band values stay in digital numbers; the index
// calculator applies the reflectance scale.
func LoadBands(zipPath string) (indices.Bands, error) {
	var bands indices.Bands

	paths := make(map[string]string)
	for name, suffixes := range bandSuffixes {
		path, ok := findBandInZip(zipPath, suffixes)
		if !ok {
			return bands, &indices.MissingBandError{Band: name, Scene: zipPath}
		}
		paths[name] = path
	}

	grids := make(map[string]*raster.Grid)
	for name, path := range paths {
		grid, err := ReadGrid(path, 0)
		if err != nil {
			return bands, fmt.Errorf("failed to read band %s: %w", name, err)
		}
		grids[name] = grid
	}

	reference := grids["blue"]
	grids["swir1"] = raster.ResampleBilinear(grids["swir1"], reference.Width, reference.Height)

	bands = indices.Bands{
		Blue:  grids["blue"],
		Green: grids["green"],
		Red:   grids["red"],
		NIR:   grids["nir"],
		SWIR1: grids["swir1"],
	}
	return bands, nil
}

// SceneDate extracts the acquisition date from a product name like
// S2A_MSIL2A_20240115T143751_...
func SceneDate(name string) (time.Time, error) {
	parts := strings.Split(name, "_")
	if len(parts) < 3 || len(parts[2]) < 8 {
		return time.Time{}, fmt.Errorf("cannot extract date from scene name %s", name)
	}
	date, err := time.Parse("20060102", parts[2][:8])
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date from scene name %s: %w", name, err)
	}
	return date, nil
}
