package scene

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProductZip(t *testing.T, entries []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "S2A_MSIL2A_20240115T143751_N0510_R096_T19GBQ_20240115T174018.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip fixture: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, entry := range entries {
		if _, err := w.Create(entry); err != nil {
			t.Fatalf("failed to add %s: %v", entry, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finish zip fixture: %v", err)
	}
	return path
}

func TestFindBandInZip(t *testing.T) {
	zipPath := writeProductZip(t, []string{
		"S2A.SAFE/GRANULE/L2A_T19GBQ/IMG_DATA/R10m/T19GBQ_20240115T143751_B04_10m.jp2",
		"S2A.SAFE/GRANULE/L2A_T19GBQ/IMG_DATA/R20m/T19GBQ_20240115T143751_B11_20m.jp2",
		"S2A.SAFE/GRANULE/L2A_T19GBQ/QI_DATA/T19GBQ_20240115T143751_B02_10m.jp2",
	})

	path, ok := findBandInZip(zipPath, bandSuffixes["red"])
	if !ok {
		t.Fatalf("red band not found")
	}
	if !strings.HasPrefix(path, "/vsizip/") || !strings.HasSuffix(path, "_B04_10m.jp2") {
		t.Fatalf("unexpected band path %s", path)
	}

	if _, ok := findBandInZip(zipPath, bandSuffixes["nir"]); ok {
		t.Fatalf("nir band should be missing from the fixture")
	}

	// files outside IMG_DATA never match
	if _, ok := findBandInZip(zipPath, bandSuffixes["blue"]); ok {
		t.Fatalf("blue band outside IMG_DATA should not match")
	}
}

func TestSceneDate(t *testing.T) {
	date, err := SceneDate("S2A_MSIL2A_20240115T143751_N0510_R096_T19GBQ_20240115T174018.zip")
	if err != nil {
		t.Fatalf("SceneDate failed: %v", err)
	}
	if date.Year() != 2024 || date.Month() != 1 || date.Day() != 15 {
		t.Fatalf("SceneDate = %v, want 2024-01-15", date)
	}

	if _, err := SceneDate("notaproduct.zip"); err == nil {
		t.Fatalf("expected error for malformed product name")
	}
}
