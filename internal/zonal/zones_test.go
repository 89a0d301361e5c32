package zonal

import (
	"os"
	"path/filepath"
	"testing"
)

const zonesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "centro"},
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
    },
    {
      "type": "Feature",
      "id": "f2",
      "properties": {},
      "geometry": {"type": "Polygon", "coordinates": [[[1,0],[2,0],[2,1],[1,1],[1,0]]]}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "Polygon", "coordinates": [[[2,0],[3,0],[3,1],[2,1],[2,0]]]}
    }
  ]
}`

func TestLoadZonesIDFallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.geojson")
	if err := os.WriteFile(path, []byte(zonesGeoJSON), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	zones, err := LoadZones(path, "name")
	if err != nil {
		t.Fatalf("LoadZones failed: %v", err)
	}
	if len(zones) != 3 {
		t.Fatalf("len(zones) = %d, want 3", len(zones))
	}

	wantIDs := []string{"centro", "f2", "Z2"}
	for i, want := range wantIDs {
		if zones[i].ID != want {
			t.Fatalf("zones[%d].ID = %s, want %s", i, zones[i].ID, want)
		}
	}
}

func TestLoadZonesMissingFile(t *testing.T) {
	if _, err := LoadZones(filepath.Join(t.TempDir(), "missing.geojson"), "id"); err == nil {
		t.Fatalf("expected error for missing zones file")
	}
}

func TestLoadZonesEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.geojson")
	if err := os.WriteFile(path, []byte(`{"type":"FeatureCollection","features":[]}`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := LoadZones(path, "id"); err == nil {
		t.Fatalf("expected error for empty feature collection")
	}
}
