package zonal

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Zone is one polygon of the analysis partition, identified uniquely
// within its layer. The geometry must share the raster's CRS.
type Zone struct {
	ID       string
	Geometry orb.Geometry
}

// Contains reports whether the zone covers the given point. Only
// polygonal geometries can contain raster cells.
func (z Zone) Contains(pt orb.Point) bool {
	switch geom := z.Geometry.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, pt)
	}
	return false
}

// LoadZones reads zone polygons from a GeoJSON FeatureCollection. The
// zone identifier is taken from the idProperty feature property,
// falling back to the feature ID and finally to the feature position.
func LoadZones(path, idProperty string) ([]Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zones file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse zones geojson: %w", err)
	}

	zones := make([]Zone, 0, len(fc.Features))
	for i, feature := range fc.Features {
		id := ""
		if v, ok := feature.Properties[idProperty]; ok {
			id = fmt.Sprintf("%v", v)
		} else if feature.ID != nil {
			id = fmt.Sprintf("%v", feature.ID)
		} else {
			id = fmt.Sprintf("Z%d", i)
		}
		zones = append(zones, Zone{ID: id, Geometry: feature.Geometry})
	}

	if len(zones) == 0 {
		return nil, fmt.Errorf("no zone features found in %s", path)
	}
	return zones, nil
}
