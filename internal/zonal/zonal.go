package zonal

import (
	"fmt"
	"sync"

	"github.com/austral-geolab/landchange-api-poc/internal/change"
	"github.com/gammazero/workerpool"
	"github.com/paulmach/orb"
	"github.com/schollz/progressbar/v3"
)

// DefaultPixelAreaHa is the area of one 10m x 10m pixel in hectares.
const DefaultPixelAreaHa = 0.01

const aggregateWorkers = 16

// ZoneGeometryError reports a zone that does not overlap the raster
// extent at all. Non-fatal: the zone still gets an all-zero row.
type ZoneGeometryError struct {
	ZoneID string
}

func (e *ZoneGeometryError) Error() string {
	return fmt.Sprintf("zone %s does not intersect the raster extent", e.ZoneID)
}

// ZoneCount holds the raw per-category pixel counts of one zone.
// TotalPixels is the number of raster cells whose center falls inside
// the zone, so the sum of Counts never exceeds it.
type ZoneCount struct {
	ZoneID      string
	Counts      map[int8]int
	TotalPixels int
}

// Aggregate counts change-raster cells per zone, grouped by category
// code. Zones are independent and processed on a worker pool; results
// keep the input zone order. Zones outside the raster extent yield a
// zero row and a ZoneGeometryError in the returned slice, matched by
// index; callers log those, they never abort the run.
func Aggregate(r *change.Raster, zones []Zone) ([]ZoneCount, []error) {
	results := make([]ZoneCount, len(zones))
	zoneErrs := make([]error, len(zones))

	var mu sync.Mutex
	progressBar := progressbar.Default(int64(len(zones)), "Aggregating zones")

	wp := workerpool.New(aggregateWorkers)
	for i, zone := range zones {
		i, zone := i, zone
		wp.Submit(func() {
			count, err := countZone(r, zone)
			mu.Lock()
			results[i] = count
			zoneErrs[i] = err
			progressBar.Add(1)
			mu.Unlock()
		})
	}
	wp.StopWait()
	progressBar.Finish()

	return results, zoneErrs
}

func countZone(r *change.Raster, zone Zone) (ZoneCount, error) {
	count := ZoneCount{
		ZoneID: zone.ID,
		Counts: make(map[int8]int),
	}

	bound := zone.Geometry.Bound()
	minX, minY, maxX, maxY := r.Bounds()
	if bound.Max[0] < minX || bound.Min[0] > maxX || bound.Max[1] < minY || bound.Min[1] > maxY {
		return count, &ZoneGeometryError{ZoneID: zone.ID}
	}

	// restrict the scan to the pixel window of the zone bbox
	x0, y0 := r.GeoToPixel(bound.Min[0], bound.Max[1])
	x1, y1 := r.GeoToPixel(bound.Max[0], bound.Min[1])
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	x0, y0 = clampPixel(x0, r.Width-1), clampPixel(y0, r.Height-1)
	x1, y1 = clampPixel(x1, r.Width-1), clampPixel(y1, r.Height-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			geoX, geoY := r.CellCenter(x, y)
			if !zone.Contains(orb.Point{geoX, geoY}) {
				continue
			}
			count.TotalPixels++
			count.Counts[r.At(x, y)]++
		}
	}

	return count, nil
}

func clampPixel(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
