package change

import (
	"fmt"
	"math"
)

// Class is a per-pixel change category produced by the multi-rule
// classifier. Lower rule numbers win when several predicates match.
type Class uint8

const (
	ClassNoChange       Class = 0
	ClassUrbanization   Class = 1
	ClassVegetationLoss Class = 2
	ClassVegetationGain Class = 3
	ClassNewWater       Class = 4
	ClassWaterLoss      Class = 5
)

// MultiRuleClasses lists every class the multi-rule classifier can
// emit, in code order. Downstream tables zero-fill from this list so
// the schema is stable even when a class never occurs.
var MultiRuleClasses = []Class{
	ClassNoChange,
	ClassUrbanization,
	ClassVegetationLoss,
	ClassVegetationGain,
	ClassNewWater,
	ClassWaterLoss,
}

func (c Class) Name() string {
	switch c {
	case ClassNoChange:
		return "no_change"
	case ClassUrbanization:
		return "urbanization"
	case ClassVegetationLoss:
		return "vegetation_loss"
	case ClassVegetationGain:
		return "vegetation_gain"
	case ClassNewWater:
		return "new_water"
	case ClassWaterLoss:
		return "water_loss"
	}
	return fmt.Sprintf("class_%d", uint8(c))
}

// Differencing classifier codes.
const (
	DiffLoss     int8 = -1
	DiffNoChange int8 = 0
	DiffGain     int8 = 1
)

// DiffCodes lists the differencing codes in raster value order.
var DiffCodes = []int8{DiffLoss, DiffNoChange, DiffGain}

func DiffCodeName(code int8) string {
	switch code {
	case DiffLoss:
		return "loss"
	case DiffGain:
		return "gain"
	default:
		return "no_change"
	}
}

// Raster is the categorical output of a change classifier: one small
// integer code per cell plus a validity mask. Cells invalid in either
// input date carry code 0 and Valid=false. Immutable once produced.
type Raster struct {
	Codes        []int8
	Valid        []bool
	Width        int
	Height       int
	GeoTransform [6]float64
	Projection   string
}

func newRaster(width, height int, geoTransform [6]float64, projection string) *Raster {
	return &Raster{
		Codes:        make([]int8, width*height),
		Valid:        make([]bool, width*height),
		Width:        width,
		Height:       height,
		GeoTransform: geoTransform,
		Projection:   projection,
	}
}

func (r *Raster) At(x, y int) int8 {
	return r.Codes[y*r.Width+x]
}

func (r *Raster) ValidAt(x, y int) bool {
	return r.Valid[y*r.Width+x]
}

// CellCenter returns the geographic coordinates of the center of pixel
// (x, y).
func (r *Raster) CellCenter(x, y int) (float64, float64) {
	gt := r.GeoTransform
	geoX := gt[0] + gt[1]*(float64(x)+0.5) + gt[2]*(float64(y)+0.5)
	geoY := gt[3] + gt[4]*(float64(x)+0.5) + gt[5]*(float64(y)+0.5)
	return geoX, geoY
}

// GeoToPixel returns the pixel containing the given geographic
// coordinate, possibly outside the raster.
func (r *Raster) GeoToPixel(geoX, geoY float64) (int, int) {
	gt := r.GeoTransform
	det := gt[1]*gt[5] - gt[2]*gt[4]
	dx := geoX - gt[0]
	dy := geoY - gt[3]
	px := (dx*gt[5] - dy*gt[2]) / det
	py := (dy*gt[1] - dx*gt[4]) / det
	return int(math.Floor(px)), int(math.Floor(py))
}

// Bounds returns the geographic extent as minX, minY, maxX, maxY.
func (r *Raster) Bounds() (float64, float64, float64, float64) {
	gt := r.GeoTransform
	xs := []float64{
		gt[0],
		gt[0] + gt[1]*float64(r.Width),
		gt[0] + gt[2]*float64(r.Height),
		gt[0] + gt[1]*float64(r.Width) + gt[2]*float64(r.Height),
	}
	ys := []float64{
		gt[3],
		gt[3] + gt[4]*float64(r.Width),
		gt[3] + gt[5]*float64(r.Height),
		gt[3] + gt[4]*float64(r.Width) + gt[5]*float64(r.Height),
	}
	minX, maxX := xs[0], xs[0]
	for _, x := range xs[1:] {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}
	minY, maxY := ys[0], ys[0]
	for _, y := range ys[1:] {
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return minX, minY, maxX, maxY
}

// ShapeMismatchError reports two dates whose grids cannot be compared
// cell-wise. Fatal for the classifier invocation, not for the batch.
type ShapeMismatchError struct {
	Width1, Height1 int
	Width2, Height2 int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("grid shapes differ between dates: %dx%d vs %dx%d",
		e.Width1, e.Height1, e.Width2, e.Height2)
}

// PercentBase selects the denominator for percentage statistics. The
// source material is inconsistent about whether nodata-forced class-0
// cells count, so the policy is explicit.
type PercentBase int

const (
	// PercentOverValid excludes nodata cells from denominators.
	PercentOverValid PercentBase = iota
	// PercentOverAll counts nodata cells as no-change.
	PercentOverAll
)
