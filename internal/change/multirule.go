package change

import (
	"math"

	"github.com/austral-geolab/landchange-api-poc/internal/indices"
)

// Thresholds parameterizes the multi-rule classifier. MinChange is the
// NDVI drop/rise counted as significant; observed calibrations range
// 0.1 to 0.15, so it is a parameter rather than a constant.
type Thresholds struct {
	NDVIVegetation float64
	NDBIUrban      float64
	MinChange      float64
	NDWIWater      float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		NDVIVegetation: 0.3,
		NDBIUrban:      0.0,
		MinChange:      0.15,
		NDWIWater:      0.1,
	}
}

// ClassCount is the pixel count and percentage of one class over the
// run population.
type ClassCount struct {
	Class   Class   `csv:"class"`
	Name    string  `csv:"name"`
	Pixels  int     `csv:"pixels"`
	Percent float64 `csv:"percent"`
}

// MultiRuleResult is the output of the multi-rule classifier: the
// 6-class raster and per-class counts, one entry per class in code
// order including classes that never occurred.
type MultiRuleResult struct {
	Raster      *Raster
	TotalPixels int
	Counts      []ClassCount
}

// ClassifyMultiRule classifies the type of change between two index
// stacks by a priority cascade; the first matching rule wins and later
// rules only see unassigned cells:
//
//	1 urbanization:    NDVI_T1 > veg AND NDBI_T2 > urban AND NDVI drop > min
//	2 vegetation loss: NDVI drop > min
//	3 vegetation gain: NDVI rise > min
//	4 new water:       NDWI_T1 < 0 AND NDWI_T2 > water
//	5 water loss:      NDWI_T1 > water AND NDWI_T2 < 0
//
// A cell meeting rules 1 and 2 is always reported as urbanization.
// Cells with NaN NDVI in either date are forced to class 0 and excluded
// from percentage denominators under PercentOverValid.
func ClassifyMultiRule(t1, t2 *indices.Stack, th Thresholds, base PercentBase) (*MultiRuleResult, error) {
	if t1.Width() != t2.Width() || t1.Height() != t2.Height() {
		return nil, &ShapeMismatchError{
			Width1: t1.Width(), Height1: t1.Height(),
			Width2: t2.Width(), Height2: t2.Height(),
		}
	}

	out := newRaster(t1.Width(), t1.Height(), t1.NDVI.GeoTransform, t1.NDVI.Projection)

	counts := make([]int, len(MultiRuleClasses))
	valid := 0
	for i := range out.Codes {
		ndvi1, ndvi2 := t1.NDVI.Data[i], t2.NDVI.Data[i]
		if math.IsNaN(ndvi1) || math.IsNaN(ndvi2) {
			counts[ClassNoChange]++
			continue
		}
		out.Valid[i] = true
		valid++

		ndbi2 := t2.NDBI.Data[i]
		ndwi1, ndwi2 := t1.NDWI.Data[i], t2.NDWI.Data[i]

		ndviDrop := (ndvi1 - ndvi2) > th.MinChange
		ndviRise := (ndvi2 - ndvi1) > th.MinChange

		// NaN comparisons are false, so a missing NDWI or NDBI cell
		// simply never matches the rules that need it.
		var class Class
		switch {
		case ndvi1 > th.NDVIVegetation && ndbi2 > th.NDBIUrban && ndviDrop:
			class = ClassUrbanization
		case ndviDrop:
			class = ClassVegetationLoss
		case ndviRise:
			class = ClassVegetationGain
		case ndwi1 < 0 && ndwi2 > th.NDWIWater:
			class = ClassNewWater
		case ndwi1 > th.NDWIWater && ndwi2 < 0:
			class = ClassWaterLoss
		default:
			class = ClassNoChange
		}
		out.Codes[i] = int8(class)
		counts[class]++
	}

	denominator := valid
	if base == PercentOverAll {
		denominator = len(out.Codes)
	}

	result := &MultiRuleResult{
		Raster:      out,
		TotalPixels: valid,
		Counts:      make([]ClassCount, len(MultiRuleClasses)),
	}
	for i, class := range MultiRuleClasses {
		pixels := counts[class]
		if base == PercentOverValid && class == ClassNoChange {
			// forced-invalid cells carry code 0 but are not part of
			// the valid population
			pixels -= len(out.Codes) - valid
		}
		pct := 0.0
		if denominator > 0 {
			pct = 100 * float64(pixels) / float64(denominator)
		}
		result.Counts[i] = ClassCount{
			Class:   class,
			Name:    class.Name(),
			Pixels:  pixels,
			Percent: pct,
		}
	}

	return result, nil
}
