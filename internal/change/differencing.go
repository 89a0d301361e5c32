package change

import (
	"math"

	"github.com/austral-geolab/landchange-api-poc/internal/raster"
)

// DefaultDiffThreshold is the minimum absolute NDVI difference counted
// as significant change by the differencing classifier.
const DefaultDiffThreshold = 0.15

// DiffStats summarizes one differencing run over the valid-pixel
// population.
type DiffStats struct {
	Threshold      float64 `csv:"threshold"`
	TotalPixels    int     `csv:"total_pixels"`
	LossPixels     int     `csv:"loss_pixels"`
	GainPixels     int     `csv:"gain_pixels"`
	NoChangePixels int     `csv:"no_change_pixels"`
	LossPct        float64 `csv:"loss_pct"`
	GainPct        float64 `csv:"gain_pct"`
	NoChangePct    float64 `csv:"no_change_pct"`
	DiffMean       float64 `csv:"diff_mean"`
	DiffStd        float64 `csv:"diff_std"`
}

// DiffResult is the output of the differencing classifier: the signed
// 3-class raster, the continuous difference grid and the run summary.
type DiffResult struct {
	Raster *Raster
	Diff   *raster.Grid
	Stats  DiffStats
}

// ClassifyDifference detects vegetation change from NDVI alone:
// diff = ndviT2 - ndviT1, classified loss below -threshold, gain above
// +threshold, strict inequalities. Cells NaN in either date are forced
// to no-change and excluded from percentage denominators under
// PercentOverValid.
func ClassifyDifference(ndviT1, ndviT2 *raster.Grid, threshold float64, base PercentBase) (*DiffResult, error) {
	if !ndviT1.SameShape(ndviT2) {
		return nil, &ShapeMismatchError{
			Width1: ndviT1.Width, Height1: ndviT1.Height,
			Width2: ndviT2.Width, Height2: ndviT2.Height,
		}
	}

	diff := raster.NewGrid(ndviT1.Width, ndviT1.Height)
	diff.GeoTransform = ndviT1.GeoTransform
	diff.Projection = ndviT1.Projection

	out := newRaster(ndviT1.Width, ndviT1.Height, ndviT1.GeoTransform, ndviT1.Projection)

	valid := 0
	loss, gain := 0, 0
	for i := range diff.Data {
		d := ndviT2.Data[i] - ndviT1.Data[i]
		diff.Data[i] = d
		if math.IsNaN(d) {
			// forced to no-change, Valid stays false
			continue
		}
		out.Valid[i] = true
		valid++
		switch {
		case d < -threshold:
			out.Codes[i] = DiffLoss
			loss++
		case d > threshold:
			out.Codes[i] = DiffGain
			gain++
		}
	}

	denominator := valid
	if base == PercentOverAll {
		denominator = len(diff.Data)
	}

	// under PercentOverAll nodata cells count as no-change, so the
	// three percentages partition the whole raster
	stats := DiffStats{
		Threshold:      threshold,
		TotalPixels:    valid,
		LossPixels:     loss,
		GainPixels:     gain,
		NoChangePixels: denominator - loss - gain,
		DiffMean:       diff.ValidMean(),
		DiffStd:        diff.ValidStd(),
	}
	if denominator > 0 {
		stats.LossPct = 100 * float64(loss) / float64(denominator)
		stats.GainPct = 100 * float64(gain) / float64(denominator)
		stats.NoChangePct = 100 * float64(stats.NoChangePixels) / float64(denominator)
	}

	return &DiffResult{Raster: out, Diff: diff, Stats: stats}, nil
}
