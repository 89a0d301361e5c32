package temporal

import (
	"sort"
	"sync"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/indices"
	"github.com/gammazero/workerpool"
)

// Class thresholds for the per-date percentage columns: NDVI above
// VegetationThreshold reads as active vegetation, NDBI above
// UrbanThreshold as built-up surface.
const (
	VegetationThreshold = 0.3
	UrbanThreshold      = 0.0
)

const seriesWorkers = 8

// SeriesRow is the per-date summary of one index stack. Rows are
// produced once per run and never mutated afterward.
type SeriesRow struct {
	Date          time.Time `csv:"date"`
	NDVIMean      float64   `csv:"ndvi_mean"`
	NDVIStd       float64   `csv:"ndvi_std"`
	NDBIMean      float64   `csv:"ndbi_mean"`
	NDBIStd       float64   `csv:"ndbi_std"`
	PctVegetation float64   `csv:"pct_veg"`
	PctUrban      float64   `csv:"pct_urb"`
}

// BuildSeries computes the summary row of every stack and returns the
// rows sorted ascending by date. Dates are independent, so they are
// processed on a worker pool; no cross-date smoothing happens here.
func BuildSeries(stacks []*indices.Stack) []SeriesRow {
	rows := make([]SeriesRow, len(stacks))

	var wg sync.WaitGroup
	wp := workerpool.New(seriesWorkers)
	for i, stack := range stacks {
		i, stack := i, stack
		wg.Add(1)
		wp.Submit(func() {
			defer wg.Done()
			rows[i] = buildRow(stack)
		})
	}
	wp.StopWait()
	wg.Wait()

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows
}

func buildRow(stack *indices.Stack) SeriesRow {
	return SeriesRow{
		Date:          stack.Date,
		NDVIMean:      stack.NDVI.ValidMean(),
		NDVIStd:       stack.NDVI.ValidStd(),
		NDBIMean:      stack.NDBI.ValidMean(),
		NDBIStd:       stack.NDBI.ValidStd(),
		PctVegetation: stack.NDVI.PercentAbove(VegetationThreshold),
		PctUrban:      stack.NDBI.PercentAbove(UrbanThreshold),
	}
}
