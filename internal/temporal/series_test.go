package temporal

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/indices"
	"github.com/austral-geolab/landchange-api-poc/internal/raster"
)

func gridFrom(width, height int, values ...float64) *raster.Grid {
	g := raster.NewGrid(width, height)
	copy(g.Data, values)
	return g
}

func stackFor(date time.Time, ndvi, ndbi []float64) *indices.Stack {
	zero := raster.NewGrid(len(ndvi), 1)
	return &indices.Stack{
		Date: date,
		NDVI: gridFrom(len(ndvi), 1, ndvi...),
		NDBI: gridFrom(len(ndbi), 1, ndbi...),
		NDWI: zero,
		BSI:  zero.Clone(),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildSeriesSortedAndSummarized(t *testing.T) {
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	january := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// deliberately out of order
	stacks := []*indices.Stack{
		stackFor(june, []float64{0.2, 0.2, 0.2, 0.2}, []float64{0.1, -0.1, -0.1, -0.1}),
		stackFor(january, []float64{0.4, 0.4, 0.4, 0.4}, []float64{-0.1, -0.1, -0.1, -0.1}),
	}

	rows := BuildSeries(stacks)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if !rows[0].Date.Equal(january) || !rows[1].Date.Equal(june) {
		t.Fatalf("rows not sorted ascending by date: %v, %v", rows[0].Date, rows[1].Date)
	}

	jan := rows[0]
	if !almostEqual(jan.NDVIMean, 0.4) || !almostEqual(jan.NDVIStd, 0) {
		t.Fatalf("january NDVI = %f±%f, want 0.4±0", jan.NDVIMean, jan.NDVIStd)
	}
	// all four cells above the vegetation threshold, none built-up
	if !almostEqual(jan.PctVegetation, 100) || !almostEqual(jan.PctUrban, 0) {
		t.Fatalf("january pct = %f/%f, want 100/0", jan.PctVegetation, jan.PctUrban)
	}

	jun := rows[1]
	if !almostEqual(jun.PctVegetation, 0) {
		t.Fatalf("june PctVegetation = %f, want 0 (0.2 is below the threshold)", jun.PctVegetation)
	}
	if !almostEqual(jun.PctUrban, 25) {
		t.Fatalf("june PctUrban = %f, want 25", jun.PctUrban)
	}
}

func TestBuildSeriesIgnoresNaNCells(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	stack := stackFor(date, []float64{0.4, math.NaN(), 0.2, math.NaN()}, []float64{0.1, 0.1, -0.1, math.NaN()})

	rows := BuildSeries([]*indices.Stack{stack})
	row := rows[0]

	if !almostEqual(row.NDVIMean, 0.3) {
		t.Fatalf("NDVIMean = %f, want 0.3 over the two valid cells", row.NDVIMean)
	}
	if !almostEqual(row.PctVegetation, 50) {
		t.Fatalf("PctVegetation = %f, want 50", row.PctVegetation)
	}
}

func TestBuildSeriesReproducible(t *testing.T) {
	stacks := []*indices.Stack{
		stackFor(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), []float64{0.1, 0.5}, []float64{0.0, 0.2}),
		stackFor(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), []float64{0.3, 0.3}, []float64{-0.2, 0.1}),
		stackFor(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), []float64{0.6, 0.2}, []float64{0.1, 0.1}),
	}

	first := BuildSeries(stacks)
	second := BuildSeries(stacks)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs over the same stacks disagree")
	}
}
