package change

import (
	"math"
	"testing"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/indices"
	"github.com/austral-geolab/landchange-api-poc/internal/raster"
)

// cell is one pixel's index values for both dates.
type cell struct {
	ndvi1, ndvi2 float64
	ndbi1, ndbi2 float64
	ndwi1, ndwi2 float64
}

func stacksFrom(cells []cell) (*indices.Stack, *indices.Stack) {
	width := len(cells)
	build := func(pick func(c cell) float64) *raster.Grid {
		g := raster.NewGrid(width, 1)
		for i, c := range cells {
			g.Data[i] = pick(c)
		}
		return g
	}
	zero := raster.NewGrid(width, 1)

	t1 := &indices.Stack{
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		NDVI: build(func(c cell) float64 { return c.ndvi1 }),
		NDBI: build(func(c cell) float64 { return c.ndbi1 }),
		NDWI: build(func(c cell) float64 { return c.ndwi1 }),
		BSI:  zero,
	}
	t2 := &indices.Stack{
		Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		NDVI: build(func(c cell) float64 { return c.ndvi2 }),
		NDBI: build(func(c cell) float64 { return c.ndbi2 }),
		NDWI: build(func(c cell) float64 { return c.ndwi2 }),
		BSI:  zero.Clone(),
	}
	return t1, t2
}

func TestClassifyMultiRuleSingleCells(t *testing.T) {
	cases := []struct {
		name string
		cell cell
		want Class
	}{
		{
			// vegetated at T1, built-up at T2, big NDVI drop: rule 1
			// wins even though rule 2 also matches
			name: "urbanization beats vegetation loss",
			cell: cell{ndvi1: 0.4, ndvi2: 0.15, ndbi2: 0.1},
			want: ClassUrbanization,
		},
		{
			name: "vegetation loss without built-up signal",
			cell: cell{ndvi1: 0.4, ndvi2: 0.15, ndbi2: -0.2},
			want: ClassVegetationLoss,
		},
		{
			name: "vegetation loss below vegetation threshold",
			cell: cell{ndvi1: 0.25, ndvi2: 0.05, ndbi2: 0.1},
			want: ClassVegetationLoss,
		},
		{
			name: "vegetation gain",
			cell: cell{ndvi1: 0.1, ndvi2: 0.4},
			want: ClassVegetationGain,
		},
		{
			name: "new water",
			cell: cell{ndvi1: 0.1, ndvi2: 0.05, ndwi1: -0.2, ndwi2: 0.3},
			want: ClassNewWater,
		},
		{
			name: "water loss",
			cell: cell{ndvi1: 0.05, ndvi2: 0.1, ndwi1: 0.3, ndwi2: -0.2},
			want: ClassWaterLoss,
		},
		{
			name: "stable cell",
			cell: cell{ndvi1: 0.4, ndvi2: 0.42, ndwi1: 0.05, ndwi2: 0.05},
			want: ClassNoChange,
		},
		{
			name: "boundary drop is not change",
			cell: cell{ndvi1: 0.45, ndvi2: 0.3},
			want: ClassNoChange,
		},
		{
			name: "missing NDWI never matches water rules",
			cell: cell{ndvi1: 0.1, ndvi2: 0.05, ndwi1: math.NaN(), ndwi2: math.NaN()},
			want: ClassNoChange,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t1, t2 := stacksFrom([]cell{c.cell})
			result, err := ClassifyMultiRule(t1, t2, DefaultThresholds(), PercentOverValid)
			if err != nil {
				t.Fatalf("ClassifyMultiRule failed: %v", err)
			}
			if got := Class(result.Raster.At(0, 0)); got != c.want {
				t.Fatalf("class = %s, want %s", got.Name(), c.want.Name())
			}
		})
	}
}

func TestClassifyMultiRuleCounts(t *testing.T) {
	t1, t2 := stacksFrom([]cell{
		{ndvi1: 0.4, ndvi2: 0.15, ndbi2: 0.1},         // urbanization
		{ndvi1: 0.4, ndvi2: 0.15, ndbi2: -0.2},        // vegetation loss
		{ndvi1: 0.1, ndvi2: 0.4},                      // vegetation gain
		{ndvi1: 0.2, ndvi2: 0.2},                      // no change
		{ndvi1: math.NaN(), ndvi2: 0.4},               // invalid
		{ndvi1: 0.1, ndvi2: 0.05, ndwi1: -0.2, ndwi2: 0.3}, // new water
	})

	result, err := ClassifyMultiRule(t1, t2, DefaultThresholds(), PercentOverValid)
	if err != nil {
		t.Fatalf("ClassifyMultiRule failed: %v", err)
	}

	if result.TotalPixels != 5 {
		t.Fatalf("TotalPixels = %d, want 5 (NaN cell excluded)", result.TotalPixels)
	}
	if len(result.Counts) != len(MultiRuleClasses) {
		t.Fatalf("len(Counts) = %d, want %d", len(result.Counts), len(MultiRuleClasses))
	}

	wantPixels := map[Class]int{
		ClassNoChange:       1,
		ClassUrbanization:   1,
		ClassVegetationLoss: 1,
		ClassVegetationGain: 1,
		ClassNewWater:       1,
		ClassWaterLoss:      0,
	}
	sum := 0
	for _, count := range result.Counts {
		if count.Pixels != wantPixels[count.Class] {
			t.Fatalf("%s pixels = %d, want %d", count.Name, count.Pixels, wantPixels[count.Class])
		}
		sum += count.Pixels
	}
	// under PercentOverValid the counts partition the valid population
	if sum != result.TotalPixels {
		t.Fatalf("sum of counts = %d, want TotalPixels %d", sum, result.TotalPixels)
	}

	if !result.Raster.ValidAt(3, 0) || result.Raster.ValidAt(4, 0) {
		t.Fatalf("validity mask wrong: stable cell must be valid, NaN cell invalid")
	}
}

func TestClassifyMultiRuleIdenticalDates(t *testing.T) {
	t1, _ := stacksFrom([]cell{
		{ndvi1: 0.4, ndvi2: 0.4, ndwi1: 0.05, ndwi2: 0.05},
		{ndvi1: 0.1, ndvi2: 0.1},
	})

	result, err := ClassifyMultiRule(t1, t1, DefaultThresholds(), PercentOverValid)
	if err != nil {
		t.Fatalf("ClassifyMultiRule failed: %v", err)
	}
	for _, count := range result.Counts {
		if count.Class != ClassNoChange && count.Pixels != 0 {
			t.Fatalf("comparing a date with itself produced %s", count.Name)
		}
	}
}

func TestClassifyMultiRuleShapeMismatch(t *testing.T) {
	t1, _ := stacksFrom([]cell{{ndvi1: 0.4, ndvi2: 0.4}})
	_, t2 := stacksFrom([]cell{{ndvi1: 0.4, ndvi2: 0.4}, {ndvi1: 0.1, ndvi2: 0.1}})

	if _, err := ClassifyMultiRule(t1, t2, DefaultThresholds(), PercentOverValid); err == nil {
		t.Fatalf("expected error for mismatched stack shapes")
	}
}
