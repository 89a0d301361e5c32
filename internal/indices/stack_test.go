package indices

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/raster"
)

var testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func gridFrom(width, height int, values ...float64) *raster.Grid {
	g := raster.NewGrid(width, height)
	copy(g.Data, values)
	return g
}

func singleCellBands(blue, green, red, nir, swir1 float64) Bands {
	return Bands{
		Blue:  gridFrom(1, 1, blue),
		Green: gridFrom(1, 1, green),
		Red:   gridFrom(1, 1, red),
		NIR:   gridFrom(1, 1, nir),
		SWIR1: gridFrom(1, 1, swir1),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestComputeStackValues(t *testing.T) {
	b := singleCellBands(0.1, 0.2, 0.3, 0.9, 0.4)

	stack, degenerate, err := ComputeStack(testDate, b, 1)
	if err != nil {
		t.Fatalf("ComputeStack failed: %v", err)
	}
	if degenerate != 0 {
		t.Fatalf("degenerate = %d, want 0", degenerate)
	}

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"NDVI", stack.NDVI.At(0, 0), (0.9 - 0.3) / (0.9 + 0.3)},
		{"NDBI", stack.NDBI.At(0, 0), (0.4 - 0.9) / (0.4 + 0.9)},
		{"NDWI", stack.NDWI.At(0, 0), (0.2 - 0.9) / (0.2 + 0.9)},
		{"BSI", stack.BSI.At(0, 0), ((0.4 + 0.3) - (0.9 + 0.1)) / ((0.4 + 0.3) + (0.9 + 0.1))},
	}
	for _, c := range cases {
		if !almostEqual(c.got, c.want) {
			t.Fatalf("%s = %f, want %f", c.name, c.got, c.want)
		}
		if c.got < -1 || c.got > 1 {
			t.Fatalf("%s = %f outside [-1, 1]", c.name, c.got)
		}
	}
}

func TestComputeStackReflectanceScale(t *testing.T) {
	// digital numbers scaled by 1/10000 must match reflectance input
	dn := singleCellBands(1000, 2000, 3000, 9000, 4000)
	refl := singleCellBands(0.1, 0.2, 0.3, 0.9, 0.4)

	fromDN, _, err := ComputeStack(testDate, dn, DefaultReflectanceScale)
	if err != nil {
		t.Fatalf("ComputeStack(DN) failed: %v", err)
	}
	fromRefl, _, err := ComputeStack(testDate, refl, 1)
	if err != nil {
		t.Fatalf("ComputeStack(reflectance) failed: %v", err)
	}

	if !almostEqual(fromDN.NDVI.At(0, 0), fromRefl.NDVI.At(0, 0)) {
		t.Fatalf("scaled NDVI = %f, want %f", fromDN.NDVI.At(0, 0), fromRefl.NDVI.At(0, 0))
	}
}

func TestComputeStackDegenerateDenominator(t *testing.T) {
	b := singleCellBands(0, 0, 0, 0, 0)

	stack, degenerate, err := ComputeStack(testDate, b, 1)
	if err != nil {
		t.Fatalf("ComputeStack failed: %v", err)
	}
	// all four indices hit a zero raw denominator on the single cell
	if degenerate != 4 {
		t.Fatalf("degenerate = %d, want 4", degenerate)
	}
	if got := stack.NDVI.At(0, 0); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("NDVI on zero denominator = %f, want finite", got)
	}
}

func TestComputeStackNaNPropagation(t *testing.T) {
	b := singleCellBands(0.1, 0.2, math.NaN(), 0.9, 0.4)

	stack, _, err := ComputeStack(testDate, b, 1)
	if err != nil {
		t.Fatalf("ComputeStack failed: %v", err)
	}
	if !math.IsNaN(stack.NDVI.At(0, 0)) {
		t.Fatalf("NDVI with NaN red = %f, want NaN", stack.NDVI.At(0, 0))
	}
	if !math.IsNaN(stack.BSI.At(0, 0)) {
		t.Fatalf("BSI with NaN red = %f, want NaN", stack.BSI.At(0, 0))
	}
	// NDWI does not use red, the cell stays valid
	if math.IsNaN(stack.NDWI.At(0, 0)) {
		t.Fatalf("NDWI with NaN red should stay valid")
	}
}

func TestComputeStackMissingBand(t *testing.T) {
	b := singleCellBands(0.1, 0.2, 0.3, 0.9, 0.4)
	b.SWIR1 = nil

	_, _, err := ComputeStack(testDate, b, 1)
	var missing *MissingBandError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingBandError", err)
	}
	if missing.Band != "swir1" {
		t.Fatalf("missing band = %s, want swir1", missing.Band)
	}
}

func TestComputeStackShapeMismatch(t *testing.T) {
	b := singleCellBands(0.1, 0.2, 0.3, 0.9, 0.4)
	b.NIR = gridFrom(2, 1, 0.9, 0.9)

	if _, _, err := ComputeStack(testDate, b, 1); err == nil {
		t.Fatalf("expected error for mismatched band shapes")
	}
}

func TestStackIndexLookup(t *testing.T) {
	b := singleCellBands(0.1, 0.2, 0.3, 0.9, 0.4)
	stack, _, err := ComputeStack(testDate, b, 1)
	if err != nil {
		t.Fatalf("ComputeStack failed: %v", err)
	}

	grid, err := stack.Index("ndwi")
	if err != nil {
		t.Fatalf("Index(ndwi) failed: %v", err)
	}
	if grid != stack.NDWI {
		t.Fatalf("Index(ndwi) returned the wrong grid")
	}

	if _, err := stack.Index("EVI"); err == nil {
		t.Fatalf("expected error for unknown index")
	}
}
