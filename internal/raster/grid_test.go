package raster

import (
	"math"
	"testing"
)

func gridFrom(width, height int, values ...float64) *Grid {
	g := NewGrid(width, height)
	copy(g.Data, values)
	return g
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestValidStatsIgnoreNaN(t *testing.T) {
	g := gridFrom(2, 2, 1, 2, 3, math.NaN())

	if got := g.ValidCount(); got != 3 {
		t.Fatalf("ValidCount = %d, want 3", got)
	}
	if got := g.ValidMean(); !almostEqual(got, 2) {
		t.Fatalf("ValidMean = %f, want 2", got)
	}
	want := math.Sqrt(2.0 / 3.0)
	if got := g.ValidStd(); !almostEqual(got, want) {
		t.Fatalf("ValidStd = %f, want %f", got, want)
	}
}

func TestValidMeanAllNaN(t *testing.T) {
	g := gridFrom(1, 2, math.NaN(), math.NaN())
	if got := g.ValidMean(); !math.IsNaN(got) {
		t.Fatalf("ValidMean over empty population = %f, want NaN", got)
	}
}

func TestPercentAbove(t *testing.T) {
	g := gridFrom(2, 2, 0.1, 0.4, 0.5, math.NaN())

	// strictly greater, over the 3 valid cells
	if got := g.PercentAbove(0.3); !almostEqual(got, 100.0*2.0/3.0) {
		t.Fatalf("PercentAbove(0.3) = %f, want %f", got, 100.0*2.0/3.0)
	}
	if got := g.PercentAbove(0.4); !almostEqual(got, 100.0/3.0) {
		t.Fatalf("PercentAbove(0.4) = %f, want %f (boundary cell excluded)", got, 100.0/3.0)
	}
}

func TestCellCenterGeoToPixelRoundTrip(t *testing.T) {
	g := NewGrid(4, 3)
	g.GeoTransform = [6]float64{100, 10, 0, 200, 0, -10}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			geoX, geoY := g.CellCenter(x, y)
			px, py := g.GeoToPixel(geoX, geoY)
			if px != x || py != y {
				t.Fatalf("round trip of (%d,%d) came back as (%d,%d)", x, y, px, py)
			}
		}
	}
}

func TestBounds(t *testing.T) {
	g := NewGrid(2, 2)
	g.GeoTransform = [6]float64{100, 10, 0, 200, 0, -10}

	minX, minY, maxX, maxY := g.Bounds()
	if minX != 100 || maxX != 120 || minY != 180 || maxY != 200 {
		t.Fatalf("Bounds = (%f,%f,%f,%f), want (100,180,120,200)", minX, minY, maxX, maxY)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := gridFrom(2, 1, 1, 2)
	c := g.Clone()
	c.Set(0, 0, 99)
	if g.At(0, 0) != 1 {
		t.Fatalf("mutating the clone changed the source grid")
	}
}
