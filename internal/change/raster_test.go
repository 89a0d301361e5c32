package change

import "testing"

func TestClassNames(t *testing.T) {
	want := map[Class]string{
		ClassNoChange:       "no_change",
		ClassUrbanization:   "urbanization",
		ClassVegetationLoss: "vegetation_loss",
		ClassVegetationGain: "vegetation_gain",
		ClassNewWater:       "new_water",
		ClassWaterLoss:      "water_loss",
	}
	for class, name := range want {
		if got := class.Name(); got != name {
			t.Fatalf("Class(%d).Name() = %s, want %s", class, got, name)
		}
	}
	if got := Class(9).Name(); got != "class_9" {
		t.Fatalf("unknown class name = %s, want class_9", got)
	}
}

func TestDiffCodeNames(t *testing.T) {
	want := map[int8]string{
		DiffLoss:     "loss",
		DiffNoChange: "no_change",
		DiffGain:     "gain",
	}
	for _, code := range DiffCodes {
		if got := DiffCodeName(code); got != want[code] {
			t.Fatalf("DiffCodeName(%d) = %s, want %s", code, got, want[code])
		}
	}
}

func TestRasterBoundsAndRoundTrip(t *testing.T) {
	r := &Raster{
		Width:        3,
		Height:       2,
		GeoTransform: [6]float64{100, 10, 0, 200, 0, -10},
		Codes:        make([]int8, 6),
		Valid:        make([]bool, 6),
	}

	minX, minY, maxX, maxY := r.Bounds()
	if minX != 100 || maxX != 130 || minY != 180 || maxY != 200 {
		t.Fatalf("Bounds = (%f,%f,%f,%f), want (100,180,130,200)", minX, minY, maxX, maxY)
	}

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			geoX, geoY := r.CellCenter(x, y)
			px, py := r.GeoToPixel(geoX, geoY)
			if px != x || py != y {
				t.Fatalf("round trip of (%d,%d) came back as (%d,%d)", x, y, px, py)
			}
		}
	}
}
