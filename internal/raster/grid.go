package raster

import (
	"math"
)

// Grid is a single-band raster in row-major order together with the
// georeferencing required for a lossless round-trip to a file. Cells
// that were nodata in the source are stored as NaN.
type Grid struct {
	Data         []float64
	Width        int
	Height       int
	GeoTransform [6]float64
	Projection   string
	NoData       float64
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Data:   make([]float64, width*height),
		Width:  width,
		Height: height,
		NoData: math.NaN(),
	}
}

func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

func (g *Grid) Set(x, y int, value float64) {
	g.Data[y*g.Width+x] = value
}

func (g *Grid) SameShape(other *Grid) bool {
	return g.Width == other.Width && g.Height == other.Height
}

// Clone copies the grid data and metadata. Derived products are never
// written back into their inputs.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.Data))
	copy(data, g.Data)
	return &Grid{
		Data:         data,
		Width:        g.Width,
		Height:       g.Height,
		GeoTransform: g.GeoTransform,
		Projection:   g.Projection,
		NoData:       g.NoData,
	}
}

func (g *Grid) ValidCount() int {
	count := 0
	for _, v := range g.Data {
		if !math.IsNaN(v) {
			count++
		}
	}
	return count
}

func (g *Grid) ValidMean() float64 {
	sum, count := 0.0, 0
	for _, v := range g.Data {
		if !math.IsNaN(v) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// ValidStd is the population standard deviation over non-NaN cells.
func (g *Grid) ValidStd() float64 {
	mean := g.ValidMean()
	if math.IsNaN(mean) {
		return math.NaN()
	}
	sum, count := 0.0, 0
	for _, v := range g.Data {
		if !math.IsNaN(v) {
			sum += (v - mean) * (v - mean)
			count++
		}
	}
	return math.Sqrt(sum / float64(count))
}

// PercentAbove returns the percentage of valid cells strictly greater
// than threshold, over the valid-cell population.
func (g *Grid) PercentAbove(threshold float64) float64 {
	above, count := 0, 0
	for _, v := range g.Data {
		if math.IsNaN(v) {
			continue
		}
		count++
		if v > threshold {
			above++
		}
	}
	if count == 0 {
		return 0
	}
	return 100 * float64(above) / float64(count)
}

// CellCenter returns the geographic coordinates of the center of pixel
// (x, y) under the grid's affine transform.
func (g *Grid) CellCenter(x, y int) (float64, float64) {
	gt := g.GeoTransform
	geoX := gt[0] + gt[1]*(float64(x)+0.5) + gt[2]*(float64(y)+0.5)
	geoY := gt[3] + gt[4]*(float64(x)+0.5) + gt[5]*(float64(y)+0.5)
	return geoX, geoY
}

// GeoToPixel inverts the affine transform and returns the pixel
// containing the given geographic coordinate. The result may lie
// outside the grid; callers clamp as needed.
func (g *Grid) GeoToPixel(geoX, geoY float64) (int, int) {
	gt := g.GeoTransform
	det := gt[1]*gt[5] - gt[2]*gt[4]
	dx := geoX - gt[0]
	dy := geoY - gt[3]
	px := (dx*gt[5] - dy*gt[2]) / det
	py := (dy*gt[1] - dx*gt[4]) / det
	return int(math.Floor(px)), int(math.Floor(py))
}

// Bounds returns the geographic extent of the grid as minX, minY,
// maxX, maxY.
func (g *Grid) Bounds() (float64, float64, float64, float64) {
	gt := g.GeoTransform
	corners := [4][2]float64{
		{gt[0], gt[3]},
		{gt[0] + gt[1]*float64(g.Width), gt[3] + gt[4]*float64(g.Width)},
		{gt[0] + gt[2]*float64(g.Height), gt[3] + gt[5]*float64(g.Height)},
		{gt[0] + gt[1]*float64(g.Width) + gt[2]*float64(g.Height), gt[3] + gt[4]*float64(g.Width) + gt[5]*float64(g.Height)},
	}
	minX, minY := corners[0][0], corners[0][1]
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX = math.Min(minX, c[0])
		maxX = math.Max(maxX, c[0])
		minY = math.Min(minY, c[1])
		maxY = math.Max(maxY, c[1])
	}
	return minX, minY, maxX, maxY
}
