package indices

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/raster"
)

// Epsilon is added to every normalized-difference denominator so the
// index math is total: a zero denominator yields a finite value instead
// of an error or Inf.
const Epsilon = 1e-10

// DefaultReflectanceScale converts Sentinel-2 L2A digital numbers
// (0-10000) to reflectance. Use 1 for inputs already in reflectance.
const DefaultReflectanceScale = 1.0 / 10000.0

// Bands holds the raw reflectance grids of one scene, all on the same
// reference grid. SWIR2 is optional and unused by the current indices.
type Bands struct {
	Blue  *raster.Grid
	Green *raster.Grid
	Red   *raster.Grid
	NIR   *raster.Grid
	SWIR1 *raster.Grid
	SWIR2 *raster.Grid
}

// Stack is the four co-registered spectral index grids of one scene
// date. Derived, never edited in place.
type Stack struct {
	Date time.Time
	NDVI *raster.Grid
	NDBI *raster.Grid
	NDWI *raster.Grid
	BSI  *raster.Grid
}

func (s *Stack) Width() int  { return s.NDVI.Width }
func (s *Stack) Height() int { return s.NDVI.Height }

// IndexNames lists the indices every stack carries, in band order.
var IndexNames = []string{"NDVI", "NDBI", "NDWI", "BSI"}

// Index returns the grid for the named index, case-insensitive.
func (s *Stack) Index(name string) (*raster.Grid, error) {
	switch strings.ToUpper(name) {
	case "NDVI":
		return s.NDVI, nil
	case "NDBI":
		return s.NDBI, nil
	case "NDWI":
		return s.NDWI, nil
	case "BSI":
		return s.BSI, nil
	}
	return nil, fmt.Errorf("unknown index %s, expected one of %v", name, IndexNames)
}

// MissingBandError reports a required spectral band that could not be
// located or read. Fatal for the scene, not for the batch.
type MissingBandError struct {
	Band  string
	Scene string
}

func (e *MissingBandError) Error() string {
	return fmt.Sprintf("missing required band %s in scene %s", e.Band, e.Scene)
}

// ComputeStack derives NDVI, NDBI, NDWI and BSI from the raw bands.
// The second return value counts cells whose denominator was exactly
// zero before the Epsilon guard; callers may log it, it is never an
// error. Cells that are NaN in any source band stay NaN in the derived
// index.
func ComputeStack(date time.Time, b Bands, scale float64) (*Stack, int, error) {
	required := map[string]*raster.Grid{
		"blue":  b.Blue,
		"green": b.Green,
		"red":   b.Red,
		"nir":   b.NIR,
		"swir1": b.SWIR1,
	}
	for name, grid := range required {
		if grid == nil {
			return nil, 0, &MissingBandError{Band: name}
		}
	}
	for name, grid := range required {
		if !grid.SameShape(b.Blue) {
			return nil, 0, fmt.Errorf("band %s has shape %dx%d, want %dx%d: align bands before computing indices",
				name, grid.Width, grid.Height, b.Blue.Width, b.Blue.Height)
		}
	}

	blue := scaled(b.Blue, scale)
	green := scaled(b.Green, scale)
	red := scaled(b.Red, scale)
	nir := scaled(b.NIR, scale)
	swir1 := scaled(b.SWIR1, scale)

	degenerate := 0

	ndvi, d := normalizedDifference(nir, red)
	degenerate += d
	ndbi, d := normalizedDifference(swir1, nir)
	degenerate += d
	ndwi, d := normalizedDifference(green, nir)
	degenerate += d
	bsi, d := bareSoilIndex(swir1, red, nir, blue)
	degenerate += d

	stack := &Stack{
		Date: date,
		NDVI: ndvi,
		NDBI: ndbi,
		NDWI: ndwi,
		BSI:  bsi,
	}
	return stack, degenerate, nil
}

func scaled(g *raster.Grid, scale float64) *raster.Grid {
	if scale == 1 {
		return g
	}
	out := g.Clone()
	for i, v := range out.Data {
		out.Data[i] = v * scale
	}
	return out
}

// normalizedDifference computes (a-b)/(a+b+Epsilon) cell-wise and
// counts cells whose raw denominator a+b was exactly zero.
func normalizedDifference(a, b *raster.Grid) (*raster.Grid, int) {
	out := derivedLike(a)
	degenerate := 0
	for i := range out.Data {
		av, bv := a.Data[i], b.Data[i]
		if math.IsNaN(av) || math.IsNaN(bv) {
			out.Data[i] = math.NaN()
			continue
		}
		if av+bv == 0 {
			degenerate++
		}
		out.Data[i] = (av - bv) / (av + bv + Epsilon)
	}
	return out, degenerate
}

// bareSoilIndex computes ((swir1+red)-(nir+blue)) over
// ((swir1+red)+(nir+blue)+Epsilon) cell-wise.
func bareSoilIndex(swir1, red, nir, blue *raster.Grid) (*raster.Grid, int) {
	out := derivedLike(swir1)
	degenerate := 0
	for i := range out.Data {
		sv, rv, nv, bv := swir1.Data[i], red.Data[i], nir.Data[i], blue.Data[i]
		if math.IsNaN(sv) || math.IsNaN(rv) || math.IsNaN(nv) || math.IsNaN(bv) {
			out.Data[i] = math.NaN()
			continue
		}
		numerator := (sv + rv) - (nv + bv)
		denominator := (sv + rv) + (nv + bv)
		if denominator == 0 {
			degenerate++
		}
		out.Data[i] = numerator / (denominator + Epsilon)
	}
	return out, degenerate
}

func derivedLike(g *raster.Grid) *raster.Grid {
	out := raster.NewGrid(g.Width, g.Height)
	out.GeoTransform = g.GeoTransform
	out.Projection = g.Projection
	return out
}
