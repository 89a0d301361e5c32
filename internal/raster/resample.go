package raster

import (
	"math"
)

// ResampleBilinear resamples src onto a targetWidth x targetHeight grid
// using bilinear interpolation of the four surrounding source cells.
// Used to bring 20m bands onto the 10m reference shape before index
// math. When the shapes already match the source is returned untouched.
// A cell is NaN when any of its source neighbors is NaN.
func ResampleBilinear(src *Grid, targetWidth, targetHeight int) *Grid {
	if src.Width == targetWidth && src.Height == targetHeight {
		return src
	}

	dst := NewGrid(targetWidth, targetHeight)
	dst.Projection = src.Projection
	dst.NoData = src.NoData

	scaleX := float64(src.Width) / float64(targetWidth)
	scaleY := float64(src.Height) / float64(targetHeight)

	gt := src.GeoTransform
	dst.GeoTransform = [6]float64{
		gt[0], gt[1] * scaleX, gt[2] * scaleY,
		gt[3], gt[4] * scaleX, gt[5] * scaleY,
	}

	for y := 0; y < targetHeight; y++ {
		srcY := (float64(y)+0.5)*scaleY - 0.5
		y0 := clamp(int(math.Floor(srcY)), 0, src.Height-1)
		y1 := clamp(y0+1, 0, src.Height-1)
		fy := srcY - math.Floor(srcY)
		if srcY < 0 {
			fy = 0
		}

		for x := 0; x < targetWidth; x++ {
			srcX := (float64(x)+0.5)*scaleX - 0.5
			x0 := clamp(int(math.Floor(srcX)), 0, src.Width-1)
			x1 := clamp(x0+1, 0, src.Width-1)
			fx := srcX - math.Floor(srcX)
			if srcX < 0 {
				fx = 0
			}

			v00 := src.At(x0, y0)
			v10 := src.At(x1, y0)
			v01 := src.At(x0, y1)
			v11 := src.At(x1, y1)

			top := v00*(1-fx) + v10*fx
			bottom := v01*(1-fx) + v11*fx
			dst.Set(x, y, top*(1-fy)+bottom*fy)
		}
	}

	return dst
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
