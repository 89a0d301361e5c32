package zonal

import (
	"github.com/austral-geolab/landchange-api-poc/internal/change"
)

// ChangeZoneRow is the fixed-schema zonal statistics row for the
// 6-class multi-rule raster. Every class column is present even when
// no zone contains it. Hectares are count times the pixel area, exact.
type ChangeZoneRow struct {
	Zone             string  `csv:"zone"`
	TotalPixels      int     `csv:"total_pixels"`
	NoChange         int     `csv:"no_change"`
	Urbanization     int     `csv:"urbanization"`
	VegetationLoss   int     `csv:"vegetation_loss"`
	VegetationGain   int     `csv:"vegetation_gain"`
	NewWater         int     `csv:"new_water"`
	WaterLoss        int     `csv:"water_loss"`
	NoChangeHa       float64 `csv:"no_change_ha"`
	UrbanizationHa   float64 `csv:"urbanization_ha"`
	VegetationLossHa float64 `csv:"vegetation_loss_ha"`
	VegetationGainHa float64 `csv:"vegetation_gain_ha"`
	NewWaterHa       float64 `csv:"new_water_ha"`
	WaterLossHa      float64 `csv:"water_loss_ha"`
}

// BuildChangeRows converts raw zone counts into the stable 6-class
// table.
func BuildChangeRows(counts []ZoneCount, pixelAreaHa float64) []ChangeZoneRow {
	rows := make([]ChangeZoneRow, len(counts))
	for i, count := range counts {
		row := ChangeZoneRow{
			Zone:           count.ZoneID,
			TotalPixels:    count.TotalPixels,
			NoChange:       count.Counts[int8(change.ClassNoChange)],
			Urbanization:   count.Counts[int8(change.ClassUrbanization)],
			VegetationLoss: count.Counts[int8(change.ClassVegetationLoss)],
			VegetationGain: count.Counts[int8(change.ClassVegetationGain)],
			NewWater:       count.Counts[int8(change.ClassNewWater)],
			WaterLoss:      count.Counts[int8(change.ClassWaterLoss)],
		}
		row.NoChangeHa = float64(row.NoChange) * pixelAreaHa
		row.UrbanizationHa = float64(row.Urbanization) * pixelAreaHa
		row.VegetationLossHa = float64(row.VegetationLoss) * pixelAreaHa
		row.VegetationGainHa = float64(row.VegetationGain) * pixelAreaHa
		row.NewWaterHa = float64(row.NewWater) * pixelAreaHa
		row.WaterLossHa = float64(row.WaterLoss) * pixelAreaHa
		rows[i] = row
	}
	return rows
}

// DiffZoneRow is the zonal statistics row for the signed differencing
// raster.
type DiffZoneRow struct {
	Zone        string  `csv:"zone"`
	TotalPixels int     `csv:"total_pixels"`
	Loss        int     `csv:"loss"`
	NoChange    int     `csv:"no_change"`
	Gain        int     `csv:"gain"`
	LossHa      float64 `csv:"loss_ha"`
	NoChangeHa  float64 `csv:"no_change_ha"`
	GainHa      float64 `csv:"gain_ha"`
}

// BuildDiffRows converts raw zone counts into the 3-class table.
func BuildDiffRows(counts []ZoneCount, pixelAreaHa float64) []DiffZoneRow {
	rows := make([]DiffZoneRow, len(counts))
	for i, count := range counts {
		row := DiffZoneRow{
			Zone:        count.ZoneID,
			TotalPixels: count.TotalPixels,
			Loss:        count.Counts[change.DiffLoss],
			NoChange:    count.Counts[change.DiffNoChange],
			Gain:        count.Counts[change.DiffGain],
		}
		row.LossHa = float64(row.Loss) * pixelAreaHa
		row.NoChangeHa = float64(row.NoChange) * pixelAreaHa
		row.GainHa = float64(row.Gain) * pixelAreaHa
		rows[i] = row
	}
	return rows
}
