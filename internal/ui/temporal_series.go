package ui

import (
	"fmt"

	"github.com/austral-geolab/landchange-api-poc/internal/delivery"
)

// TemporalSeries handles the UI for building the per-date evolution
// series across all processed stacks
func TemporalSeries() {
	rows, err := delivery.TemporalSeries()
	if err != nil {
		PrintError(err.Error())
		return
	}

	for _, row := range rows {
		fmt.Printf("%s: NDVI %.3f±%.3f, vegetation %.1f%%, built-up %.1f%%\n",
			row.Date.Format("2006-01-02"), row.NDVIMean, row.NDVIStd, row.PctVegetation, row.PctUrban)
	}

	PrintSuccess(fmt.Sprintf("Temporal series built for %d dates!", len(rows)))
}
