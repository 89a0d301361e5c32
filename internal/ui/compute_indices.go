package ui

import (
	"github.com/austral-geolab/landchange-api-poc/internal/delivery"
)

// ComputeIndices handles the UI for deriving index stacks from every
// raw scene
func ComputeIndices() {
	PrintWarning("- Raw scenes are read from data/raw (SAFE product zips) and data/scenes (downloaded mosaics).\n- Scenes that already have a stack are skipped.")

	if err := delivery.ComputeIndices(); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess("Index computation finished!")
}
