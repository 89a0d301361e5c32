package ui

import (
	"fmt"

	"github.com/austral-geolab/landchange-api-poc/internal/change"
	"github.com/austral-geolab/landchange-api-poc/internal/delivery"
)

// DetectChanges handles the UI for running both change classifiers
// between two processed dates
func DetectChanges() {
	t1, err := SelectStack("Enter the number of the earlier date (T1): ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	t2, err := SelectStack("Enter the number of the later date (T2): ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	if !t1.Date.Before(t2.Date) {
		PrintError("T1 must be earlier than T2")
		return
	}

	threshold, err := ReadFloat("Enter the NDVI differencing threshold", change.DefaultDiffThreshold)
	if err != nil {
		PrintError(err.Error())
		return
	}

	diffResult, multiResult, err := delivery.DetectChanges(t1, t2, threshold, change.DefaultThresholds(), change.PercentOverValid)
	if err != nil {
		PrintError(err.Error())
		return
	}

	fmt.Printf("\nNDVI differencing: %.2f%% loss, %.2f%% gain\n", diffResult.Stats.LossPct, diffResult.Stats.GainPct)
	for _, count := range multiResult.Counts {
		if count.Class == change.ClassNoChange {
			continue
		}
		fmt.Printf("Multi-rule %s: %d pixels (%.2f%%)\n", count.Name, count.Pixels, count.Percent)
	}

	PrintSuccess("Change detection finished!")
}
