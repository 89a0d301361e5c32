package delivery

import (
	"fmt"
	"os"

	"github.com/austral-geolab/landchange-api-poc/internal/change"
	"github.com/austral-geolab/landchange-api-poc/internal/properties"
	"github.com/austral-geolab/landchange-api-poc/internal/scene"
	"github.com/gocarina/gocsv"
)

// DiffRasterPath and ClassifiedRasterPath are the canonical outputs of
// a change-detection run, consumed by the zonal analysis.
func DiffRasterPath() string {
	return fmt.Sprintf("%s/data/processed/change_diff_ndvi.tif", properties.RootPath())
}

func ClassifiedRasterPath() string {
	return fmt.Sprintf("%s/data/processed/change_classified.tif", properties.RootPath())
}

// DetectChanges runs both classifiers between the two stack files,
// writes the change rasters plus stats tables and returns the results.
// The stacks must already exist; the shapes must match cell-for-cell.
func DetectChanges(t1, t2 scene.StackFile, threshold float64, thresholds change.Thresholds, base change.PercentBase) (*change.DiffResult, *change.MultiRuleResult, error) {
	stackT1, err := scene.LoadStack(t1.Path, t1.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load T1 stack: %w", err)
	}
	stackT2, err := scene.LoadStack(t2.Path, t2.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load T2 stack: %w", err)
	}

	diffResult, err := change.ClassifyDifference(stackT1.NDVI, stackT2.NDVI, threshold, base)
	if err != nil {
		return nil, nil, fmt.Errorf("differencing classifier failed: %w", err)
	}

	multiResult, err := change.ClassifyMultiRule(stackT1, stackT2, thresholds, base)
	if err != nil {
		return nil, nil, fmt.Errorf("multi-rule classifier failed: %w", err)
	}

	if err := scene.WriteChangeRaster(diffResult.Raster, DiffRasterPath()); err != nil {
		return nil, nil, err
	}
	if err := scene.WriteChangeRaster(multiResult.Raster, ClassifiedRasterPath()); err != nil {
		return nil, nil, err
	}

	resultDir := fmt.Sprintf("%s/data/result", properties.RootPath())
	if err := os.MkdirAll(resultDir, os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("failed to create result folder: %w", err)
	}

	if err := saveDiffStats(diffResult, resultDir); err != nil {
		return nil, nil, err
	}
	if err := saveClassStats(multiResult, resultDir); err != nil {
		return nil, nil, err
	}
	if err := writeComparison(t1, t2, diffResult, multiResult, resultDir); err != nil {
		return nil, nil, err
	}

	return diffResult, multiResult, nil
}

func saveDiffStats(result *change.DiffResult, resultDir string) error {
	file, err := os.Create(fmt.Sprintf("%s/change_diff_stats.csv", resultDir))
	if err != nil {
		return fmt.Errorf("failed to create diff stats file: %w", err)
	}
	defer file.Close()

	rows := []change.DiffStats{result.Stats}
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to save diff stats: %w", err)
	}
	return nil
}

func saveClassStats(result *change.MultiRuleResult, resultDir string) error {
	file, err := os.Create(fmt.Sprintf("%s/change_class_stats.csv", resultDir))
	if err != nil {
		return fmt.Errorf("failed to create class stats file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&result.Counts, file); err != nil {
		return fmt.Errorf("failed to save class stats: %w", err)
	}
	return nil
}

// writeComparison emits a short markdown report contrasting the two
// methods for the analyzed date pair.
func writeComparison(t1, t2 scene.StackFile, diff *change.DiffResult, multi *change.MultiRuleResult, resultDir string) error {
	var b []byte
	b = fmt.Appendf(b, "# Change detection method comparison\n\n")
	b = fmt.Appendf(b, "Dates: %s -> %s\n\n", t1.Date.Format("2006-01-02"), t2.Date.Format("2006-01-02"))

	b = fmt.Appendf(b, "## Method 1: NDVI differencing (threshold %.2f)\n\n", diff.Stats.Threshold)
	b = fmt.Appendf(b, "- Loss: %d pixels (%.2f%%)\n", diff.Stats.LossPixels, diff.Stats.LossPct)
	b = fmt.Appendf(b, "- Gain: %d pixels (%.2f%%)\n", diff.Stats.GainPixels, diff.Stats.GainPct)
	b = fmt.Appendf(b, "- Mean NDVI difference: %.4f ± %.4f\n\n", diff.Stats.DiffMean, diff.Stats.DiffStd)

	b = fmt.Appendf(b, "## Method 2: multi-rule classification\n\n")
	for _, count := range multi.Counts {
		if count.Class == change.ClassNoChange {
			continue
		}
		b = fmt.Appendf(b, "- %s: %d pixels (%.2f%%)\n", count.Name, count.Pixels, count.Percent)
	}

	path := fmt.Sprintf("%s/method_comparison.md", resultDir)
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write comparison report: %w", err)
	}
	fmt.Println("Comparison report saved to", path)
	return nil
}
