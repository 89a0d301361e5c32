package delivery

import (
	"fmt"
	"os"

	"github.com/austral-geolab/landchange-api-poc/internal/cache"
	"github.com/austral-geolab/landchange-api-poc/internal/indices"
	"github.com/austral-geolab/landchange-api-poc/internal/properties"
	"github.com/austral-geolab/landchange-api-poc/internal/scene"
	"github.com/austral-geolab/landchange-api-poc/internal/temporal"
	"github.com/gocarina/gocsv"
	"github.com/schollz/progressbar/v3"
)

// TemporalSeries summarizes every processed index stack into one row
// per date and writes the ascending series as CSV. Rows are cached by
// the stack file set, so re-running without new scenes is free.
func TemporalSeries() ([]temporal.SeriesRow, error) {
	stackFiles, err := scene.ListStacks()
	if err != nil {
		return nil, err
	}
	if len(stackFiles) == 0 {
		return nil, fmt.Errorf("no processed index stacks found, compute indices first")
	}

	seriesCache := cache.NewFileCache[[]temporal.SeriesRow]("temporal")
	keyParams := make([]interface{}, 0, len(stackFiles))
	for _, sf := range stackFiles {
		keyParams = append(keyParams, sf.Path, sf.Date.Format("2006-01-02"))
	}
	cacheKey := seriesCache.GenerateKey(keyParams...)

	rows, ok := seriesCache.Get(cacheKey)
	if !ok {
		progressBar := progressbar.Default(int64(len(stackFiles)), "Loading index stacks")
		stacks := make([]*indices.Stack, 0, len(stackFiles))
		for _, sf := range stackFiles {
			stack, err := scene.LoadStack(sf.Path, sf.Date)
			if err != nil {
				return nil, fmt.Errorf("failed to load stack %s: %w", sf.Path, err)
			}
			stacks = append(stacks, stack)
			progressBar.Add(1)
		}
		progressBar.Finish()

		rows = temporal.BuildSeries(stacks)
		if err := seriesCache.Set(cacheKey, rows); err != nil {
			fmt.Printf("Warning: failed to cache temporal series: %v\n", err)
		}
	}

	resultDir := fmt.Sprintf("%s/data/result", properties.RootPath())
	if err := os.MkdirAll(resultDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create result folder: %w", err)
	}

	csvPath := fmt.Sprintf("%s/temporal_evolution.csv", resultDir)
	file, err := os.Create(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporal series file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return nil, fmt.Errorf("failed to save temporal series: %w", err)
	}
	fmt.Println("Temporal series saved to", csvPath)

	return rows, nil
}
