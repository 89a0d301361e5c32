package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/indices"
	"github.com/austral-geolab/landchange-api-poc/internal/notification"
	"github.com/austral-geolab/landchange-api-poc/internal/properties"
	"github.com/austral-geolab/landchange-api-poc/internal/scene"
	"github.com/austral-geolab/landchange-api-poc/internal/utils"
	"golang.org/x/sync/errgroup"
)

const computeWorkers = 4

// ComputeIndices derives index stacks for every raw scene that does
// not have one yet: SAFE product zips under data/raw (digital numbers,
// scaled to reflectance) and downloaded mosaics under data/scenes
// (already reflectance). Scenes are independent; a failed scene is
// reported and skipped, never aborting the rest of the batch.
func ComputeIndices() error {
	type job struct {
		path  string
		date  time.Time
		scale float64
	}

	var jobs []job

	archives, err := scene.ListSceneArchives()
	if err == nil {
		for _, path := range archives {
			date, err := scene.SceneDate(filepath.Base(path))
			if err != nil {
				fmt.Printf("Skipping %s: %s\n", filepath.Base(path), err.Error())
				continue
			}
			jobs = append(jobs, job{path: path, date: date, scale: indices.DefaultReflectanceScale})
		}
	}

	mosaics, _ := filepath.Glob(fmt.Sprintf("%s/data/scenes/scene_*.tif", properties.RootPath()))
	for _, path := range mosaics {
		name := filepath.Base(path)
		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, "scene_"), ".tif")
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		jobs = append(jobs, job{path: path, date: date, scale: 1})
	}

	if len(jobs) == 0 {
		return fmt.Errorf("no raw scenes found under data/raw or data/scenes")
	}

	processedDir := fmt.Sprintf("%s/data/processed", properties.RootPath())
	if err := os.MkdirAll(processedDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create processed folder: %w", err)
	}

	var (
		mu        sync.Mutex
		sceneErrs []string
		computed  int
	)

	var group errgroup.Group
	group.SetLimit(computeWorkers)
	for _, j := range jobs {
		j := j
		group.Go(func() error {
			stackPath := scene.StackPath(j.date)
			if _, err := os.Stat(stackPath); err == nil {
				fmt.Printf("Stack for %s already exists, skipping\n", j.date.Format("2006-01-02"))
				return nil
			}

			fmt.Printf("Processing %s...\n", filepath.Base(j.path))

			var bands indices.Bands
			var err error
			utils.ExecuteWithMutex(func() {
				bands, err = loadBands(j.path)
			})
			if err != nil {
				mu.Lock()
				sceneErrs = append(sceneErrs, fmt.Sprintf("scene %s: %v", filepath.Base(j.path), err))
				mu.Unlock()
				return nil
			}

			stack, degenerate, err := indices.ComputeStack(j.date, bands, j.scale)
			if err != nil {
				mu.Lock()
				sceneErrs = append(sceneErrs, fmt.Sprintf("scene %s: %v", filepath.Base(j.path), err))
				mu.Unlock()
				return nil
			}
			if degenerate > 0 {
				fmt.Printf("Warning: %d cells with zero denominator in %s\n", degenerate, filepath.Base(j.path))
			}

			if err := scene.WriteStack(stack, stackPath); err != nil {
				mu.Lock()
				sceneErrs = append(sceneErrs, fmt.Sprintf("scene %s: %v", filepath.Base(j.path), err))
				mu.Unlock()
				return nil
			}

			fmt.Printf("Saved %s (NDVI mean: %.3f)\n", filepath.Base(stackPath), stack.NDVI.ValidMean())
			mu.Lock()
			computed++
			mu.Unlock()
			return nil
		})
	}
	group.Wait()

	if len(sceneErrs) == len(jobs) {
		return fmt.Errorf("all scenes failed during index computation: %s", strings.Join(sceneErrs, "\n"))
	}
	if len(sceneErrs) > 0 {
		fmt.Println(strings.Join(sceneErrs, "\n"))
		notification.SendDiscordWarnNotification(fmt.Sprintf("Index computation completed with %d errors.\nErrors: %s", len(sceneErrs), strings.Join(sceneErrs, "\n")))
	}

	fmt.Printf("Computed %d index stacks\n", computed)
	return nil
}

// loadBands reads the raw bands from either a SAFE product zip or a
// downloaded 5-band mosaic.
func loadBands(path string) (indices.Bands, error) {
	if strings.HasSuffix(path, ".zip") {
		return scene.LoadBands(path)
	}

	// mosaic band order matches the request evalscript:
	// B02, B03, B04, B08, B11
	blue, err := scene.ReadGrid(path, 0)
	if err != nil {
		return indices.Bands{}, err
	}
	green, err := scene.ReadGrid(path, 1)
	if err != nil {
		return indices.Bands{}, err
	}
	red, err := scene.ReadGrid(path, 2)
	if err != nil {
		return indices.Bands{}, err
	}
	nir, err := scene.ReadGrid(path, 3)
	if err != nil {
		return indices.Bands{}, err
	}
	swir1, err := scene.ReadGrid(path, 4)
	if err != nil {
		return indices.Bands{}, err
	}

	return indices.Bands{Blue: blue, Green: green, Red: red, NIR: nir, SWIR1: swir1}, nil
}
