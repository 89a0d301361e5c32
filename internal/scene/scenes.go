package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/properties"
)

// StackFile is one processed index stack on disk.
type StackFile struct {
	Path string
	Date time.Time
}

// StackPath is the canonical location of the index stack for a date.
func StackPath(date time.Time) string {
	return fmt.Sprintf("%s/data/processed/indices_%s.tif", properties.RootPath(), date.Format("2006-01-02"))
}

// ListStacks returns the processed index stacks sorted ascending by
// date.
func ListStacks() ([]StackFile, error) {
	pattern := fmt.Sprintf("%s/data/processed/indices_*.tif", properties.RootPath())
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list processed stacks: %w", err)
	}

	stacks := make([]StackFile, 0, len(matches))
	for _, path := range matches {
		name := filepath.Base(path)
		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, "indices_"), ".tif")
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		stacks = append(stacks, StackFile{Path: path, Date: date})
	}

	sort.Slice(stacks, func(i, j int) bool {
		return stacks[i].Date.Before(stacks[j].Date)
	})
	return stacks, nil
}

// ListSceneArchives returns the raw product zips waiting to be
// processed, sorted by name so dates come out ascending.
func ListSceneArchives() ([]string, error) {
	rawDir := fmt.Sprintf("%s/data/raw", properties.RootPath())
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw scenes folder: %w", err)
	}

	var archives []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".zip") {
			archives = append(archives, filepath.Join(rawDir, entry.Name()))
		}
	}
	sort.Strings(archives)
	return archives, nil
}
