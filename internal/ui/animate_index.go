package ui

import (
	"fmt"

	"github.com/austral-geolab/landchange-api-poc/internal/indices"
	"github.com/austral-geolab/landchange-api-poc/internal/properties"
	"github.com/austral-geolab/landchange-api-poc/internal/scene"
	"github.com/austral-geolab/landchange-api-poc/output"
)

// AnimateIndex handles the UI for rendering one index across all
// processed dates into a video
func AnimateIndex() {
	fmt.Printf("%s\nAvailable indices:%s\n", ColorGreen, ColorReset)
	for i, name := range indices.IndexNames {
		fmt.Printf("%s%d. %s%s\n", ColorGreen, i+1, name, ColorReset)
	}
	choice, err := ReadInt("Enter the number of the index to animate: ", 1, len(indices.IndexNames))
	if err != nil {
		PrintError(err.Error())
		return
	}
	indexName := indices.IndexNames[choice-1]

	stackFiles, err := scene.ListStacks()
	if err != nil {
		PrintError(err.Error())
		return
	}
	if len(stackFiles) < 2 {
		PrintError("need at least two processed dates to animate")
		return
	}

	stacks := make([]*indices.Stack, 0, len(stackFiles))
	for _, sf := range stackFiles {
		stack, err := scene.LoadStack(sf.Path, sf.Date)
		if err != nil {
			PrintError(fmt.Sprintf("Error loading stack %s: %s", sf.Path, err.Error()))
			return
		}
		stacks = append(stacks, stack)
	}

	resultDir := fmt.Sprintf("%s/data/result", properties.RootPath())
	frameDir := fmt.Sprintf("%s/frames", resultDir)
	videoPath := fmt.Sprintf("%s/%s_evolution.avi", resultDir, indexName)

	if _, err := output.CreateIndexAnimation(stacks, indexName, frameDir, videoPath); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess(fmt.Sprintf("Created %s animation over %d dates!", indexName, len(stacks)))
}
