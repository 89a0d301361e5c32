package ui

import (
	"fmt"
	"path/filepath"

	"github.com/austral-geolab/landchange-api-poc/internal/scene"
)

// ListScenes prints the raw scene archives and the processed index
// stacks
func ListScenes() {
	archives, err := scene.ListSceneArchives()
	if err != nil {
		PrintWarning(fmt.Sprintf("No raw scenes found: %s", err.Error()))
	} else {
		fmt.Printf("%s\nRaw scene archives:%s\n", ColorGreen, ColorReset)
		for _, path := range archives {
			fmt.Printf("%s- %s%s\n", ColorGreen, filepath.Base(path), ColorReset)
		}
	}

	stacks, err := scene.ListStacks()
	if err != nil {
		PrintError(err.Error())
		return
	}
	if len(stacks) == 0 {
		PrintWarning("No processed index stacks found yet.")
		return
	}

	fmt.Printf("%s\nProcessed index stacks:%s\n", ColorGreen, ColorReset)
	for _, stack := range stacks {
		fmt.Printf("%s- %s%s\n", ColorGreen, stack.Date.Format("2006-01-02"), ColorReset)
	}
}
