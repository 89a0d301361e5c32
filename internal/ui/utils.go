package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/austral-geolab/landchange-api-poc/internal/scene"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin with trimming
func ReadString(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	PrintInfo(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadInt reads an integer from stdin with validation
func ReadInt(prompt string, min, max int) (int, error) {
	PrintInfo(prompt)
	var input string
	fmt.Scanln(&input)
	input = strings.TrimSpace(input)

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}

	return value, nil
}

// ReadDate reads a date from stdin with validation
func ReadDate(prompt string) (time.Time, error) {
	input := ReadString(prompt)
	if input == "today" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s. Please use YYYY-MM-DD", input)
	}
	return date, nil
}

// ReadFloat reads a float from stdin, falling back to a default when
// the input is empty
func ReadFloat(prompt string, defaultValue float64) (float64, error) {
	input := ReadString(fmt.Sprintf("%s [%.2f]: ", prompt, defaultValue))
	if input == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	return value, nil
}

// SelectStack displays the available index stacks and returns the
// selected one
func SelectStack(prompt string) (scene.StackFile, error) {
	stacks, err := scene.ListStacks()
	if err != nil {
		return scene.StackFile{}, fmt.Errorf("error listing index stacks: %s", err.Error())
	}
	if len(stacks) == 0 {
		return scene.StackFile{}, fmt.Errorf("no index stacks found, compute indices first")
	}

	fmt.Printf("%s\nAvailable dates:%s\n", ColorGreen, ColorReset)
	for i, stack := range stacks {
		fmt.Printf("%s%d. %s%s\n", ColorGreen, i+1, stack.Date.Format("2006-01-02"), ColorReset)
	}

	choice, err := ReadInt(prompt, 1, len(stacks))
	if err != nil {
		return scene.StackFile{}, err
	}

	return stacks[choice-1], nil
}

// ReadStudyArea loads the first feature geometry from a GeoJSON file
func ReadStudyArea(prompt string) (orb.Geometry, error) {
	path := ReadString(prompt)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %s", err.Error())
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding GEOJSON: %s", err.Error())
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("no features found in the GEOJSON file")
	}

	return fc.Features[0].Geometry, nil
}
