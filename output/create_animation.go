package output

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/austral-geolab/landchange-api-poc/internal/indices"
	"github.com/icza/mjpeg"
)

// CreateVideoFromImages stitches rendered frames into an MJPEG AVI at
// 2 fps. All frames must share the first frame's dimensions.
func CreateVideoFromImages(imagePaths []string, outputPath string) error {
	if len(imagePaths) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	if !strings.Contains(outputPath, ".avi") {
		outputPath += ".avi"
	}

	firstFile, err := os.Open(imagePaths[0])
	if err != nil {
		return err
	}
	img, _, err := image.Decode(firstFile)
	firstFile.Close()
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	width := int32(bounds.Dx())
	height := int32(bounds.Dy())

	writer, err := mjpeg.New(outputPath, width, height, 2)
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, path := range imagePaths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100})
		if err != nil {
			return err
		}

		err = writer.AddFrame(buf.Bytes())
		if err != nil {
			return err
		}
	}

	return nil
}

// CreateIndexAnimation renders one frame per stack for the chosen
// index and stitches them into a video showing its evolution over
// time. Frames land next to the video under frameDir.
func CreateIndexAnimation(stacks []*indices.Stack, indexName, frameDir, outputPath string) (string, error) {
	if len(stacks) == 0 {
		return "", fmt.Errorf("no index stacks to animate")
	}
	if err := os.MkdirAll(frameDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create frames folder: %w", err)
	}

	framePaths := make([]string, 0, len(stacks))
	for _, stack := range stacks {
		grid, err := stack.Index(indexName)
		if err != nil {
			return "", err
		}
		framePath := fmt.Sprintf("%s/%s_%s.png", frameDir, strings.ToLower(indexName), stack.Date.Format("2006-01-02"))
		label := fmt.Sprintf("%s %s", indexName, stack.Date.Format("2006-01-02"))
		if _, err := CreateIndexImage(grid, label, framePath); err != nil {
			return "", err
		}
		framePaths = append(framePaths, framePath)
	}

	if err := CreateVideoFromImages(framePaths, outputPath); err != nil {
		return "", fmt.Errorf("failed to create animation: %w", err)
	}
	fmt.Println("Animation created successfully as", outputPath)
	return outputPath, nil
}
