package output

import (
	"path/filepath"
	"testing"
)

func TestCreateVideoFromImagesNoFrames(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.avi")
	if err := CreateVideoFromImages(nil, outputPath); err == nil {
		t.Fatalf("expected error for an empty frame list")
	}
}

func TestCreateVideoFromImagesMissingFrame(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out.avi")
	missing := filepath.Join(t.TempDir(), "frame.png")
	if err := CreateVideoFromImages([]string{missing}, outputPath); err == nil {
		t.Fatalf("expected error for a missing frame file")
	}
}
