package scrub

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInspect_NonExifFileHasNoTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.bin")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s := New()
	tags, err := s.Inspect(path)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if tags != nil {
		t.Errorf("Expected no GPS tags in a non-EXIF file, got %+v", tags)
	}
}

func TestInspect_MissingFile(t *testing.T) {
	s := New()
	if _, err := s.Inspect(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}

func TestStrip_ToolFailure(t *testing.T) {
	s := &ExifScrubber{exiftool: "false"}
	if err := s.Strip("whatever"); err == nil {
		t.Errorf("Expected an error when the tool exits non-zero")
	}
}

func TestStrip_ToolSuccess(t *testing.T) {
	s := &ExifScrubber{exiftool: "true"}
	if err := s.Strip("whatever"); err != nil {
		t.Errorf("Expected success, got %v", err)
	}
}
