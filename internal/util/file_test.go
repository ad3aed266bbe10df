package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsVideoFile(t *testing.T) {
	dir := t.TempDir()
	mp4 := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(mp4, nil, 0644); err != nil {
		t.Fatal(err)
	}
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if !IsVideoFile(mp4) {
		t.Error("expected .mp4 to be recognized as a video file")
	}
	if IsVideoFile(txt) {
		t.Error("expected .txt to not be recognized as a video file")
	}
	if IsVideoFile(dir) {
		t.Error("expected a directory to not be recognized as a video file")
	}
	if IsVideoFile(filepath.Join(dir, "missing.mp4")) {
		t.Error("expected a missing file to not be recognized as a video file")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "present.mp4")
	if err := os.WriteFile(f, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(f) {
		t.Error("expected existing file to be reported as existing")
	}
	if FileExists(dir) {
		t.Error("expected a directory to not be reported as an existing file")
	}
	if FileExists(filepath.Join(dir, "missing.mp4")) {
		t.Error("expected a missing file to not be reported as existing")
	}
}
