package lakeengine

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	frame := image.NewRGBA(image.Rect(0, 0, 32, 16))

	path, err := SaveFrame(frame, dir, "2023-07")
	if err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}
	if filepath.Base(path) != "lake-2023-07.png" {
		t.Errorf("Frame path = %s; want lake-2023-07.png", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Opening frame failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decoding frame failed: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
		t.Errorf("Decoded frame is %v; want 32x16", img.Bounds())
	}
}

func TestSaveFrameNil(t *testing.T) {
	if _, err := SaveFrame(nil, t.TempDir(), "2023-07"); err == nil {
		t.Error("SaveFrame accepted a nil frame")
	}
}
