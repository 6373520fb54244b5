package lakeengine

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// SaveFrame writes a composited frame to dir as lake-<timePoint>.png,
// creating the directory if needed. timePoint is the "YYYY-MM" key.
func SaveFrame(frame *image.RGBA, dir, timePoint string) (string, error) {
	if frame == nil {
		return "", fmt.Errorf("nil frame for %s", timePoint)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating capture directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("lake-%s.png", timePoint))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
