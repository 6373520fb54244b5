package utils

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestDatasetCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	cache, err := OpenDatasetCache(path)
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}

	key := "https://example.test/lake/readings/sites.json"
	payload := []byte(`{"sites": []}`)
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get returned %q; want %q", got, payload)
	}

	// Absent keys come back nil without an error.
	got, err = cache.Get("https://example.test/missing")
	if err != nil {
		t.Errorf("Get for missing key failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get for missing key returned %q; want nil", got)
	}

	if err := cache.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err = cache.Get(key)
	if err != nil {
		t.Errorf("Get after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get after delete returned %q; want nil", got)
	}

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Payloads survive a reopen.
	cache, err = OpenDatasetCache(path)
	if err != nil {
		t.Fatalf("Failed to reopen cache: %v", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			t.Logf("Error closing cache: %v", err)
		}
	}()
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put after reopen failed: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	cache, err = OpenDatasetCache(path)
	if err != nil {
		t.Fatalf("Failed to reopen cache: %v", err)
	}
	got, err = cache.Get(key)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get after reopen returned %q; want %q", got, payload)
	}
}
