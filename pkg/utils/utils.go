package utils

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

var ErrNotFound = errors.New("resource not found on server")

// Fetch downloads a URL and returns the whole payload.
func Fetch(url, logPrefix string) ([]byte, error) {
	log.Printf("%s Fetching %s", logPrefix, url)
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("%s Error closing response body: %v", logPrefix, err)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// CachedGet returns the payload for a URL, serving from the dataset cache
// when possible. A nil cache degrades to a plain fetch; a fetch that
// succeeds is written back to the cache before returning.
func CachedGet(url string, cache *DatasetCache, logPrefix string) ([]byte, error) {
	if cache != nil {
		payload, err := cache.Get(url)
		if err != nil {
			log.Printf("%s Cache read failed for %s: %v", logPrefix, url, err)
		}
		if payload != nil {
			log.Printf("%s Using cached payload for %s", logPrefix, url)
			return payload, nil
		}
	}

	payload, err := Fetch(url, logPrefix)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		if err := cache.Put(url, payload); err != nil {
			log.Printf("%s Cache write failed for %s: %v", logPrefix, url, err)
		}
	}
	return payload, nil
}
