package install

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AssetsVerifiedMarker is written once all assets of an instance were verified
	AssetsVerifiedMarker = ".assets-verified"
	// LibrariesVerifiedMarker is written once the client jar and all libraries were verified
	LibrariesVerifiedMarker = ".libraries-verified"
)

// Markers are "ok" files in the instance directory that allow skipping hash checks
type Markers struct {
	Dir string
}

// Has reports if the marker exists
func (m Markers) Has(name string) bool {
	if m.Dir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(m.Dir, name))
	return err == nil
}

// Set writes the marker
func (m Markers) Set(name string) error {
	if m.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(m.Dir, os.ModePerm); err != nil {
		return err
	}
	stamp := []byte(time.Now().UTC().Format(time.RFC3339) + "\n")
	return os.WriteFile(filepath.Join(m.Dir, name), stamp, 0644)
}

// Clear removes all markers
func (m Markers) Clear() error {
	for _, name := range []string{AssetsVerifiedMarker, LibrariesVerifiedMarker} {
		err := os.Remove(filepath.Join(m.Dir, name))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
