package library

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Gateway reads and writes the library snapshot as a single JSON document.
// Every save rewrites the whole file; there are no incremental updates and no
// schema version.
type Gateway struct {
	path string
}

// NewGateway resolves the snapshot path under dir, creating the directory so
// a first run succeeds.
func NewGateway(dir, file string) (*Gateway, error) {
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &Gateway{path: filepath.Join(dir, file)}, nil
}

// Path returns the snapshot file location.
func (g *Gateway) Path() string { return g.path }

// Save serializes the snapshot and atomically replaces the backing file via a
// temp-file rename, so a crash mid-write cannot leave a truncated document.
func (g *Gateway) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %v", ErrPersistence, err)
	}

	dir := filepath.Dir(g.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrPersistence, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write snapshot: %v", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close temp file: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), g.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: replace snapshot: %v", ErrPersistence, err)
	}
	return nil
}

// Load reads and decodes the snapshot, or reports ErrSnapshotAbsent when the
// file does not exist yet.
func (g *Gateway) Load() (*Snapshot, error) {
	data, err := os.ReadFile(g.path)
	if os.IsNotExist(err) {
		return nil, ErrSnapshotAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read snapshot: %v", ErrPersistence, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %v", ErrPersistence, err)
	}
	return &snap, nil
}
