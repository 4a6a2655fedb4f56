// Package snapshot persists dial snapshots as JSON and exposes the previous
// run's values for smoothing continuity.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dialboard/internal/dials"
)

// Write stores the snapshot at path, creating parent directories as needed.
func Write(path string, snap dials.Snapshot) error {
	if path == "" {
		return fmt.Errorf("snapshot: path is required")
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// Load reads a previously written snapshot.
func Load(path string) (dials.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return dials.Snapshot{}, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	var snap dials.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return dials.Snapshot{}, fmt.Errorf("snapshot: decode %s: %w", path, err)
	}
	return snap, nil
}

// FilePrevious looks up previous dial values in the snapshot file written by
// the prior run. A missing or unreadable file is a cold start, not an error.
type FilePrevious struct {
	path string
}

// NewFilePrevious returns a lookup backed by the given snapshot file.
func NewFilePrevious(path string) *FilePrevious {
	return &FilePrevious{path: path}
}

// PreviousValue returns the dial's last published numeric value, if any.
// Degraded dials published a placeholder and report no value.
func (p *FilePrevious) PreviousValue(dialID string) (float64, bool) {
	snap, err := Load(p.path)
	if err != nil {
		return 0, false
	}
	for _, card := range snap.Cards {
		if card.ID != dialID {
			continue
		}
		if card.Value == nil {
			return 0, false
		}
		return *card.Value, true
	}
	return 0, false
}

// StaticPrevious is an in-memory PreviousValues implementation.
type StaticPrevious map[string]float64

// PreviousValue returns the stored value for the dial, if any.
func (s StaticPrevious) PreviousValue(dialID string) (float64, bool) {
	v, ok := s[dialID]
	return v, ok
}
