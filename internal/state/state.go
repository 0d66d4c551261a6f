// Package state persists the alert marker: a zero-byte file whose
// existence, not content, records that an escalation email has already
// been sent for the current, still-unresolved outage.
package state

import (
	"fmt"
	"os"
	"path/filepath"
)

const markerName = "alert_sent"

// Marker is the durable alert flag. Set uses O_EXCL so two overlapping
// runs cannot both believe they created it, but the broader
// check-then-mail-then-set sequence is not locked; runs are expected not
// to overlap.
type Marker struct {
	path string
}

func New(dir string) *Marker {
	return &Marker{path: filepath.Join(dir, markerName)}
}

// Path returns the marker file location.
func (m *Marker) Path() string { return m.path }

// Exists reports whether the marker is set.
func (m *Marker) Exists() (bool, error) {
	_, err := os.Stat(m.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking alert marker: %w", err)
}

// Set creates the marker. Already-set is not an error.
func (m *Marker) Set() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	f, err := os.OpenFile(m.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("setting alert marker: %w", err)
	}
	return f.Close()
}

// Clear removes the marker. Already-clear is not an error.
func (m *Marker) Clear() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing alert marker: %w", err)
	}
	return nil
}
