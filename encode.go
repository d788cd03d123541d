package club

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned by a Store that holds no snapshot yet.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the persisted state of the club. Everything else is derived
// from it.
type Snapshot struct {
	Members            []Member           `json:"members"`
	Transactions       []Transaction      `json:"transactions"`
	PerformanceHistory []PerformancePoint `json:"performanceHistory"`
}

// EncodeSnapshot writes s as an indented JSON document.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a JSON snapshot. Derived fields stored alongside, as
// older files do, are ignored.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return s, nil
}
