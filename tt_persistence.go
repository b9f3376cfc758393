package rock

import (
	"encoding/gob"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
)

// ttSnapshot is the on-disk format for a transposition table: a format
// version stamp (from the shared splitmix64 mixer), the table's size
// exponent, and the flat entry slice.
type ttSnapshot struct {
	FormatVersion uint64
	SizeLog2      int
	Entries       []TTEntry
}

const ttSnapshotSeed = 0x524f434b // "ROCK"

func ttSnapshotFormatVersion() uint64 {
	m := splitmix64{state: ttSnapshotSeed}
	return m.next()
}

// SaveTTSnapshot writes tt to path via a temp-file-then-rename for
// atomicity.
func SaveTTSnapshot(tt *TranspositionTable, path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("rock: create tt snapshot dir %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, "tt-snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("rock: create tt snapshot temp file: %w", err)
	}
	tmpPath := tmp.Name()

	snapshot := ttSnapshot{
		FormatVersion: ttSnapshotFormatVersion(),
		SizeLog2:      log2Capacity(tt.Capacity()),
		Entries:       tt.entries,
	}
	if err := gob.NewEncoder(tmp).Encode(&snapshot); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("rock: encode tt snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rock: close tt snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rock: rename tt snapshot into place: %w", err)
	}
	return nil
}

// LoadTTSnapshot restores a TranspositionTable previously saved with
// SaveTTSnapshot. A format-version mismatch is reported as an error rather
// than silently producing a corrupt table.
func LoadTTSnapshot(path string) (*TranspositionTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rock: open tt snapshot %s: %w", path, err)
	}
	defer file.Close()

	var snapshot ttSnapshot
	if err := gob.NewDecoder(file).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("rock: decode tt snapshot %s: %w", path, err)
	}
	if snapshot.FormatVersion != ttSnapshotFormatVersion() {
		return nil, fmt.Errorf("rock: tt snapshot %s has incompatible format version", path)
	}

	tt := NewTranspositionTable(snapshot.SizeLog2)
	if len(snapshot.Entries) != len(tt.entries) {
		return nil, fmt.Errorf("rock: tt snapshot %s entry count mismatch (got %d want %d)", path, len(snapshot.Entries), len(tt.entries))
	}
	copy(tt.entries, snapshot.Entries)
	return tt, nil
}

// log2Capacity inverts capacity = 2 << sizeLog2.
func log2Capacity(capacity int) int {
	return bits.Len(uint(capacity)) - 2
}
