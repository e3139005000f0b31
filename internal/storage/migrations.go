package storage

import "fmt"

// migrate creates the stop index schema if it doesn't exist.
func (idx *Index) migrate() error {
	for i, stmt := range migrations {
		if _, err := idx.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// name_folded holds the Unicode lower-cased name; SQLite's LOWER only
	// folds ASCII.
	`CREATE TABLE IF NOT EXISTS stops (
		stop_id     TEXT PRIMARY KEY,
		stop_code   TEXT NOT NULL DEFAULT '',
		stop_name   TEXT NOT NULL,
		name_folded TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stops_id_name ON stops(stop_id, stop_name)`,
}
