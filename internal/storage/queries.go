package storage

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"nextbus/internal/schedule"
)

// StopSearchResult is one stop matching a search.
type StopSearchResult struct {
	StopID   string
	StopName string
}

// ImportStops replaces the indexed stops with stops. The whole import runs
// in a single transaction.
func (idx *Index) ImportStops(ctx context.Context, stops iter.Seq[*schedule.Stop]) error {
	start := time.Now()

	tx, err := idx.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stops`); err != nil {
		return fmt.Errorf("clear stops: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stops (stop_id, stop_code, stop_name, name_folded) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare stops: %w", err)
	}
	defer stmt.Close()

	count := 0
	for s := range stops {
		if _, err := stmt.ExecContext(ctx, s.StopID, s.Code, s.Name, strings.ToLower(s.Name)); err != nil {
			return fmt.Errorf("insert stop %s: %w", s.StopID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	idx.logger.Debug("stops indexed",
		"count", count,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// SearchStops returns every stop whose name contains query, ignoring case,
// ordered by stop id and then name. An empty query matches every stop.
func (idx *Index) SearchStops(ctx context.Context, query string) ([]StopSearchResult, error) {
	// instr rather than LIKE so that % and _ in the query match literally.
	rows, err := idx.QueryContext(ctx, `
		SELECT stop_id, stop_name
		FROM stops
		WHERE instr(name_folded, ?) > 0
		ORDER BY stop_id, stop_name`, strings.ToLower(query))
	if err != nil {
		return nil, fmt.Errorf("search stops: %w", err)
	}
	defer rows.Close()

	var results []StopSearchResult
	for rows.Next() {
		var r StopSearchResult
		if err := rows.Scan(&r.StopID, &r.StopName); err != nil {
			return nil, fmt.Errorf("scan stop: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of indexed stops.
func (idx *Index) Count(ctx context.Context) (int, error) {
	var n int
	err := idx.QueryRowContext(ctx, `SELECT COUNT(*) FROM stops`).Scan(&n)
	return n, err
}
