package searchindex

import (
	"fmt"
	"log/slog"
)

// SyncStats counts what a Sync changed.
type SyncStats struct {
	Upserted  int
	Unchanged int
	Removed   int
}

// Sync brings the index in line with rows in one transaction:
//   - new or changed rows are upserted
//   - pages no longer present are deleted
func (db *DB) Sync(rows []Row, logger *slog.Logger) (*SyncStats, error) {
	checksums, err := db.AllChecksums()
	if err != nil {
		return nil, err
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("searchindex: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	stats := &SyncStats{}
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seen[r.Path] = struct{}{}
		sum := r.Checksum()
		if checksums[r.Path] == sum {
			stats.Unchanged++
			continue
		}
		if err := upsertRow(tx, r, sum); err != nil {
			return nil, err
		}
		logger.Debug("searchindex: indexed", slog.String("path", r.Path))
		stats.Upserted++
	}

	for p := range checksums {
		if _, ok := seen[p]; ok {
			continue
		}
		if err := deleteRow(tx, p); err != nil {
			return nil, err
		}
		logger.Debug("searchindex: removed stale", slog.String("path", p))
		stats.Removed++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("searchindex: commit: %w", err)
	}
	return stats, nil
}
