//go:build !sqlite_fts5

package searchindex

import (
	"database/sql"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE over the pages table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ Row) error { return nil }

func ftsDelete(_ *sql.Tx, _ string) {}

// Search returns pages whose title, tags or body contain query, ignoring case.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return db.likeSearch(query, limit)
}
