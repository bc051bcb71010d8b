//go:build sqlite_fts5

package searchindex

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"
)

// The trigram tokenizer matches arbitrary substrings case-insensitively.
func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS pages_fts USING fts5(
			path UNINDEXED,
			title,
			body,
			tags,
			tokenize = 'trigram'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, r Row) error {
	_, _ = tx.Exec(`DELETE FROM pages_fts WHERE path = ?`, r.Path)
	_, err := tx.Exec(`INSERT INTO pages_fts (path, title, body, tags) VALUES (?, ?, ?, ?)`,
		r.Path, r.Title, r.Body, strings.Join(r.Tags, " "))
	if err != nil {
		return fmt.Errorf("searchindex: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, path string) {
	_, _ = tx.Exec(`DELETE FROM pages_fts WHERE path = ?`, path)
}

// Search returns pages whose title, tags or body contain query, ignoring
// case, with a highlighted snippet. Queries shorter than a trigram fall
// back to LIKE.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if utf8.RuneCountInString(query) < 3 {
		return db.likeSearch(query, limit)
	}
	rows, err := db.conn.Query(`
		SELECT pages_fts.path,
		       p.kind,
		       p.title,
		       snippet(pages_fts, 2, '<b>', '</b>', '...', 32)
		FROM pages_fts
		JOIN pages p ON p.path = pages_fts.path
		WHERE pages_fts MATCH ?
		ORDER BY p.date DESC, p.path
		LIMIT ?
	`, `"`+strings.ReplaceAll(query, `"`, `""`)+`"`, limit)
	if err != nil {
		return nil, fmt.Errorf("searchindex: search: %w", err)
	}
	return scanResults(rows)
}
