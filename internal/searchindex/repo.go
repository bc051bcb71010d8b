package searchindex

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

func upsertRow(tx *sql.Tx, r Row, sum string) error {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)

	_, err := tx.Exec(`
		INSERT INTO pages (path, kind, title, date, category, tags, body, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			kind     = excluded.kind,
			title    = excluded.title,
			date     = excluded.date,
			category = excluded.category,
			tags     = excluded.tags,
			body     = excluded.body,
			checksum = excluded.checksum
	`, r.Path, r.Kind, r.Title, r.Date, r.Category, string(tagsJSON), r.Body, sum)
	if err != nil {
		return fmt.Errorf("searchindex: upsert page: %w", err)
	}
	return ftsUpsert(tx, r)
}

func deleteRow(tx *sql.Tx, path string) error {
	ftsDelete(tx, path)
	if _, err := tx.Exec(`DELETE FROM pages WHERE path = ?`, path); err != nil {
		return fmt.Errorf("searchindex: delete page: %w", err)
	}
	return nil
}

// AllChecksums returns the stored checksum of every indexed page.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM pages`)
	if err != nil {
		return nil, fmt.Errorf("searchindex: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Count returns the number of indexed pages.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("searchindex: count: %w", err)
	}
	return n, nil
}

// likeSearch is the case-insensitive substring search over titles, tags and
// bodies. Results are ordered newest first, then by path.
func (db *DB) likeSearch(query string, limit int) ([]SearchResult, error) {
	like := "%" + escapeLike(query) + "%"
	rows, err := db.conn.Query(`
		SELECT path, kind, title, substr(body, 1, 200)
		FROM pages
		WHERE title LIKE ? ESCAPE '\' OR body LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\'
		ORDER BY date DESC, path
		LIMIT ?
	`, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("searchindex: search: %w", err)
	}
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]SearchResult, error) {
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Path, &r.Kind, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
