package index

import (
	"encoding/json"
	"fmt"
	"time"
)

// PostRow represents a row in the posts table.
type PostRow struct {
	Slug        string
	Title       string
	Description string
	Category    string
	Tags        []string
	Checksum    string
	Published   bool
	Date        time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// UpsertPost inserts or replaces a post and its FTS entry within a
// transaction. Unpublished posts are kept in the core table for checksum
// tracking but never enter the search index.
func (db *DB) UpsertPost(p PostRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(p.Tags)
	published := 0
	if p.Published {
		published = 1
	}

	_, err = tx.Exec(`
		INSERT INTO posts (slug, title, description, category, tags, body, checksum, published, date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title       = excluded.title,
			description = excluded.description,
			category    = excluded.category,
			tags        = excluded.tags,
			body        = excluded.body,
			checksum    = excluded.checksum,
			published   = excluded.published,
			date        = excluded.date,
			updated_at  = excluded.updated_at
	`, p.Slug, p.Title, p.Description, p.Category, string(tagsJSON), body,
		p.Checksum, published, p.Date.Format("2006-01-02"), time.Now())
	if err != nil {
		return fmt.Errorf("index: upsert post: %w", err)
	}

	ftsDelete(tx, p.Slug)
	if p.Published {
		if err := ftsUpsert(tx, p.Slug, p.Title, body, p.Tags); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeletePost removes a post and its FTS entry.
func (db *DB) DeletePost(slug string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, slug)
	_, _ = tx.Exec(`DELETE FROM posts WHERE slug = ?`, slug)

	return tx.Commit()
}

// AllChecksums returns slug → checksum for every indexed post.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT slug, checksum FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var slug, cs string
		if err := rows.Scan(&slug, &cs); err != nil {
			return nil, err
		}
		out[slug] = cs
	}
	return out, rows.Err()
}
