// Package index provides a SQLite-backed search index over collected test
// cases. The documents on disk remain the source of truth; the index is an
// in-memory query engine rebuilt per request from an aggregation tree.
package index

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/casebook/internal/aggregate"
)

//go:embed schema.sql
var schemaSQL string

// Row is one search hit.
type Row struct {
	ID       string   `json:"id"`
	Module   string   `json:"module"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Status   string   `json:"status"`
	Profiles []string `json:"profiles"`
}

// Index wraps the in-memory database. Not safe for concurrent writers;
// callers build it once per request and query it read-only.
type Index struct {
	db *sql.DB
}

// Open creates an empty in-memory index.
func Open() (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Ingest loads every test case of the tree. Loading is transactional: all
// rows land or none do.
func (ix *Index) Ingest(tree *aggregate.Tree) error {
	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning ingest transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO testcases (id, module, category, title, purpose, status, profiles) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing ingest statement: %w", err)
	}
	defer stmt.Close()

	for _, module := range tree.Modules {
		for _, cat := range module.Categories {
			for _, tc := range cat.TestCases {
				_, err := stmt.Exec(tc.ID, module.Name, cat.Name, tc.Title, tc.Purpose,
					tc.Status, strings.Join(tc.Profiles, ","))
				if err != nil {
					return fmt.Errorf("indexing %s: %w", tc.ID, err)
				}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing ingest transaction: %w", err)
	}
	return nil
}

// Search matches the query case-insensitively against identifier, title
// and purpose. Results are ordered by module, category and identifier so
// repeated searches over the same tree are stable.
func (ix *Index) Search(query string) ([]Row, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := ix.db.Query(`
		SELECT id, module, category, title, status, profiles
		FROM testcases
		WHERE lower(id) LIKE ? OR lower(title) LIKE ? OR lower(purpose) LIKE ?
		ORDER BY module, category, id`,
		pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var profiles string
		if err := rows.Scan(&r.ID, &r.Module, &r.Category, &r.Title, &r.Status, &profiles); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		if profiles != "" {
			r.Profiles = strings.Split(profiles, ",")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
