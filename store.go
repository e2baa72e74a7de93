package docsite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/eringen/docsite/frontmatter"
)

// Store wraps a SQLite database holding the indexed documentation pages.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server read while the indexer replaces pages; writers
	// wait on the busy timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	if path == ":memory:" {
		// Every connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    resource_path TEXT PRIMARY KEY,
    page_title TEXT NOT NULL,
    sidebar_title TEXT NOT NULL,
    description TEXT NOT NULL,
    layout TEXT NOT NULL,
    body TEXT NOT NULL
);
`)
	return err
}

// ReplacePages swaps the whole page set in one transaction.
func (s *Store) ReplacePages(ctx context.Context, docs []frontmatter.Document) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pages (resource_path, page_title, sidebar_title, description, layout, body) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, d := range docs {
		if _, err = stmt.ExecContext(ctx, d.ResourcePath, d.PageTitle, d.SidebarTitle, d.Description, d.Layout, d.Body); err != nil {
			return fmt.Errorf("insert %s: %w", d.ResourcePath, err)
		}
	}
	return tx.Commit()
}

// ListPages returns every page ordered by resource path.
func (s *Store) ListPages(ctx context.Context) ([]frontmatter.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT resource_path, page_title, sidebar_title, description, layout, body FROM pages ORDER BY resource_path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []frontmatter.Document
	for rows.Next() {
		var d frontmatter.Document
		if err := rows.Scan(&d.ResourcePath, &d.PageTitle, &d.SidebarTitle, &d.Description, &d.Layout, &d.Body); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetPage returns a page by resource path, or ErrNotFound.
func (s *Store) GetPage(ctx context.Context, resourcePath string) (frontmatter.Document, error) {
	var d frontmatter.Document
	err := s.db.QueryRowContext(ctx, `SELECT resource_path, page_title, sidebar_title, description, layout, body FROM pages WHERE resource_path = ?`, resourcePath).
		Scan(&d.ResourcePath, &d.PageTitle, &d.SidebarTitle, &d.Description, &d.Layout, &d.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return frontmatter.Document{}, ErrNotFound
	}
	if err != nil {
		return frontmatter.Document{}, err
	}
	return d, nil
}

// CountPages returns the number of indexed pages.
func (s *Store) CountPages(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n)
	return n, err
}
