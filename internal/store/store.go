// Package store persists generated blogs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite-backed record store for blogs and their sections.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if necessary) the database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	blogsTable := `
	CREATE TABLE IF NOT EXISTS blogs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		subtitle TEXT NOT NULL DEFAULT '',
		conclusion TEXT NOT NULL DEFAULT '',
		youtube_url TEXT NOT NULL,
		cover_image TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);`

	// section_order is the authoritative rendering sequence, contiguous
	// from 0 within a blog.
	sectionsTable := `
	CREATE TABLE IF NOT EXISTS blog_sections (
		id TEXT PRIMARY KEY,
		blog_id TEXT NOT NULL,
		heading TEXT NOT NULL,
		content TEXT NOT NULL,
		section_order INTEGER NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (blog_id) REFERENCES blogs (id) ON DELETE CASCADE,
		UNIQUE (blog_id, section_order)
	);`

	tables := []string{blogsTable, sectionsTable}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
