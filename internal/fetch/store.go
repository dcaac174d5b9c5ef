package fetch

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one cached source resolution, keyed by the slug of the friendly
// name. Entries do not expire; staleness is an accepted risk.
type Entry struct {
	Slug      string
	URI       string
	Title     string
	UpdatedAt time.Time
}

// Store is the small on-disk cache behind the resolver (cache-aside).
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// OpenStore opens (creating if needed) the resolution cache at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS sources (
			slug       TEXT PRIMARY KEY,
			uri        TEXT NOT NULL,
			title      TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Get returns the cached entry for slug, if any.
func (s *Store) Get(slug string) (Entry, bool, error) {
	var e Entry
	err := s.readDB.QueryRow(
		"SELECT slug, uri, title, updated_at FROM sources WHERE slug = ?", slug,
	).Scan(&e.Slug, &e.URI, &e.Title, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("querying source cache: %w", err)
	}
	return e, true, nil
}

// Put upserts an entry.
func (s *Store) Put(e Entry) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	_, err := s.writeDB.Exec(`
		INSERT INTO sources (slug, uri, title, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			uri = excluded.uri,
			title = excluded.title,
			updated_at = excluded.updated_at
	`, e.Slug, e.URI, e.Title, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting source %s: %w", e.Slug, err)
	}
	return nil
}

// Clear drops all cached resolutions and reports how many were removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.writeDB.Exec("DELETE FROM sources")
	if err != nil {
		return 0, fmt.Errorf("clearing source cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Count returns the number of cached resolutions.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.readDB.QueryRow("SELECT COUNT(*) FROM sources").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting source cache: %w", err)
	}
	return n, nil
}
