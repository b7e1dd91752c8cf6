package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tsimons/spotify-history-tools/internal/migration"
)

// Store is the content-addressed cache of normalized event tables: one
// dataset per distinct (file set, options) digest. Its contract is that the
// same digest returns the previously computed table without reprocessing,
// and Clear wipes everything unconditionally.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the cache at path. ":memory:" works for
// tests.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	if _, err := db.Exec(migration.Create); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Has reports whether a dataset with this digest is cached.
func (s *Store) Has(digest string) (bool, error) {
	row := s.db.QueryRow("SELECT digest FROM Dataset WHERE digest = ?", digest)
	var got string
	err := row.Scan(&got)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking dataset %q: %w", digest, err)
	}
	return true, nil
}

// Clear wipes every cached dataset unconditionally.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM Event"); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM Dataset"); err != nil {
		return fmt.Errorf("clearing datasets: %w", err)
	}
	return nil
}
