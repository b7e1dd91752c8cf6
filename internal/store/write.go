package store

import (
	"fmt"
	"time"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

// SaveDataset stores a normalized event table under its digest, replacing
// any previous rows for that digest.
func (s *Store) SaveDataset(digest string, events []history.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT OR REPLACE INTO Dataset (digest, created) VALUES (?, ?)", digest, time.Now().Unix()); err != nil {
		return fmt.Errorf("inserting dataset %q: %w", digest, err)
	}
	if _, err := tx.Exec("DELETE FROM Event WHERE dataset = ?", digest); err != nil {
		return fmt.Errorf("replacing events for %q: %w", digest, err)
	}

	insert, err := tx.Prepare("INSERT INTO Event (dataset, artist, track, album, end_time, ms_played) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	for _, e := range events {
		if _, err := insert.Exec(digest, e.ArtistName, e.TrackName, e.AlbumName, e.EndTime.Unix(), e.MsPlayed); err != nil {
			return fmt.Errorf("inserting event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing dataset %q: %w", digest, err)
	}
	return nil
}
