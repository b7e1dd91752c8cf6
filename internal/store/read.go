package store

import (
	"fmt"
	"time"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

// LoadDataset returns the cached table for digest, re-deriving the calendar
// fields with the given offset. ok is false on a cache miss.
func (s *Store) LoadDataset(digest string, offset time.Duration) (events []history.Event, ok bool, err error) {
	has, err := s.Has(digest)
	if err != nil || !has {
		return nil, false, err
	}

	rows, err := s.db.Query("SELECT artist, track, album, end_time, ms_played FROM Event WHERE dataset = ? ORDER BY end_time", digest)
	if err != nil {
		return nil, false, fmt.Errorf("loading dataset %q: %w", digest, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e history.Event
		var end int64
		if err := rows.Scan(&e.ArtistName, &e.TrackName, &e.AlbumName, &end, &e.MsPlayed); err != nil {
			return nil, false, fmt.Errorf("scanning event: %w", err)
		}
		e.EndTime = time.Unix(end, 0).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("loading dataset %q: %w", digest, err)
	}

	return history.Derive(events, offset), true, nil
}
