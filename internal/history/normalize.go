package history

import (
	"fmt"
	"time"
)

// The two timestamp layouts Spotify exports use: extended history files carry
// RFC 3339 instants, account-data files carry minute-precision local strings.
var endTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
}

// MalformedRecordError reports a record that could not be parsed into the
// canonical event shape. It is fatal for the batch that contained it.
type MalformedRecordError struct {
	Index int
	Field string
	Value string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %d: bad %s %q", e.Index, e.Field, e.Value)
}

// Options controls normalization.
type Options struct {
	// Plays at or under this many milliseconds are dropped.
	MinMsPlayed int64

	// Artists at or under this many cumulative minutes (measured after the
	// per-play filter) are dropped entirely.
	MinArtistMinutes float64

	// Offset shifts end times before any calendar field is derived. It
	// changes which day a play near midnight is attributed to.
	Offset time.Duration
}

// DefaultOptions returns the filter thresholds the dashboard uses.
func DefaultOptions() Options {
	return Options{MinMsPlayed: 10000, MinArtistMinutes: 5}
}

// Normalize turns raw export records into the canonical event table: it
// parses and validates timestamps, derives the calendar fields, drops short
// plays, and then drops every play of any artist below the cumulative-minutes
// threshold. The per-play filter runs first; the artist filter sums over the
// already-filtered plays. Both filters are a fixed point after one pass.
func Normalize(raw []Raw, opts Options) ([]Event, error) {
	events := make([]Event, 0, len(raw))
	for i, r := range raw {
		if r.MsPlayed < 0 {
			return nil, &MalformedRecordError{Index: i, Field: "msPlayed", Value: fmt.Sprint(r.MsPlayed)}
		}
		end, err := parseEndTime(r.EndTime)
		if err != nil {
			return nil, &MalformedRecordError{Index: i, Field: "endTime", Value: r.EndTime}
		}
		events = append(events, Event{
			ArtistName: r.ArtistName,
			TrackName:  r.TrackName,
			AlbumName:  r.AlbumName,
			EndTime:    end,
			MsPlayed:   r.MsPlayed,
		})
	}

	events = Derive(events, opts.Offset)
	events = filterShortPlays(events, opts.MinMsPlayed)
	events = filterQuietArtists(events, opts.MinArtistMinutes)
	return events, nil
}

func parseEndTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty end time")
	}
	var lastErr error
	for _, layout := range endTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func filterShortPlays(events []Event, minMs int64) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.MsPlayed > minMs {
			out = append(out, e)
		}
	}
	return out
}

func filterQuietArtists(events []Event, minMinutes float64) []Event {
	totals := make(map[string]float64)
	for _, e := range events {
		totals[e.ArtistName] += e.MinutesPlayed
	}

	out := make([]Event, 0, len(events))
	for _, e := range events {
		if totals[e.ArtistName] > minMinutes {
			out = append(out, e)
		}
	}
	return out
}
