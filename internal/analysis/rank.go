package analysis

import "github.com/tsimons/spotify-history-tools/internal/history"

// Selector chooses either every entity or one specific entity. It replaces
// the "All Artists" marker string the dashboard's pickers present.
type Selector struct {
	key EntityKey
	all bool
}

// AllEntities selects everything; no single-entity rank applies to it.
func AllEntities() Selector { return Selector{all: true} }

// Specific selects one entity by key.
func Specific(key EntityKey) Selector { return Selector{key: key} }

func (s Selector) IsAll() bool { return s.all }

func (s Selector) Key() EntityKey { return s.key }

// Rank returns the selected entity's 1-based position in the aggregation.
// ok is false for the all-entities selector and for keys absent from the
// aggregation; neither case is an error.
func Rank(aggs []Aggregate, sel Selector) (rank int, ok bool) {
	if sel.all {
		return 0, false
	}
	for _, a := range aggs {
		if a.Key == sel.key {
			return a.Rank, true
		}
	}
	return 0, false
}

// ArtistRank ranks the selected artist by lifetime minutes.
func ArtistRank(events []history.Event, sel Selector) (int, bool) {
	return Rank(AggregateBy(events, Artists, ByMinutes), sel)
}

// YearlyArtistRank restricts the table to one ISO year first, so an artist's
// yearly rank is independent of its lifetime rank and absent in years with no
// plays.
func YearlyArtistRank(events []history.Event, sel Selector, year int) (int, bool) {
	return ArtistRank(history.FilterByWindow(events, year, 0), sel)
}

// AlbumRank ranks the selected (artist, album) by lifetime minutes.
func AlbumRank(events []history.Event, sel Selector) (int, bool) {
	return Rank(AggregateBy(events, Albums, ByMinutes), sel)
}

func YearlyAlbumRank(events []history.Event, sel Selector, year int) (int, bool) {
	return AlbumRank(history.FilterByWindow(events, year, 0), sel)
}

// TrackRank ranks the selected (artist, track) by lifetime minutes.
func TrackRank(events []history.Event, sel Selector) (int, bool) {
	return Rank(AggregateBy(events, Tracks, ByMinutes), sel)
}

func YearlyTrackRank(events []history.Event, sel Selector, year int) (int, bool) {
	return TrackRank(history.FilterByWindow(events, year, 0), sel)
}

// FilterBySelector returns the events the selector covers: everything for
// the all-entities selector, otherwise the selected artist's plays.
func FilterBySelector(events []history.Event, sel Selector) []history.Event {
	if sel.all {
		return events
	}
	out := make([]history.Event, 0, len(events))
	for _, e := range events {
		if e.ArtistName == sel.key.Artist {
			out = append(out, e)
		}
	}
	return out
}
