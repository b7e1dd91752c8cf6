// Package analysis turns a normalized event table into ordered aggregates,
// leaderboards, rank lookups, and the calendar heatmap grid. Everything here
// is pure: the same events produce the same output, and the input is never
// mutated, so callers may share one table across goroutines.
package analysis

import (
	"sort"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

// EntityKind selects the grouping level of an aggregation.
type EntityKind int

const (
	Artists EntityKind = iota
	Albums
	Tracks
)

// EntityKey identifies an artist, album, or track. Albums and tracks carry
// the artist so that identical titles under different artists stay distinct.
// Name is empty for artist keys.
type EntityKey struct {
	Artist string
	Name   string
}

func ArtistKey(artist string) EntityKey { return EntityKey{Artist: artist} }

func AlbumKey(artist, album string) EntityKey { return EntityKey{Artist: artist, Name: album} }

func TrackKey(artist, track string) EntityKey { return EntityKey{Artist: artist, Name: track} }

func (k EntityKey) less(o EntityKey) bool {
	if k.Artist != o.Artist {
		return k.Artist < o.Artist
	}
	return k.Name < o.Name
}

// Aggregate is one entity's totals within a time window. Rank is dense and
// 1-based, assigned after sorting.
type Aggregate struct {
	Key          EntityKey
	TotalMinutes float64
	Listens      int
	Rank         int
}

// Hours is always derived from TotalMinutes, never stored separately.
func (a Aggregate) Hours() float64 { return a.TotalMinutes / 60 }

// SortPolicy names the ranking key of an aggregation. Every policy breaks
// remaining ties by entity key ascending, so aggregate order is fully
// deterministic.
type SortPolicy int

const (
	// ByMinutes orders by total minutes descending.
	ByMinutes SortPolicy = iota

	// ByListens orders by play count descending. "Top songs" uses this:
	// repeat plays, not duration, define a top song.
	ByListens

	// ByMinutesThenListens orders by total minutes descending with play
	// count breaking ties, the ordering for yearly and monthly leaderboards.
	ByMinutesThenListens
)

func (p SortPolicy) less(a, b Aggregate) bool {
	switch p {
	case ByListens:
		if a.Listens != b.Listens {
			return a.Listens > b.Listens
		}
	case ByMinutesThenListens:
		if a.TotalMinutes != b.TotalMinutes {
			return a.TotalMinutes > b.TotalMinutes
		}
		if a.Listens != b.Listens {
			return a.Listens > b.Listens
		}
	default:
		if a.TotalMinutes != b.TotalMinutes {
			return a.TotalMinutes > b.TotalMinutes
		}
	}
	return a.Key.less(b.Key)
}

func keyFor(kind EntityKind, e history.Event) EntityKey {
	switch kind {
	case Albums:
		return AlbumKey(e.ArtistName, e.AlbumName)
	case Tracks:
		return TrackKey(e.ArtistName, e.TrackName)
	default:
		return ArtistKey(e.ArtistName)
	}
}

// AggregateBy groups events by entity, sums minutes and play counts, and
// orders the result by policy with dense 1-based ranks.
func AggregateBy(events []history.Event, kind EntityKind, policy SortPolicy) []Aggregate {
	totals := make(map[EntityKey]*Aggregate)
	for _, e := range events {
		k := keyFor(kind, e)
		agg, ok := totals[k]
		if !ok {
			agg = &Aggregate{Key: k}
			totals[k] = agg
		}
		agg.TotalMinutes += e.MinutesPlayed
		agg.Listens++
	}

	out := make([]Aggregate, 0, len(totals))
	for _, agg := range totals {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return policy.less(out[i], out[j]) })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
