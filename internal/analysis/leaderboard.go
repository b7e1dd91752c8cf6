package analysis

import (
	"fmt"
	"sort"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

// Leaderboard is a ranked view of an aggregation. Rows always carries every
// entity with dense ranks; DisplayOrder is the truncated label list the
// presentation layer renders.
type Leaderboard struct {
	Rows         []Aggregate
	DisplayOrder []string
}

func buildLeaderboard(events []history.Event, kind EntityKind, policy SortPolicy, topN int, label func(EntityKey) string) Leaderboard {
	rows := AggregateBy(events, kind, policy)

	n := len(rows)
	if topN > 0 && topN < n {
		n = topN
	}
	order := make([]string, 0, n)
	for _, a := range rows[:n] {
		order = append(order, label(a.Key))
	}
	return Leaderboard{Rows: rows, DisplayOrder: order}
}

// TopArtists ranks artists by total minutes. topN truncates only the display
// order; zero means no truncation.
func TopArtists(events []history.Event, topN int) Leaderboard {
	return buildLeaderboard(events, Artists, ByMinutes, topN, func(k EntityKey) string {
		return k.Artist
	})
}

// TopAlbums ranks albums by total minutes, labelled for display.
func TopAlbums(events []history.Event, topN int) Leaderboard {
	return buildLeaderboard(events, Albums, ByMinutes, topN, AlbumDisplay)
}

// TopSongs ranks tracks by listen count.
func TopSongs(events []history.Event, topN int) Leaderboard {
	return buildLeaderboard(events, Tracks, ByListens, topN, func(k EntityKey) string {
		return k.Name
	})
}

// TrackLeaderboard ranks tracks by total minutes with listens breaking ties,
// the ordering used for yearly and monthly leaderboards.
func TrackLeaderboard(events []history.Event, topN int) Leaderboard {
	return buildLeaderboard(events, Tracks, ByMinutesThenListens, topN, func(k EntityKey) string {
		return k.Name
	})
}

// AlbumLeaderboard ranks albums by total minutes for yearly and monthly
// leaderboards.
func AlbumLeaderboard(events []history.Event, topN int) Leaderboard {
	return buildLeaderboard(events, Albums, ByMinutes, topN, func(k EntityKey) string {
		return k.Name
	})
}

// AlbumDisplay is the album label the dashboard shows.
func AlbumDisplay(k EntityKey) string {
	return fmt.Sprintf("%s — %s", k.Name, k.Artist)
}

// MonthMinutes is one month's total for the listening-over-time series.
type MonthMinutes struct {
	Month        string // "2006-01"
	TotalMinutes float64
}

// MinutesByMonth sums minutes per calendar month, ascending by month.
func MinutesByMonth(events []history.Event) []MonthMinutes {
	totals := make(map[string]float64)
	for _, e := range events {
		totals[e.Date.Format("2006-01")] += e.MinutesPlayed
	}

	out := make([]MonthMinutes, 0, len(totals))
	for month, minutes := range totals {
		out = append(out, MonthMinutes{Month: month, TotalMinutes: minutes})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
