package analysis

import (
	"sort"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

// Stats summarizes one slice of the event table.
type Stats struct {
	TotalHours       float64
	UniqueTracks     int
	MostListenedYear int // 0 when the slice is empty
}

// ComputeStats computes totals over the given slice. An empty slice yields
// zero values, not an error.
func ComputeStats(events []history.Event) Stats {
	var minutes float64
	tracks := make(map[EntityKey]struct{})
	years := make(map[int]float64)
	for _, e := range events {
		minutes += e.MinutesPlayed
		tracks[TrackKey(e.ArtistName, e.TrackName)] = struct{}{}
		years[e.ISOYear] += e.MinutesPlayed
	}

	top := 0
	var topMinutes float64
	for year, m := range years {
		if m > topMinutes || (m == topMinutes && top != 0 && year < top) {
			top = year
			topMinutes = m
		}
	}

	return Stats{
		TotalHours:       minutes / 60,
		UniqueTracks:     len(tracks),
		MostListenedYear: top,
	}
}

// YearlyStats computes stats for the selected artist (or everything) within
// one ISO year.
func YearlyStats(events []history.Event, sel Selector, year int) Stats {
	return ComputeStats(history.FilterByWindow(FilterBySelector(events, sel), year, 0))
}

// Overview is the dashboard's header metrics row.
type Overview struct {
	FirstYear  int
	LastYear   int
	Artists    int
	Tracks     int
	TotalHours float64
}

// ComputeOverview computes the global metrics for the whole table.
func ComputeOverview(events []history.Event) Overview {
	var o Overview
	var minutes float64
	artists := make(map[string]struct{})
	tracks := make(map[EntityKey]struct{})
	for _, e := range events {
		minutes += e.MinutesPlayed
		artists[e.ArtistName] = struct{}{}
		tracks[TrackKey(e.ArtistName, e.TrackName)] = struct{}{}
		if o.FirstYear == 0 || e.ISOYear < o.FirstYear {
			o.FirstYear = e.ISOYear
		}
		if e.ISOYear > o.LastYear {
			o.LastYear = e.ISOYear
		}
	}
	o.Artists = len(artists)
	o.Tracks = len(tracks)
	o.TotalHours = minutes / 60
	return o
}

// Years lists the ISO years present in the table, newest first, for year
// pickers.
func Years(events []history.Event) []int {
	seen := make(map[int]struct{})
	for _, e := range events {
		seen[e.ISOYear] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for year := range seen {
		out = append(out, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
