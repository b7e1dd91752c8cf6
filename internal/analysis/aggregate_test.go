package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

func play(artist, album, track, end string, ms int64) history.Event {
	ts, err := time.Parse(time.RFC3339, end)
	if err != nil {
		panic(err)
	}
	e := history.Event{ArtistName: artist, AlbumName: album, TrackName: track, EndTime: ts, MsPlayed: ms}
	return history.Derive([]history.Event{e}, 0)[0]
}

func TestAggregateByConservesMinutes(t *testing.T) {
	events := []history.Event{
		play("Artist A", "Album 1", "Track 1", "2023-01-02T10:00:00Z", 300000),
		play("Artist A", "Album 1", "Track 2", "2023-01-03T10:00:00Z", 450000),
		play("Artist B", "Album 2", "Track 3", "2023-01-04T10:00:00Z", 600000),
	}

	var want float64
	for _, e := range events {
		want += e.MinutesPlayed
	}

	for _, kind := range []EntityKind{Artists, Albums, Tracks} {
		var got float64
		for _, a := range AggregateBy(events, kind, ByMinutes) {
			got += a.TotalMinutes
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("kind %d: aggregated minutes %v, want %v", kind, got, want)
		}
	}
}

func TestAggregateByRanksAreDense(t *testing.T) {
	events := []history.Event{
		play("Artist A", "Album 1", "Track 1", "2023-01-02T10:00:00Z", 300000),
		play("Artist B", "Album 2", "Track 2", "2023-01-03T10:00:00Z", 600000),
		play("Artist C", "Album 3", "Track 3", "2023-01-04T10:00:00Z", 900000),
	}

	aggs := AggregateBy(events, Artists, ByMinutes)
	if len(aggs) != 3 {
		t.Fatalf("expected 3 aggregates, got %d", len(aggs))
	}
	for i, a := range aggs {
		if a.Rank != i+1 {
			t.Errorf("position %d has rank %d", i, a.Rank)
		}
	}
	if aggs[0].Key.Artist != "Artist C" {
		t.Errorf("rank 1 is %q, want Artist C", aggs[0].Key.Artist)
	}
}

func TestAggregateByBreaksTiesByKey(t *testing.T) {
	events := []history.Event{
		play("Zebra", "Album 1", "Track 1", "2023-01-02T10:00:00Z", 300000),
		play("Aardvark", "Album 2", "Track 2", "2023-01-03T10:00:00Z", 300000),
	}

	aggs := AggregateBy(events, Artists, ByMinutes)
	if aggs[0].Key.Artist != "Aardvark" || aggs[1].Key.Artist != "Zebra" {
		t.Errorf("tie not broken alphabetically: %q then %q", aggs[0].Key.Artist, aggs[1].Key.Artist)
	}
}

func TestAggregateByListens(t *testing.T) {
	events := []history.Event{
		// One long play versus three short ones of equal total.
		play("Artist A", "Album 1", "Long Track", "2023-01-02T10:00:00Z", 900000),
		play("Artist A", "Album 1", "Short Track", "2023-01-03T10:00:00Z", 300000),
		play("Artist A", "Album 1", "Short Track", "2023-01-04T10:00:00Z", 300000),
		play("Artist A", "Album 1", "Short Track", "2023-01-05T10:00:00Z", 300000),
	}

	aggs := AggregateBy(events, Tracks, ByListens)
	if aggs[0].Key.Name != "Short Track" {
		t.Errorf("rank 1 is %q, want Short Track", aggs[0].Key.Name)
	}
	if aggs[0].Listens != 3 || aggs[1].Listens != 1 {
		t.Errorf("listens = %d, %d; want 3, 1", aggs[0].Listens, aggs[1].Listens)
	}
}

func TestAggregateByMinutesThenListens(t *testing.T) {
	events := []history.Event{
		play("Artist A", "Album 1", "Track X", "2023-01-02T10:00:00Z", 300000),
		play("Artist A", "Album 1", "Track X", "2023-01-03T10:00:00Z", 300000),
		play("Artist A", "Album 1", "Track Y", "2023-01-04T10:00:00Z", 600000),
	}

	// Equal minutes; Track X has more listens.
	aggs := AggregateBy(events, Tracks, ByMinutesThenListens)
	if aggs[0].Key.Name != "Track X" {
		t.Errorf("rank 1 is %q, want Track X", aggs[0].Key.Name)
	}
}

func TestAlbumIdentityIncludesArtist(t *testing.T) {
	events := []history.Event{
		play("Artist A", "Greatest Hits", "Track 1", "2023-01-02T10:00:00Z", 300000),
		play("Artist B", "Greatest Hits", "Track 2", "2023-01-03T10:00:00Z", 300000),
	}

	aggs := AggregateBy(events, Albums, ByMinutes)
	if len(aggs) != 2 {
		t.Fatalf("same-named albums by different artists collapsed: %d aggregates", len(aggs))
	}
}

func TestAggregateHours(t *testing.T) {
	a := Aggregate{TotalMinutes: 90}
	if a.Hours() != 1.5 {
		t.Errorf("Hours() = %v, want 1.5", a.Hours())
	}
}
