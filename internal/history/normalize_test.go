package history

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeDerivesCalendarFields(t *testing.T) {
	raw := []Raw{
		{ArtistName: "Artist A", TrackName: "Track 1", AlbumName: "Album 1", EndTime: "2023-01-01T12:00:00Z", MsPlayed: 600000},
	}

	events, err := Normalize(raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	e := events[0]
	// 2023-01-01 is a Sunday in ISO week 52 of 2022.
	if e.ISOYear != 2022 {
		t.Errorf("ISOYear = %d, want 2022", e.ISOYear)
	}
	if e.ISOWeek != 52 {
		t.Errorf("ISOWeek = %d, want 52", e.ISOWeek)
	}
	if e.Dow != 6 {
		t.Errorf("Dow = %d, want 6", e.Dow)
	}
	if e.DayOfWeek != "Sunday" {
		t.Errorf("DayOfWeek = %q, want Sunday", e.DayOfWeek)
	}
	if e.MinutesPlayed != 10 {
		t.Errorf("MinutesPlayed = %v, want 10", e.MinutesPlayed)
	}
	wantDate := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !e.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", e.Date, wantDate)
	}
}

func TestNormalizeAcceptsMinutePrecisionLayout(t *testing.T) {
	raw := []Raw{
		{ArtistName: "Artist A", TrackName: "Track 1", EndTime: "2021-03-01 17:32", MsPlayed: 600000},
	}

	events, err := Normalize(raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	want := time.Date(2021, time.March, 1, 17, 32, 0, 0, time.UTC)
	if !events[0].EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", events[0].EndTime, want)
	}
}

func TestNormalizeMalformedTimestamp(t *testing.T) {
	raw := []Raw{
		{ArtistName: "Artist A", TrackName: "Track 1", EndTime: "2023-01-01T12:00:00Z", MsPlayed: 600000},
		{ArtistName: "Artist B", TrackName: "Track 2", EndTime: "not a time", MsPlayed: 600000},
	}

	_, err := Normalize(raw, DefaultOptions())
	var malformed *MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRecordError, got %v", err)
	}
	if malformed.Index != 1 || malformed.Field != "endTime" {
		t.Errorf("got index %d field %q, want index 1 field endTime", malformed.Index, malformed.Field)
	}
}

func TestNormalizeNegativeDuration(t *testing.T) {
	raw := []Raw{
		{ArtistName: "Artist A", TrackName: "Track 1", EndTime: "2023-01-01T12:00:00Z", MsPlayed: -1},
	}

	_, err := Normalize(raw, DefaultOptions())
	var malformed *MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRecordError, got %v", err)
	}
	if malformed.Field != "msPlayed" {
		t.Errorf("got field %q, want msPlayed", malformed.Field)
	}
}

func TestNormalizeFilters(t *testing.T) {
	raw := []Raw{
		{ArtistName: "Artist A", TrackName: "Track 1", EndTime: "2023-01-02T10:00:00Z", MsPlayed: 400000},
		{ArtistName: "Artist A", TrackName: "Track 1", EndTime: "2023-01-03T10:00:00Z", MsPlayed: 400000},
		// Above the per-play floor but the artist total (0.83 min) is under
		// the artist threshold, so Artist B disappears entirely.
		{ArtistName: "Artist B", TrackName: "Track 2", EndTime: "2023-06-01T10:00:00Z", MsPlayed: 50000},
		// Exactly at the per-play floor: dropped.
		{ArtistName: "Artist A", TrackName: "Track 1", EndTime: "2023-01-04T10:00:00Z", MsPlayed: 10000},
	}

	events, err := Normalize(raw, Options{MinMsPlayed: 10000, MinArtistMinutes: 5})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, e := range events {
		if e.ArtistName != "Artist A" {
			t.Errorf("unexpected artist %q", e.ArtistName)
		}
	}
}

// Re-running normalization on its own output must not drop anything else:
// the two filters are a fixed point after the first pass.
func TestNormalizeFiltersAreFixedPoint(t *testing.T) {
	raw := []Raw{
		{ArtistName: "Artist A", TrackName: "Track 1", EndTime: "2023-01-02T10:00:00Z", MsPlayed: 400000},
		{ArtistName: "Artist A", TrackName: "Track 2", EndTime: "2023-01-03T10:00:00Z", MsPlayed: 200000},
		{ArtistName: "Artist B", TrackName: "Track 3", EndTime: "2023-06-01T10:00:00Z", MsPlayed: 50000},
		{ArtistName: "Artist C", TrackName: "Track 4", EndTime: "2023-06-02T10:00:00Z", MsPlayed: 5000},
	}

	once, err := Normalize(raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	again := make([]Raw, 0, len(once))
	for _, e := range once {
		again = append(again, Raw{
			ArtistName: e.ArtistName,
			TrackName:  e.TrackName,
			AlbumName:  e.AlbumName,
			EndTime:    e.EndTime.Format(time.RFC3339),
			MsPlayed:   e.MsPlayed,
		})
	}

	twice, err := Normalize(again, DefaultOptions())
	if err != nil {
		t.Fatalf("second Normalize failed: %v", err)
	}
	if len(twice) != len(once) {
		t.Fatalf("second pass changed event count: %d vs %d", len(twice), len(once))
	}
	for i := range twice {
		if twice[i] != once[i] {
			t.Errorf("event %d changed across passes: %+v vs %+v", i, twice[i], once[i])
		}
	}
}

func TestNormalizeOffsetShiftsAttribution(t *testing.T) {
	raw := []Raw{
		{ArtistName: "Artist A", TrackName: "Track 1", EndTime: "2023-01-01T23:30:00Z", MsPlayed: 600000},
	}

	events, err := Normalize(raw, Options{MinMsPlayed: 10000, MinArtistMinutes: 5, Offset: time.Hour})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	e := events[0]
	wantDate := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !e.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", e.Date, wantDate)
	}
	if e.DayOfWeek != "Monday" {
		t.Errorf("DayOfWeek = %q, want Monday", e.DayOfWeek)
	}
	if e.ISOYear != 2023 || e.ISOWeek != 1 {
		t.Errorf("ISO week = %d/%d, want 2023/1", e.ISOYear, e.ISOWeek)
	}
	// The end time itself stays put; only attribution moves.
	if !e.EndTime.Equal(time.Date(2023, time.January, 1, 23, 30, 0, 0, time.UTC)) {
		t.Errorf("EndTime moved: %v", e.EndTime)
	}
}
