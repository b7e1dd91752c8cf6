package history

import (
	"testing"
	"time"
)

func windowEvent(end string, ms int64) Event {
	ts, err := time.Parse(time.RFC3339, end)
	if err != nil {
		panic(err)
	}
	e := Event{ArtistName: "Artist", TrackName: "Track", EndTime: ts, MsPlayed: ms}
	return Derive([]Event{e}, 0)[0]
}

func TestFilterByWindowYear(t *testing.T) {
	events := []Event{
		windowEvent("2022-06-01T10:00:00Z", 300000),
		windowEvent("2023-06-01T10:00:00Z", 300000),
		windowEvent("2023-07-01T10:00:00Z", 300000),
	}

	got := FilterByWindow(events, 2023, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 events in 2023, got %d", len(got))
	}
}

func TestFilterByWindowYearAndMonth(t *testing.T) {
	events := []Event{
		windowEvent("2023-05-31T10:00:00Z", 300000),
		windowEvent("2023-06-01T10:00:00Z", 300000),
		windowEvent("2023-06-30T10:00:00Z", 300000),
	}

	got := FilterByWindow(events, 2023, time.June)
	if len(got) != 2 {
		t.Fatalf("expected 2 events in June, got %d", len(got))
	}
}

// Window membership follows the ISO week-year, so the last days of
// December can belong to the following year's window.
func TestFilterByWindowUsesISOYear(t *testing.T) {
	events := []Event{
		// Tuesday in ISO week 1 of 2025.
		windowEvent("2024-12-31T10:00:00Z", 300000),
	}

	if got := FilterByWindow(events, 2024, 0); len(got) != 0 {
		t.Errorf("expected no events in 2024 window, got %d", len(got))
	}
	if got := FilterByWindow(events, 2025, 0); len(got) != 1 {
		t.Errorf("expected 1 event in 2025 window, got %d", len(got))
	}
}

func TestFilterByWindowEmpty(t *testing.T) {
	events := []Event{
		windowEvent("2023-06-01T10:00:00Z", 300000),
	}

	got := FilterByWindow(events, 1999, 0)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected 0 events, got %d", len(got))
	}
}
