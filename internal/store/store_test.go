package store

import (
	"testing"
	"time"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testEvents() []history.Event {
	events := []history.Event{
		{
			ArtistName: "Artist A",
			TrackName:  "Track 1",
			AlbumName:  "Album 1",
			EndTime:    time.Date(2023, time.January, 2, 10, 0, 0, 0, time.UTC),
			MsPlayed:   300000,
		},
		{
			ArtistName: "Artist B",
			TrackName:  "Track 2",
			AlbumName:  "Album 2",
			EndTime:    time.Date(2023, time.June, 1, 20, 30, 0, 0, time.UTC),
			MsPlayed:   600000,
		},
	}
	return history.Derive(events, 0)
}

func TestSaveAndLoadDataset(t *testing.T) {
	s := setupTestStore(t)
	want := testEvents()

	if err := s.SaveDataset("digest-1", want); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	got, ok, err := s.LoadDataset("digest-1", 0)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadDatasetMiss(t *testing.T) {
	s := setupTestStore(t)

	events, ok, err := s.LoadDataset("absent", 0)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if ok || events != nil {
		t.Errorf("expected miss, got ok=%v events=%v", ok, events)
	}
}

func TestLoadDatasetAppliesOffset(t *testing.T) {
	s := setupTestStore(t)
	events := history.Derive([]history.Event{{
		ArtistName: "Artist A",
		TrackName:  "Track 1",
		EndTime:    time.Date(2023, time.January, 1, 23, 30, 0, 0, time.UTC),
		MsPlayed:   300000,
	}}, 0)

	if err := s.SaveDataset("digest-1", events); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	// The stored base fields are option-independent; the calendar fields
	// come from the offset given at load time.
	got, ok, err := s.LoadDataset("digest-1", time.Hour)
	if err != nil || !ok {
		t.Fatalf("LoadDataset failed: ok=%v err=%v", ok, err)
	}
	if got[0].DayOfWeek != "Monday" {
		t.Errorf("DayOfWeek = %q, want Monday", got[0].DayOfWeek)
	}
	wantDate := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !got[0].Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", got[0].Date, wantDate)
	}
}

func TestHas(t *testing.T) {
	s := setupTestStore(t)

	ok, err := s.Has("digest-1")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if ok {
		t.Error("empty store should not have digest-1")
	}

	if err := s.SaveDataset("digest-1", testEvents()); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}
	ok, err = s.Has("digest-1")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !ok {
		t.Error("saved digest should be present")
	}
}

func TestSaveDatasetReplaces(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveDataset("digest-1", testEvents()); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}
	if err := s.SaveDataset("digest-1", testEvents()[:1]); err != nil {
		t.Fatalf("second SaveDataset failed: %v", err)
	}

	got, ok, err := s.LoadDataset("digest-1", 0)
	if err != nil || !ok {
		t.Fatalf("LoadDataset failed: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 {
		t.Errorf("loaded %d events after replace, want 1", len(got))
	}
}

func TestClear(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveDataset("digest-1", testEvents()); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}
	if err := s.SaveDataset("digest-2", testEvents()); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	for _, digest := range []string{"digest-1", "digest-2"} {
		if _, ok, _ := s.LoadDataset(digest, 0); ok {
			t.Errorf("dataset %s survived Clear", digest)
		}
	}
}
