package history

import "time"

// WeekdayNames is the display ordering of weekdays, Monday first. Dow indexes
// into it.
var WeekdayNames = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Raw is one record from a streaming-history export, before validation.
type Raw struct {
	ArtistName string
	TrackName  string
	AlbumName  string
	EndTime    string
	MsPlayed   int64
}

// Event is one normalized play. The calendar fields are derived from EndTime
// (after the configured offset) and use the ISO 8601 week calendar, so
// ISOYear can differ from the calendar year near year boundaries.
type Event struct {
	ArtistName string
	TrackName  string
	AlbumName  string
	EndTime    time.Time
	MsPlayed   int64

	Date          time.Time // midnight UTC of the attributed calendar day
	Dow           int       // 0-6, Monday=0
	DayOfWeek     string
	ISOWeek       int // 1-53
	ISOYear       int
	MinutesPlayed float64
}

// Derive recomputes the calendar fields of every event after shifting its
// end time by offset. The input slice is not modified.
func Derive(events []Event, offset time.Duration) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		derive(&e, offset)
		out[i] = e
	}
	return out
}

func derive(e *Event, offset time.Duration) {
	shifted := e.EndTime.UTC().Add(offset)
	e.Date = time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC)
	e.Dow = (int(shifted.Weekday()) + 6) % 7
	e.DayOfWeek = WeekdayNames[e.Dow]
	e.ISOYear, e.ISOWeek = shifted.ISOWeek()
	e.MinutesPlayed = float64(e.MsPlayed) / 60000
}
