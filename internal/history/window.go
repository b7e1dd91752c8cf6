package history

import "time"

// FilterByWindow restricts events to one ISO week-year and, when month is
// nonzero, to one calendar month within it. The result is empty when nothing
// matches; it is never an error.
func FilterByWindow(events []Event, year int, month time.Month) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.ISOYear != year {
			continue
		}
		if month != 0 && e.Date.Month() != month {
			continue
		}
		out = append(out, e)
	}
	return out
}
