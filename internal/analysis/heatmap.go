package analysis

import (
	"time"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

// HeatmapBuckets lists the intensity buckets in ascending order. Boundaries
// are half-open below and closed above, with the top bucket open-ended.
var HeatmapBuckets = []string{"0 min", "1-5 min", "5-15 min", "15-60 min", "60+ min"}

// HeatmapCell is one (week, day) cell of a year's listening grid.
type HeatmapCell struct {
	ISOYear      int
	Week         int
	Dow          int // 0-6, Monday=0
	Day          string
	Date         time.Time
	TotalMinutes float64
	Bucket       string
}

// Heatmap is the complete grid for one ISO year: every (week, day) pair of
// the year's calendar appears exactly once, zero-filled where no listening
// occurred.
type Heatmap struct {
	Year    int
	Cells   []HeatmapCell
	Skipped int // cells dropped because no calendar date could be rebuilt
}

func bucketFor(minutes float64) string {
	switch {
	case minutes <= 1:
		return HeatmapBuckets[0]
	case minutes <= 5:
		return HeatmapBuckets[1]
	case minutes <= 15:
		return HeatmapBuckets[2]
	case minutes <= 60:
		return HeatmapBuckets[3]
	default:
		return HeatmapBuckets[4]
	}
}

// ISOWeeks reports how many ISO weeks the given week-year has (52 or 53).
// December 28th always falls in the last ISO week of its year.
func ISOWeeks(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// dateFromISO rebuilds the calendar date of an (ISO year, week, weekday)
// triple. ok is false when the triple names no real date in that week-year.
func dateFromISO(year, week, dow int) (time.Time, bool) {
	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday1 := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	d := monday1.AddDate(0, 0, (week-1)*7+dow)
	y, w := d.ISOWeek()
	if y != year || w != week {
		return time.Time{}, false
	}
	return d, true
}

// BuildHeatmap aggregates minutes into a gapless (week x day) grid for one
// ISO year. Cells with no plays carry zero minutes and a rebuilt date; cells
// whose date cannot be rebuilt are skipped and counted rather than failing
// the whole build.
func BuildHeatmap(events []history.Event, year int) Heatmap {
	type cellKey struct{ week, dow int }
	minutes := make(map[cellKey]float64)
	dates := make(map[cellKey]time.Time)
	for _, e := range history.FilterByWindow(events, year, 0) {
		k := cellKey{e.ISOWeek, e.Dow}
		minutes[k] += e.MinutesPlayed
		dates[k] = e.Date
	}

	weeks := ISOWeeks(year)
	h := Heatmap{Year: year, Cells: make([]HeatmapCell, 0, weeks*7)}
	for week := 1; week <= weeks; week++ {
		for dow := 0; dow < 7; dow++ {
			k := cellKey{week, dow}
			date, ok := dates[k]
			if !ok {
				date, ok = dateFromISO(year, week, dow)
				if !ok {
					h.Skipped++
					continue
				}
			}
			total := minutes[k]
			h.Cells = append(h.Cells, HeatmapCell{
				ISOYear:      year,
				Week:         week,
				Dow:          dow,
				Day:          history.WeekdayNames[dow],
				Date:         date,
				TotalMinutes: total,
				Bucket:       bucketFor(total),
			})
		}
	}
	return h
}

// MonthLabelWeeks returns, per month, the ISO week that anchors the month's
// axis label: the week of the 3rd, except December which uses the 15th so
// the label stays inside the year's final weeks.
func MonthLabelWeeks(year int) [12]int {
	var weeks [12]int
	for m := time.January; m <= time.December; m++ {
		day := 3
		if m == time.December {
			day = 15
		}
		_, w := time.Date(year, m, day, 0, 0, 0, 0, time.UTC).ISOWeek()
		weeks[m-1] = w
	}
	return weeks
}
