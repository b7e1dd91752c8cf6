package web

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tsimons/spotify-history-tools/internal/analysis"
	"github.com/tsimons/spotify-history-tools/internal/history"
)

// Handlers computes responses from the in-memory event table. Every request
// recomputes from scratch; the aggregation engine is pure, so concurrent
// requests need no locking.
type Handlers struct {
	events []history.Event
}

func NewHandlers(events []history.Event) *Handlers {
	return &Handlers{events: events}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type aggregateRow struct {
	Artist       string  `json:"artist"`
	Name         string  `json:"name,omitempty"`
	TotalMinutes float64 `json:"total_minutes"`
	Hours        float64 `json:"hours"`
	Listens      int     `json:"listens"`
	Rank         int     `json:"rank"`
}

type leaderboardResponse struct {
	Rows         []aggregateRow `json:"rows"`
	DisplayOrder []string       `json:"display_order"`
}

func toLeaderboardResponse(lb analysis.Leaderboard) leaderboardResponse {
	rows := make([]aggregateRow, len(lb.Rows))
	for i, a := range lb.Rows {
		rows[i] = aggregateRow{
			Artist:       a.Key.Artist,
			Name:         a.Key.Name,
			TotalMinutes: a.TotalMinutes,
			Hours:        a.Hours(),
			Listens:      a.Listens,
			Rank:         a.Rank,
		}
	}
	return leaderboardResponse{Rows: rows, DisplayOrder: lb.DisplayOrder}
}

func topNParam(r *http.Request, def int) int {
	if v := r.URL.Query().Get("n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// selectorParam builds a selector from the optional "artist" query
// parameter; its absence means all entities.
func selectorParam(r *http.Request) analysis.Selector {
	if artist := r.URL.Query().Get("artist"); artist != "" {
		return analysis.Specific(analysis.ArtistKey(artist))
	}
	return analysis.AllEntities()
}

// windowed applies the optional "year" query parameter.
func (h *Handlers) windowed(r *http.Request) ([]history.Event, error) {
	v := r.URL.Query().Get("year")
	if v == "" {
		return h.events, nil
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return history.FilterByWindow(h.events, year, 0), nil
}

func yearParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "year"))
}

type overviewResponse struct {
	FirstYear  int     `json:"first_year"`
	LastYear   int     `json:"last_year"`
	Artists    int     `json:"artists"`
	Tracks     int     `json:"tracks"`
	TotalHours float64 `json:"total_hours"`
	Years      []int   `json:"years"`
}

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	o := analysis.ComputeOverview(h.events)
	writeJSON(w, http.StatusOK, overviewResponse{
		FirstYear:  o.FirstYear,
		LastYear:   o.LastYear,
		Artists:    o.Artists,
		Tracks:     o.Tracks,
		TotalHours: o.TotalHours,
		Years:      analysis.Years(h.events),
	})
}

func (h *Handlers) TopArtists(w http.ResponseWriter, r *http.Request) {
	events, err := h.windowed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	writeJSON(w, http.StatusOK, toLeaderboardResponse(analysis.TopArtists(events, topNParam(r, 40))))
}

func (h *Handlers) TopAlbums(w http.ResponseWriter, r *http.Request) {
	events, err := h.windowed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	writeJSON(w, http.StatusOK, toLeaderboardResponse(analysis.TopAlbums(events, topNParam(r, 40))))
}

func (h *Handlers) TopSongs(w http.ResponseWriter, r *http.Request) {
	events, err := h.windowed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	writeJSON(w, http.StatusOK, toLeaderboardResponse(analysis.TopSongs(events, topNParam(r, 50))))
}

// monthParam parses the optional "month" query parameter (1-12).
func monthParam(r *http.Request) (time.Month, error) {
	v := r.URL.Query().Get("month")
	if v == "" {
		return 0, nil
	}
	m, err := strconv.Atoi(v)
	if err != nil || m < 1 || m > 12 {
		return 0, strconv.ErrRange
	}
	return time.Month(m), nil
}

func (h *Handlers) TrackLeaderboard(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}
	window := history.FilterByWindow(analysis.FilterBySelector(h.events, selectorParam(r)), year, month)
	writeJSON(w, http.StatusOK, toLeaderboardResponse(analysis.TrackLeaderboard(window, topNParam(r, 0))))
}

func (h *Handlers) AlbumLeaderboard(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}
	window := history.FilterByWindow(analysis.FilterBySelector(h.events, selectorParam(r)), year, month)
	writeJSON(w, http.StatusOK, toLeaderboardResponse(analysis.AlbumLeaderboard(window, topNParam(r, 0))))
}

type heatmapCell struct {
	Week         int     `json:"week"`
	Dow          int     `json:"dow"`
	Day          string  `json:"day"`
	Date         string  `json:"date"`
	TotalMinutes float64 `json:"total_minutes"`
	Bucket       string  `json:"bucket"`
}

type heatmapResponse struct {
	Year       int           `json:"year"`
	Cells      []heatmapCell `json:"cells"`
	Skipped    int           `json:"skipped"`
	MonthWeeks [12]int       `json:"month_weeks"`
	Buckets    []string      `json:"buckets"`
}

func (h *Handlers) Heatmap(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	grid := analysis.BuildHeatmap(analysis.FilterBySelector(h.events, selectorParam(r)), year)
	cells := make([]heatmapCell, len(grid.Cells))
	for i, c := range grid.Cells {
		cells[i] = heatmapCell{
			Week:         c.Week,
			Dow:          c.Dow,
			Day:          c.Day,
			Date:         c.Date.Format("2006-01-02"),
			TotalMinutes: c.TotalMinutes,
			Bucket:       c.Bucket,
		}
	}
	writeJSON(w, http.StatusOK, heatmapResponse{
		Year:       year,
		Cells:      cells,
		Skipped:    grid.Skipped,
		MonthWeeks: analysis.MonthLabelWeeks(year),
		Buckets:    analysis.HeatmapBuckets,
	})
}

type rankResponse struct {
	// Rank is null when no single-entity rank applies or the entity is
	// absent from the window; the dashboard renders that as a dash.
	Rank *int `json:"rank"`
}

func (h *Handlers) ArtistRank(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing artist name")
		return
	}

	sel := analysis.Specific(analysis.ArtistKey(name))
	var rank int
	var ok bool
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		rank, ok = analysis.YearlyArtistRank(h.events, sel, year)
	} else {
		rank, ok = analysis.ArtistRank(h.events, sel)
	}

	var resp rankResponse
	if ok {
		resp.Rank = &rank
	}
	writeJSON(w, http.StatusOK, resp)
}

type statsResponse struct {
	TotalHours       float64 `json:"total_hours"`
	UniqueTracks     int     `json:"unique_tracks"`
	MostListenedYear int     `json:"most_listened_year,omitempty"`
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	sel := selectorParam(r)

	var st analysis.Stats
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		st = analysis.YearlyStats(h.events, sel, year)
	} else {
		st = analysis.ComputeStats(analysis.FilterBySelector(h.events, sel))
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalHours:       st.TotalHours,
		UniqueTracks:     st.UniqueTracks,
		MostListenedYear: st.MostListenedYear,
	})
}

type monthMinutes struct {
	Month        string  `json:"month"`
	TotalMinutes float64 `json:"total_minutes"`
}

func (h *Handlers) Months(w http.ResponseWriter, r *http.Request) {
	series := analysis.MinutesByMonth(analysis.FilterBySelector(h.events, selectorParam(r)))
	out := make([]monthMinutes, len(series))
	for i, m := range series {
		out[i] = monthMinutes{Month: m.Month, TotalMinutes: m.TotalMinutes}
	}
	writeJSON(w, http.StatusOK, out)
}
