// Package ingest reads Spotify streaming-history export files into raw
// records for normalization, and computes the digest that identifies an
// uploaded file set in the dataset cache.
package ingest

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

// record covers both export shapes: the account-data StreamingHistory#.json
// files and the extended endsong_#.json files.
type record struct {
	EndTime    string `json:"endTime"`
	ArtistName string `json:"artistName"`
	TrackName  string `json:"trackName"`
	AlbumName  string `json:"albumName"`
	MsPlayed   *int64 `json:"msPlayed"`

	TS          string `json:"ts"`
	MetaTrack   string `json:"master_metadata_track_name"`
	MetaArtist  string `json:"master_metadata_album_artist_name"`
	MetaAlbum   string `json:"master_metadata_album_album_name"`
	MsPlayedExt *int64 `json:"ms_played"`
}

func (r record) raw() (history.Raw, bool) {
	out := history.Raw{
		ArtistName: r.ArtistName,
		TrackName:  r.TrackName,
		AlbumName:  r.AlbumName,
		EndTime:    r.EndTime,
	}
	if r.MsPlayed != nil {
		out.MsPlayed = *r.MsPlayed
	}
	if r.TS != "" {
		out.EndTime = r.TS
	}
	if r.MetaArtist != "" {
		out.ArtistName = r.MetaArtist
	}
	if r.MetaTrack != "" {
		out.TrackName = r.MetaTrack
	}
	if r.MetaAlbum != "" {
		out.AlbumName = r.MetaAlbum
	}
	if r.MsPlayedExt != nil {
		out.MsPlayed = *r.MsPlayedExt
	}
	if out.ArtistName == "" {
		// Extended exports include podcast episodes, which carry null track
		// metadata.
		return history.Raw{}, false
	}
	return out, true
}

// Parse decodes one export file's contents.
func Parse(data []byte) ([]history.Raw, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	raws := make([]history.Raw, 0, len(records))
	for _, r := range records {
		if raw, ok := r.raw(); ok {
			raws = append(raws, raw)
		}
	}
	return raws, nil
}

// ReadFiles reads and parses every file, in sorted path order so record
// order matches digest order. Any unreadable or invalid file fails the whole
// batch.
func ReadFiles(paths []string) ([]history.Raw, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	var raws []history.Raw
	for _, path := range sorted {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		parsed, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		raws = append(raws, parsed...)
	}
	return raws, nil
}
