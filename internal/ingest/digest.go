package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

// Digest identifies an uploaded file set plus the normalization options that
// shaped it. Equal digests mean the cached dataset can be reused as-is.
// Paths are hashed in sorted order by base name, so listing the same files
// differently yields the same digest.
func Digest(paths []string, opts history.Options) (string, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	h := sha256.New()
	fmt.Fprintf(h, "min_ms=%d min_artist=%g offset=%s\n", opts.MinMsPlayed, opts.MinArtistMinutes, opts.Offset)
	for _, path := range sorted {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		fmt.Fprintf(h, "%s %d\n", filepath.Base(path), len(data))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
