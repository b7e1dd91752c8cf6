// Package artwork looks up album cover art through the iTunes Search API.
// Lookups are best-effort: an empty URL means no artwork, and failures are
// never surfaced as errors on the display path.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	retry "github.com/avast/retry-go"
	"github.com/goccy/go-json"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://itunes.apple.com/search"

// Client queries the iTunes Search API with a short timeout, a retry policy
// for transient failures, and a one-request-per-second limiter.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Limiter *rate.Limiter
}

func New() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: defaultBaseURL,
		Limiter: rate.NewLimiter(rate.Every(1*time.Second), 1),
	}
}

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	editionWords  = regexp.MustCompile(`\b(remastered|deluxe|edition|single|ep|version)\b`)
	whitespace    = regexp.MustCompile(`\s+`)
	stripMarks    = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeTerm reduces an album or artist name to the plain-ASCII search
// term the iTunes API matches best: diacritics stripped, lowercased,
// parentheticals and edition suffixes removed, "&" spelled out, whitespace
// collapsed.
func NormalizeTerm(text string) string {
	if text == "" {
		return ""
	}

	if ascii, _, err := transform.String(stripMarks, text); err == nil {
		text = ascii
	}
	var b strings.Builder
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	text = strings.ToLower(b.String())
	text = parenthetical.ReplaceAllString(text, "")
	text = editionWords.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&", "and")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

type searchResponse struct {
	Results []struct {
		ArtworkURL100 string `json:"artworkUrl100"`
	} `json:"results"`
}

// AlbumArt returns an artwork URL for the album, or "" when none was found
// or the lookup failed.
func (c *Client) AlbumArt(ctx context.Context, artist, album string) string {
	params := url.Values{
		"term":   {strings.TrimSpace(NormalizeTerm(album) + " " + NormalizeTerm(artist))},
		"media":  {"music"},
		"entity": {"album"},
		"limit":  {"5"},
	}

	var parsed searchResponse
	err := retry.Do(
		func() error {
			if err := c.Limiter.Wait(ctx); err != nil {
				return err
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
			if err != nil {
				return err
			}
			resp, err := c.HTTP.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return &statusError{Code: resp.StatusCode}
			}
			return json.NewDecoder(resp.Body).Decode(&parsed)
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.RetryIf(isRetryable),
	)
	if err != nil {
		return ""
	}

	if len(parsed.Results) == 0 {
		return ""
	}
	return parsed.Results[0].ArtworkURL100
}

type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("itunes search: status %d", e.Code)
}

// Transient upstream failures are worth retrying; client errors and context
// cancellation are not.
func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	var ne net.Error
	return errors.As(err, &ne)
}
