package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aplaceintime/api/internal/config"
)

const musixmatchProvider = "Musixmatch"

// The proxy has shipped several payload shapes; the first non-empty string wins.
var lyricsPaths = []string{"body.lyrics.lyrics_body", "lyrics.lyrics_body", "lyrics"}

// MusixmatchClient fetches lyrics through the RapidAPI Musixmatch proxy
type MusixmatchClient struct {
	httpClient *http.Client
	baseURL    string
	host       string
	apiKey     string
}

func NewMusixmatchClient(cfg *config.MusixmatchConfig) *MusixmatchClient {
	return &MusixmatchClient{
		httpClient: newHTTPClient(),
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		host:       cfg.Host,
		apiKey:     cfg.RapidAPIKey,
	}
}

func (c *MusixmatchClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Lyrics returns the raw lyrics body for track by artist. found is false when
// the upstream answered but carried no lyrics.
func (c *MusixmatchClient) Lyrics(ctx context.Context, track, artist string) (lyrics string, found bool, err error) {
	if !c.IsConfigured() {
		return "", false, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("t", track)
	query.Set("a", artist)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/songs/lyrics?"+query.Encode(), nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	body, err := doRequest(c.httpClient, req, musixmatchProvider)
	if err != nil {
		return "", false, err
	}

	for _, r := range gjson.GetManyBytes(body, lyricsPaths...) {
		if r.Type == gjson.String && r.Str != "" {
			return r.Str, true, nil
		}
	}
	return "", false, nil
}
