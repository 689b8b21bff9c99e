package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aplaceintime/api/internal/config"
)

const geniusProvider = "Genius"

// GeniusClient searches songs on Genius
type GeniusClient struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// GeniusSong is the result part of a search hit
type GeniusSong struct {
	ID                       int64  `json:"id"`
	Title                    string `json:"title"`
	URL                      string `json:"url"`
	SongArtImageThumbnailURL string `json:"song_art_image_thumbnail_url"`
	PrimaryArtist            struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
}

type GeniusHit struct {
	Result *GeniusSong `json:"result"`
}

func NewGeniusClient(cfg *config.GeniusConfig) *GeniusClient {
	return &GeniusClient{
		httpClient:  newHTTPClient(),
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
	}
}

func (c *GeniusClient) IsConfigured() bool {
	return c.accessToken != ""
}

// Search returns every hit Genius reports for query
func (c *GeniusClient) Search(ctx context.Context, query string) ([]GeniusHit, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	body, err := doRequest(c.httpClient, req, geniusProvider)
	if err != nil {
		return nil, err
	}

	var result struct {
		Response struct {
			Hits []GeniusHit `json:"hits"`
		} `json:"response"`
	}
	if err := decodeJSON(body, geniusProvider, &result); err != nil {
		return nil, err
	}
	return result.Response.Hits, nil
}
