package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aplaceintime/api/internal/config"
	"github.com/aplaceintime/api/internal/tokencache"
)

const spotifyProvider = "Spotify"

// SpotifyClient calls the Spotify Web API with a client-credentials token
// it caches itself
type SpotifyClient struct {
	httpClient   *http.Client
	accountsURL  string
	apiBaseURL   string
	clientID     string
	clientSecret string
	tokens       *tokencache.Cache
}

type SpotifyImage struct {
	URL string `json:"url"`
}

type SpotifyExternalURLs struct {
	Spotify string `json:"spotify"`
}

type SpotifyArtist struct {
	Name         string              `json:"name"`
	Images       []SpotifyImage      `json:"images"`
	Genres       []string            `json:"genres"`
	ExternalURLs SpotifyExternalURLs `json:"external_urls"`
}

type SpotifyTrack struct {
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	ExternalURLs SpotifyExternalURLs `json:"external_urls"`
	Album        struct {
		Images []SpotifyImage `json:"images"`
	} `json:"album"`
}

// ImageURL returns the URL of the i-th album image, or "".
func (t *SpotifyTrack) ImageURL(i int) string {
	if i < len(t.Album.Images) {
		return t.Album.Images[i].URL
	}
	return ""
}

// NewSpotifyClient creates a new Spotify Web API client
func NewSpotifyClient(cfg *config.SpotifyConfig, opts ...tokencache.Option) *SpotifyClient {
	c := &SpotifyClient{
		httpClient:   newHTTPClient(),
		accountsURL:  strings.TrimSuffix(cfg.AccountsURL, "/"),
		apiBaseURL:   strings.TrimSuffix(cfg.APIBaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
	c.tokens = tokencache.New(c.fetchToken, opts...)
	return c
}

// IsConfigured returns true if both client id and secret are set
func (c *SpotifyClient) IsConfigured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// Artist fetches artist details
func (c *SpotifyClient) Artist(ctx context.Context, artistID string) (*SpotifyArtist, error) {
	var artist SpotifyArtist
	if err := c.get(ctx, "/artists/"+url.PathEscape(artistID), nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ArtistTopTracks fetches up to limit of the artist's most played tracks in market
func (c *SpotifyClient) ArtistTopTracks(ctx context.Context, artistID, market string, limit int) ([]SpotifyTrack, error) {
	query := url.Values{}
	query.Set("market", market)
	query.Set("limit", strconv.Itoa(limit))

	var result struct {
		Tracks []SpotifyTrack `json:"tracks"`
	}
	if err := c.get(ctx, "/artists/"+url.PathEscape(artistID)+"/top-tracks", query, &result); err != nil {
		return nil, err
	}
	return result.Tracks, nil
}

// PlaylistTracks fetches the first limit tracks of a playlist. Entries whose
// track was removed come back nil.
func (c *SpotifyClient) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]*SpotifyTrack, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("fields", "items(track(name,artists(name),external_urls(spotify),album(images)))")

	var result struct {
		Items []struct {
			Track *SpotifyTrack `json:"track"`
		} `json:"items"`
	}
	if err := c.get(ctx, "/playlists/"+url.PathEscape(playlistID)+"/tracks", query, &result); err != nil {
		return nil, err
	}

	tracks := make([]*SpotifyTrack, len(result.Items))
	for i, item := range result.Items {
		tracks[i] = item.Track
	}
	return tracks, nil
}

func (c *SpotifyClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	endpoint := c.apiBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	body, err := doRequest(c.httpClient, req, spotifyProvider)
	if err != nil {
		return err
	}
	return decodeJSON(body, spotifyProvider, out)
}

// fetchToken runs the client-credentials grant against the accounts service
func (c *SpotifyClient) fetchToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	body, err := doRequest(c.httpClient, req, spotifyProvider)
	if err != nil {
		return "", 0, err
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := decodeJSON(body, spotifyProvider, &tr); err != nil {
		return "", 0, err
	}
	if tr.AccessToken == "" {
		return "", 0, &GatewayError{Provider: spotifyProvider, Err: errors.New("token response has no access_token")}
	}
	return tr.AccessToken, time.Duration(tr.ExpiresIn) * time.Second, nil
}
