package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aplaceintime/api/internal/config"
)

func newFakeSpotify(t *testing.T, tokenCalls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		id, secret, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "cid", id)
		assert.Equal(t, "csecret", secret)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		_, _ = io.WriteString(w, `{"access_token":"spot-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v1/artists/art1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer spot-token", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"name":"Vinn","images":[{"url":"big.jpg"}],"genres":["rap"],"external_urls":{"spotify":"https://open.spotify.com/artist/art1"}}`)
	})
	mux.HandleFunc("/v1/artists/art1/top-tracks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "US", r.URL.Query().Get("market"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"tracks":[{"name":"One","external_urls":{"spotify":"u1"},"album":{"images":[{"url":"a"},{"url":"b"},{"url":"c"}]}}]}`)
	})
	mux.HandleFunc("/v1/playlists/pl1/tracks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Contains(t, r.URL.Query().Get("fields"), "items(track(")
		_, _ = io.WriteString(w, `{"items":[{"track":{"name":"Hit","artists":[{"name":"A"},{"name":"B"}],"external_urls":{"spotify":"u"},"album":{"images":[]}}},{"track":null}]}`)
	})
	mux.HandleFunc("/v1/artists/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"status":404,"message":"non existing id"}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestSpotifyClient(srv *httptest.Server) *SpotifyClient {
	return NewSpotifyClient(&config.SpotifyConfig{
		ClientID:     "cid",
		ClientSecret: "csecret",
		AccountsURL:  srv.URL,
		APIBaseURL:   srv.URL + "/v1",
	})
}

func TestSpotifyClient_ArtistAndTopTracks(t *testing.T) {
	var tokenCalls int32
	srv := newFakeSpotify(t, &tokenCalls)
	c := newTestSpotifyClient(srv)
	ctx := context.Background()

	artist, err := c.Artist(ctx, "art1")
	require.NoError(t, err)
	assert.Equal(t, "Vinn", artist.Name)
	assert.Equal(t, "big.jpg", artist.Images[0].URL)
	assert.Equal(t, []string{"rap"}, artist.Genres)

	tracks, err := c.ArtistTopTracks(ctx, "art1", "US", 3)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "c", tracks[0].ImageURL(2))
	assert.Equal(t, "", tracks[0].ImageURL(5))

	// token fetched once and reused
	assert.EqualValues(t, 1, atomic.LoadInt32(&tokenCalls))
}

func TestSpotifyClient_PlaylistTracks(t *testing.T) {
	var tokenCalls int32
	srv := newFakeSpotify(t, &tokenCalls)
	c := newTestSpotifyClient(srv)

	tracks, err := c.PlaylistTracks(context.Background(), "pl1", 5)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "Hit", tracks[0].Name)
	assert.Len(t, tracks[0].Artists, 2)
	assert.Nil(t, tracks[1])
}

func TestSpotifyClient_UpstreamError(t *testing.T) {
	var tokenCalls int32
	srv := newFakeSpotify(t, &tokenCalls)
	c := newTestSpotifyClient(srv)

	_, err := c.Artist(context.Background(), "missing")
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusNotFound, gwErr.StatusCode)
	assert.Contains(t, err.Error(), "non existing id")
}

func TestSpotifyClient_TokenFailureNotCached(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"invalid_client","error_description":"Invalid client secret"}`)
	}))
	defer srv.Close()
	c := newTestSpotifyClient(srv)

	for i := 0; i < 2; i++ {
		_, err := c.Artist(context.Background(), "art1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid client secret")
		assert.NotContains(t, err.Error(), "csecret")
	}
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.Nil(t, c.tokens.Current())
}

func TestSpotifyClient_NotConfigured(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := NewSpotifyClient(&config.SpotifyConfig{ClientID: "cid", AccountsURL: srv.URL, APIBaseURL: srv.URL})
	assert.False(t, c.IsConfigured())

	_, err := c.Artist(context.Background(), "art1")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

func TestGeniusClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "dark & stormy", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer gen-token", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"meta":{"status":200},"response":{"hits":[
			{"result":{"id":7,"title":"Storm","url":"https://genius.com/storm","song_art_image_thumbnail_url":"t.jpg","primary_artist":{"name":"Rain"}}}
		]}}`)
	}))
	defer srv.Close()

	c := NewGeniusClient(&config.GeniusConfig{AccessToken: "gen-token", BaseURL: srv.URL})
	hits, err := c.Search(context.Background(), "dark & stormy")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.EqualValues(t, 7, hits[0].Result.ID)
	assert.Equal(t, "Rain", hits[0].Result.PrimaryArtist.Name)
	assert.Equal(t, "t.jpg", hits[0].Result.SongArtImageThumbnailURL)
}

func TestGeniusClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"meta":{"status":401,"message":"This call requires an access_token."}}`)
	}))
	defer srv.Close()

	c := NewGeniusClient(&config.GeniusConfig{AccessToken: "gen-token", BaseURL: srv.URL})
	_, err := c.Search(context.Background(), "x")
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusUnauthorized, gwErr.StatusCode)
	assert.Contains(t, err.Error(), "requires an access_token")
}

func TestMusixmatchClient_LyricsPaths(t *testing.T) {
	for name, tc := range map[string]struct {
		body  string
		want  string
		found bool
	}{
		"body.lyrics.lyrics_body": {`{"body":{"lyrics":{"lyrics_body":"first"}}}`, "first", true},
		"lyrics.lyrics_body":      {`{"lyrics":{"lyrics_body":"second"}}`, "second", true},
		"lyrics string":           {`{"lyrics":"third"}`, "third", true},
		"prefers nested":          {`{"body":{"lyrics":{"lyrics_body":"nested"}},"lyrics":"flat"}`, "nested", true},
		"empty body skipped":      {`{"body":{"lyrics":{"lyrics_body":""}},"lyrics":"flat"}`, "flat", true},
		"none":                    {`{"status":"ok"}`, "", false},
		"lyrics object no body":   {`{"lyrics":{"other":1}}`, "", false},
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/songs/lyrics", r.URL.Path)
				assert.Equal(t, "Song", r.URL.Query().Get("t"))
				assert.Equal(t, "Singer", r.URL.Query().Get("a"))
				assert.Equal(t, "rapid-key", r.Header.Get("X-RapidAPI-Key"))
				assert.Equal(t, "mm.example", r.Header.Get("X-RapidAPI-Host"))
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			c := NewMusixmatchClient(&config.MusixmatchConfig{RapidAPIKey: "rapid-key", BaseURL: srv.URL, Host: "mm.example"})
			got, found, err := c.Lyrics(context.Background(), "Song", "Singer")
			require.NoError(t, err)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMusixmatchClient_UpstreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"You are not subscribed to this API."}`)
	}))
	defer srv.Close()

	c := NewMusixmatchClient(&config.MusixmatchConfig{RapidAPIKey: "rapid-key", BaseURL: srv.URL})
	_, _, err := c.Lyrics(context.Background(), "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "You are not subscribed to this API.")
}

func TestUpstreamMessage(t *testing.T) {
	assert.Equal(t, "m", upstreamMessage([]byte(`{"message":"m"}`), "500 Internal Server Error"))
	assert.Equal(t, "nested", upstreamMessage([]byte(`{"error":{"message":"nested"}}`), ""))
	assert.Equal(t, "plain text", upstreamMessage([]byte("plain text"), ""))
	assert.Equal(t, "502 Bad Gateway", upstreamMessage(nil, "502 Bad Gateway"))
}
