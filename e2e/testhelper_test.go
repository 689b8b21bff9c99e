package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/aplaceintime/api/internal/config"
	"github.com/aplaceintime/api/internal/server"
)

// fakeUpstream stands in for every external API the app talks to: the
// Anthropic Messages API, Spotify accounts and Web API, Genius and the
// RapidAPI lyrics proxy.
type fakeUpstream struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls int

	// Messages API behaviour
	claudeStatus int
	claudeBody   string
	lastModel    string
	lastSystem   string
	lastMessages []upstreamMessage

	lyricsStatus int
	lyricsBody   string
	geniusBody   string
	artistStatus int
}

type upstreamMessage struct {
	Role string
	Text string
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{
		claudeStatus: http.StatusOK,
		claudeBody:   claudeText("[Verse 1]\nDefault lyrics"),
		lyricsStatus: http.StatusOK,
		lyricsBody:   `{"lyrics":"Some words"}`,
		geniusBody:   `{"response":{"hits":[]}}`,
		artistStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/messages", f.messages)
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		writeJSON(w, http.StatusOK, `{"access_token":"spot-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v1/artists/art1", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		f.mu.Lock()
		status := f.artistStatus
		f.mu.Unlock()
		if status != http.StatusOK {
			writeJSON(w, status, `{"error":{"status":404,"message":"non existing id"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"name":"Vinn","images":[{"url":"portrait.jpg"}],"genres":["hip hop"],"external_urls":{"spotify":"https://open.spotify.com/artist/art1"}}`)
	})
	mux.HandleFunc("/v1/artists/art1/top-tracks", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		writeJSON(w, http.StatusOK, `{"tracks":[{"name":"Night Drive","external_urls":{"spotify":"https://open.spotify.com/track/1"},"album":{"images":[{"url":"l"},{"url":"m"},{"url":"s"}]}}]}`)
	})
	mux.HandleFunc("/v1/playlists/pl1/tracks", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		writeJSON(w, http.StatusOK, `{"items":[
			{"track":{"name":"Hit","artists":[{"name":"A"},{"name":"B"}],"external_urls":{"spotify":"https://open.spotify.com/track/h"},"album":{"images":[{"url":"l"},{"url":"m"},{"url":"s"}]}}},
			{"track":null},
			{"track":{"name":"","artists":[{"name":"C"}],"external_urls":{"spotify":"u"},"album":{"images":[]}}}
		]}`)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		f.mu.Lock()
		body := f.geniusBody
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("/songs/lyrics", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		f.mu.Lock()
		status, body := f.lyricsStatus, f.lyricsBody
		f.mu.Unlock()
		writeJSON(w, status, body)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeUpstream) count() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeUpstream) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeUpstream) setClaude(status int, body string) {
	f.mu.Lock()
	f.claudeStatus, f.claudeBody = status, body
	f.mu.Unlock()
}

func (f *fakeUpstream) messages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model  string `json:"model"`
		System []struct {
			Text string `json:"text"`
		} `json:"system"`
		Messages []struct {
			Role    string `json:"role"`
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	raw, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(raw, &req)

	f.mu.Lock()
	f.calls++
	f.lastModel = req.Model
	f.lastSystem = ""
	if len(req.System) > 0 {
		f.lastSystem = req.System[0].Text
	}
	f.lastMessages = f.lastMessages[:0]
	for _, m := range req.Messages {
		msg := upstreamMessage{Role: m.Role}
		if len(m.Content) > 0 {
			msg.Text = m.Content[0].Text
		}
		f.lastMessages = append(f.lastMessages, msg)
	}
	status, body := f.claudeStatus, f.claudeBody
	f.mu.Unlock()

	writeJSON(w, status, body)
}

func (f *fakeUpstream) sentMessages() []upstreamMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]upstreamMessage(nil), f.lastMessages...)
}

// claudeText builds a Messages API reply with a single text block.
func claudeText(text string) string {
	return claudeReply(map[string]string{"type": "text", "text": text})
}

func claudeReply(blocks ...map[string]string) string {
	if blocks == nil {
		blocks = []map[string]string{}
	}
	b, _ := json.Marshal(map[string]interface{}{
		"id":            "msg_e2e",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-test",
		"content":       blocks,
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"usage":         map[string]int{"input_tokens": 1, "output_tokens": 1},
	})
	return string(b)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// testApp holds all components needed for testing
type testApp struct {
	app      *fiber.App
	upstream *fakeUpstream
}

func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Env: "test", LogLevel: "info", AllowedOrigins: "*"},
		RateLimit: config.RateLimitConfig{AIPerMin: 10000, LookupPerMin: 10000},
		LLM: config.LLMConfig{
			Provider:          config.ProviderAnthropic,
			GenerateMaxTokens: 4096,
			AnalyzeMaxTokens:  4096,
			ChatMaxTokens:     1024,
		},
		Anthropic: config.AnthropicConfig{
			APIKey:        "sk-test",
			BaseURL:       upstreamURL,
			GenerateModel: "gen-model",
			AnalyzeModel:  "analyze-model",
			ChatModel:     "chat-model",
		},
		Spotify: config.SpotifyConfig{
			ClientID:     "cid",
			ClientSecret: "csecret",
			AccountsURL:  upstreamURL,
			APIBaseURL:   upstreamURL + "/v1",
			ArtistID:     "art1",
			PlaylistID:   "pl1",
			Market:       "US",
		},
		Genius:     config.GeniusConfig{AccessToken: "gen-token", BaseURL: upstreamURL},
		Musixmatch: config.MusixmatchConfig{RapidAPIKey: "rapid-key", BaseURL: upstreamURL, Host: "mm.example"},
	}
}

// setupApp creates the app exactly as main.go does, pointed at a fake
// upstream. mutate may adjust the config first.
func setupApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()

	upstream := newFakeUpstream(t)
	cfg := testConfig(upstream.srv.URL)
	for _, m := range mutate {
		m(cfg)
	}

	// no Redis: in-memory rate limits
	return &testApp{app: server.New(cfg, nil), upstream: upstream}
}

// withoutCredentials clears every upstream credential.
func withoutCredentials(cfg *config.Config) {
	cfg.Anthropic.APIKey = ""
	cfg.Spotify.ClientID = ""
	cfg.Spotify.ClientSecret = ""
	cfg.Genius.AccessToken = ""
	cfg.Musixmatch.RapidAPIKey = ""
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// errorObject returns the error envelope of a failed response.
func errorObject(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got %v", body)
	}
	return errObj
}
