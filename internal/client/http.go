package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/aplaceintime/api/internal/logger"
)

const metadataTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: metadataTimeout}
}

// upstreamMessagePaths lists where the metadata APIs put a human readable
// error: RapidAPI, Spotify Web API, Genius, Spotify accounts.
var upstreamMessagePaths = []string{"message", "error.message", "meta.message", "error_description"}

// doRequest executes req and returns the body of a 2xx response. Anything
// else becomes a *GatewayError carrying the upstream message.
func doRequest(hc *http.Client, req *http.Request, provider string) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, &GatewayError{Provider: provider, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GatewayError{Provider: provider, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Err:        errors.New(upstreamMessage(body, resp.Status)),
		}
	}
	return body, nil
}

// upstreamMessage prefers a message field from a JSON error body, then the
// raw body, then the HTTP status line.
func upstreamMessage(body []byte, status string) string {
	if gjson.ValidBytes(body) {
		for _, r := range gjson.GetManyBytes(body, upstreamMessagePaths...) {
			if r.Type == gjson.String && r.Str != "" {
				return r.Str
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return logger.Preview(text)
	}
	return status
}

func decodeJSON(body []byte, provider string, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &GatewayError{Provider: provider, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return nil
}
