package e2e

import (
	"net/http"
	"strings"
	"testing"
)

func TestGenerate_Success(t *testing.T) {
	ta := setupApp(t)
	ta.upstream.setClaude(http.StatusOK, claudeText("\n[Verse 1]\nNeon on the river\n"))

	body := `{
		"prompt": "leaving my hometown",
		"agents": ["lead", "poet"],
		"genre": "Indie Folk",
		"structureId": "verse-chorus",
		"flowPattern": "triplet"
	}`

	resp, err := doRequest(ta.app, http.MethodPost, "/api/generate", body, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["generatedLyrics"] != "[Verse 1]\nNeon on the river" {
		t.Errorf("unexpected lyrics: %q", result["generatedLyrics"])
	}
	if _, ok := result["error"]; ok {
		t.Error("did not expect an error field")
	}

	sent := ta.upstream.sentMessages()
	if len(sent) != 1 || sent[0].Role != "user" {
		t.Fatalf("expected one user message upstream, got %+v", sent)
	}
	if !strings.Contains(sent[0].Text, `"leaving my hometown"`) {
		t.Error("expected the idea in the prompt")
	}
	if !strings.Contains(sent[0].Text, "Indie Folk") {
		t.Error("expected the genre in the prompt")
	}
	if ta.upstream.lastModel != "gen-model" {
		t.Errorf("expected generate model, got %q", ta.upstream.lastModel)
	}
}

func TestGenerate_Refusal(t *testing.T) {
	ta := setupApp(t)
	ta.upstream.setClaude(http.StatusOK, claudeText("I cannot write lyrics about that."))

	resp, err := doRequest(ta.app, http.MethodPost, "/api/generate", `{"prompt":"x","agents":[]}`, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["error"] != "Claude responded: I cannot write lyrics about that." {
		t.Errorf("unexpected error field: %v", result["error"])
	}
	if _, ok := result["generatedLyrics"]; ok {
		t.Error("did not expect generatedLyrics")
	}
}

func TestGenerate_Validation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"missing prompt", `{"agents":["lead"]}`, "Idea/Prompt is required."},
		{"empty prompt", `{"prompt":"","agents":["lead"]}`, "Idea/Prompt is required."},
		{"missing agents", `{"prompt":"x"}`, "Agents must be an array."},
		{"agents not array", `{"prompt":"x","agents":"lead"}`, "Agents must be an array."},
		{"malformed", `{"prompt":`, "Invalid request body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ta := setupApp(t)

			resp, err := doRequest(ta.app, http.MethodPost, "/api/generate", tc.body, nil)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}

			assertStatus(t, resp, http.StatusBadRequest)

			errObj := errorObject(t, parseJSON(t, resp))
			if errObj["code"] != "VALIDATION_ERROR" {
				t.Errorf("expected VALIDATION_ERROR, got %v", errObj["code"])
			}
			if errObj["message"] != tc.message {
				t.Errorf("expected message %q, got %v", tc.message, errObj["message"])
			}
			if n := ta.upstream.callCount(); n != 0 {
				t.Errorf("expected no upstream calls, got %d", n)
			}
		})
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	ta := setupApp(t)
	ta.upstream.setClaude(http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)

	resp, err := doRequest(ta.app, http.MethodPost, "/api/generate", `{"prompt":"x","agents":["lead"]}`, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusInternalServerError)

	errObj := errorObject(t, parseJSON(t, resp))
	if errObj["code"] != "UPSTREAM_ERROR" {
		t.Errorf("expected UPSTREAM_ERROR, got %v", errObj["code"])
	}
	msg, _ := errObj["message"].(string)
	if !strings.HasPrefix(msg, "Failed to generate lyrics: ") {
		t.Errorf("unexpected message: %q", msg)
	}
	if strings.Contains(msg, "sk-test") {
		t.Error("message must not leak the API key")
	}
}

func TestGenerate_NotConfigured(t *testing.T) {
	ta := setupApp(t, withoutCredentials)

	resp, err := doRequest(ta.app, http.MethodPost, "/api/generate", `{"prompt":"x","agents":["lead"]}`, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusInternalServerError)

	errObj := errorObject(t, parseJSON(t, resp))
	if errObj["code"] != "CONFIG_ERROR" {
		t.Errorf("expected CONFIG_ERROR, got %v", errObj["code"])
	}
	if n := ta.upstream.callCount(); n != 0 {
		t.Errorf("expected no upstream calls, got %d", n)
	}
}
