package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/aplaceintime/api/internal/model"
)

const (
	refusalPreviewRunes = 300

	noJSONObjectMessage = "Invalid format received from analysis API (no JSON object found)."
	parseFailurePrefix  = "Failed to parse analysis JSON. Error: "

	// ChatApology replaces a chat reply that carried no text.
	ChatApology = "Sorry, I encountered an issue processing that."
)

// LyricsPredicate decides whether trimmed backend output is lyrics rather
// than an explanation or refusal.
type LyricsPredicate func(text string) bool

// LooksLikeLyrics accepts output that opens with a bracketed section tag such
// as [Verse 1].
func LooksLikeLyrics(text string) bool {
	return strings.HasPrefix(text, "[")
}

// NormalizeGeneration turns raw generation output into lyrics or, when the
// predicate rejects it, a bounded preview of what the backend said instead.
// provider names the backend in that preview, e.g. "Claude".
func NormalizeGeneration(raw, provider string, isLyrics LyricsPredicate) *model.GenerateResponse {
	text := strings.TrimSpace(raw)
	if isLyrics(text) {
		return &model.GenerateResponse{GeneratedLyrics: text}
	}
	return &model.GenerateResponse{Error: provider + " responded: " + truncateRunes(text, refusalPreviewRunes)}
}

// NormalizeAnalysis recovers the JSON object from analysis output. The
// candidate spans the first '{' to the last '}'; nested-brace awareness is
// intentionally absent.
func NormalizeAnalysis(raw string) model.AnalysisResult {
	candidate, ok := extractJSON(raw)
	if !ok {
		return &model.AnalysisParseFailed{Message: noJSONObjectMessage, RawText: raw}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(candidate)); err != nil {
		return &model.AnalysisParseFailed{Message: parseFailurePrefix + err.Error(), RawText: raw}
	}
	return &model.AnalysisOK{Object: json.RawMessage(buf.Bytes())}
}

// NormalizeChat trims a chat reply.
func NormalizeChat(raw string) string {
	return strings.TrimSpace(raw)
}

// extractJSON returns the text from the first { to the last }. With no such
// span it falls back to the trimmed input if that is itself brace-delimited.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end > start {
		return s[start : end+1], true
	}

	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, true
	}
	return "", false
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
