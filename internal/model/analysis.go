package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// AnalyzeRequest represents the request body for flow analysis
type AnalyzeRequest struct {
	Lyrics string `json:"lyrics" validate:"required"`
}

// AnalysisResult is the outcome of normalizing an analysis reply. It is
// either *AnalysisOK or *AnalysisParseFailed.
type AnalysisResult interface {
	analysisResult()
}

// AnalysisOK holds the JSON object recovered from the model reply, verbatim.
type AnalysisOK struct {
	Object json.RawMessage
}

func (*AnalysisOK) analysisResult() {}

// MarshalJSON writes the recovered object unchanged.
func (a *AnalysisOK) MarshalJSON() ([]byte, error) {
	return a.Object, nil
}

// Fields decodes the object into the known analysis keys. Keys with an
// unexpected type are left zero.
func (a *AnalysisOK) Fields() AnalysisFields {
	var raw map[string]json.RawMessage
	var f AnalysisFields
	if err := json.Unmarshal(a.Object, &raw); err != nil {
		return f
	}
	decodeLoose(raw["syllablesPerLine"], &f.SyllablesPerLine)
	decodeLoose(raw["rhymeSchemeAnalysis"], &f.RhymeSchemeAnalysis)
	decodeLoose(raw["rhymeDetails"], &f.RhymeDetails)
	decodeLoose(raw["rhythmAndPacing"], &f.RhythmAndPacing)
	decodeLoose(raw["repetitionTechniques"], &f.RepetitionTechniques)
	decodeLoose(raw["overallComplexity"], &f.OverallComplexity)
	decodeLoose(raw["melodySuggestion"], &f.MelodySuggestion)
	decodeLoose(raw["keyObservations"], &f.KeyObservations)
	decodeLoose(raw["formattedLyrics"], &f.FormattedLyrics)
	return f
}

// AnalysisParseFailed reports a reply that held no usable JSON object.
type AnalysisParseFailed struct {
	Message string `json:"error"`
	RawText string `json:"rawResponse"`
}

func (*AnalysisParseFailed) analysisResult() {}

// AnalysisFields lists the keys the analysis prompt asks for. Any may be absent.
type AnalysisFields struct {
	SyllablesPerLine     []int         `json:"syllablesPerLine,omitempty"`
	RhymeSchemeAnalysis  string        `json:"rhymeSchemeAnalysis,omitempty"`
	RhymeDetails         []RhymeDetail `json:"rhymeDetails,omitempty"`
	RhythmAndPacing      string        `json:"rhythmAndPacing,omitempty"`
	RepetitionTechniques []string      `json:"repetitionTechniques,omitempty"`
	OverallComplexity    Complexity    `json:"overallComplexity,omitempty"`
	MelodySuggestion     string        `json:"melodySuggestion,omitempty"`
	KeyObservations      []string      `json:"keyObservations,omitempty"`
	FormattedLyrics      string        `json:"formattedLyrics,omitempty"`
}

type RhymeDetail struct {
	Words []string `json:"words"`
	Type  string   `json:"type"`
}

type Complexity string

const (
	ComplexitySimple   Complexity = "Simple"
	ComplexityModerate Complexity = "Moderate"
	ComplexityComplex  Complexity = "Complex"
)

// AnalysisContext is a previously returned analysis echoed back with a
// generation request. Decoding never fails on field types; the generator
// only uses what it can read.
type AnalysisContext struct {
	SyllablesPerLine    []string
	RhymeSchemeAnalysis string
	RhythmAndPacing     string
	OverallComplexity   string

	hasSyllables bool
	keys         int
	errorSet     bool
}

// UnmarshalJSON accepts any JSON value. Non-objects decode as empty.
func (a *AnalysisContext) UnmarshalJSON(data []byte) error {
	*a = AnalysisContext{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	a.keys = len(raw)
	a.errorSet = truthy(raw["error"])

	if syl, ok := raw["syllablesPerLine"]; ok && truthy(syl) {
		var items []json.RawMessage
		if json.Unmarshal(syl, &items) == nil {
			a.hasSyllables = true
			for _, item := range items {
				a.SyllablesPerLine = append(a.SyllablesPerLine, scalarText(item))
			}
		}
	}
	decodeLoose(raw["rhymeSchemeAnalysis"], &a.RhymeSchemeAnalysis)
	decodeLoose(raw["rhythmAndPacing"], &a.RhythmAndPacing)
	decodeLoose(raw["overallComplexity"], &a.OverallComplexity)
	return nil
}

// Usable reports whether the context has any keys and carries no error flag.
func (a *AnalysisContext) Usable() bool {
	return a != nil && a.keys > 0 && !a.errorSet
}

// HasSyllables reports whether a syllable pattern was supplied, even an empty one.
func (a *AnalysisContext) HasSyllables() bool {
	return a != nil && a.hasSyllables
}

func decodeLoose(raw json.RawMessage, dst interface{}) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// truthy mirrors loose truthiness for an arbitrary JSON value.
func truthy(raw json.RawMessage) bool {
	v := string(bytes.TrimSpace(raw))
	switch v {
	case "", "null", "false", `""`:
		return false
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f != 0
	}
	return true
}

func scalarText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
