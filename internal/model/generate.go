package model

// GenerateRequest represents the request body for lyric generation
type GenerateRequest struct {
	Prompt      string           `json:"prompt" validate:"required"`
	Context     string           `json:"context"`
	Agents      []AgentRole      `json:"agents" validate:"required"`
	Genre       string           `json:"genre"`
	Era         string           `json:"era"`
	Mood        string           `json:"mood"`
	Storyline   string           `json:"storyline"`
	Analysis    *AnalysisContext `json:"analysis"`
	StructureID SongStructure    `json:"structureId"`
	FlowPattern FlowPattern      `json:"flowPattern"`
}

// GenerateResponse carries either lyrics or the model's explanation of why
// it produced none. Exactly one field is set.
type GenerateResponse struct {
	GeneratedLyrics string `json:"generatedLyrics,omitempty"`
	Error           string `json:"error,omitempty"`
}
