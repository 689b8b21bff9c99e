package model

// ChatMessage is one turn of a conversation
type ChatMessage struct {
	Role    ChatRole `json:"role" validate:"required,oneof=user assistant"`
	Content string   `json:"content" validate:"required"`
}

// ChatRequest bundles a new user message with the prior turns, oldest first
type ChatRequest struct {
	Message string        `json:"message" validate:"required"`
	History []ChatMessage `json:"history" validate:"omitempty,dive"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
