package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/aplaceintime/api/internal/model"
	"github.com/aplaceintime/api/internal/service"
	"github.com/aplaceintime/api/pkg/response"
)

type ChatHandler struct {
	service   *service.ChatService
	validator *validator.Validate
}

func NewChatHandler(svc *service.ChatService, v *validator.Validate) *ChatHandler {
	return &ChatHandler{
		service:   svc,
		validator: v,
	}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req model.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	result, err := h.service.Reply(c.UserContext(), &req)
	if err != nil {
		return upstreamFailure(c, err, "Chat API Error", llmNotConfiguredMessage)
	}

	return response.OK(c, result)
}
