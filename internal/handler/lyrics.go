package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/aplaceintime/api/internal/model"
	"github.com/aplaceintime/api/internal/service"
	"github.com/aplaceintime/api/pkg/response"
)

const llmNotConfiguredMessage = "Text generation API key not configured."

type LyricsHandler struct {
	service   *service.LyricsService
	validator *validator.Validate
}

func NewLyricsHandler(svc *service.LyricsService, v *validator.Validate) *LyricsHandler {
	return &LyricsHandler{
		service:   svc,
		validator: v,
	}
}

// Generate handles POST /api/generate
func (h *LyricsHandler) Generate(c *fiber.Ctx) error {
	var req model.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	result, err := h.service.Generate(c.UserContext(), &req)
	if err != nil {
		return upstreamFailure(c, err, "Failed to generate lyrics", llmNotConfiguredMessage)
	}

	return response.OK(c, result)
}
