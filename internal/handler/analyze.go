package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/aplaceintime/api/internal/model"
	"github.com/aplaceintime/api/internal/service"
	"github.com/aplaceintime/api/pkg/response"
)

type AnalysisHandler struct {
	service   *service.AnalysisService
	validator *validator.Validate
}

func NewAnalysisHandler(svc *service.AnalysisService, v *validator.Validate) *AnalysisHandler {
	return &AnalysisHandler{
		service:   svc,
		validator: v,
	}
}

// Analyze handles POST /api/analyze. A reply without usable JSON is still
// a 200 carrying error and rawResponse.
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	var req model.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	result, err := h.service.Analyze(c.UserContext(), req.Lyrics)
	if err != nil {
		return upstreamFailure(c, err, "Failed to analyze lyrics", llmNotConfiguredMessage)
	}

	return response.OK(c, result)
}
