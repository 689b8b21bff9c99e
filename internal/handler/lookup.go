package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/aplaceintime/api/internal/model"
	"github.com/aplaceintime/api/internal/service"
	"github.com/aplaceintime/api/pkg/response"
)

type LookupHandler struct {
	service   *service.LookupService
	validator *validator.Validate
}

func NewLookupHandler(svc *service.LookupService, v *validator.Validate) *LookupHandler {
	return &LookupHandler{
		service:   svc,
		validator: v,
	}
}

// GeniusSearch handles GET /api/genius/search?q=
func (h *LookupHandler) GeniusSearch(c *fiber.Ctx) error {
	var req model.GeniusSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return response.ValidationError(c, "Invalid query parameters", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	result, err := h.service.SearchGenius(c.UserContext(), req.Query)
	if err != nil {
		return upstreamFailure(c, err, "Failed to search Genius", "Genius API token not configured.")
	}

	return response.OK(c, result)
}

// MusixmatchLyrics handles GET /api/musixmatch/lyrics?track=&artist=
func (h *LookupHandler) MusixmatchLyrics(c *fiber.Ctx) error {
	var req model.LyricsLookupRequest
	if err := c.QueryParser(&req); err != nil {
		return response.ValidationError(c, "Invalid query parameters", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	result, err := h.service.Lyrics(c.UserContext(), req.Track, req.Artist)
	if err != nil {
		return upstreamFailure(c, err, "Failed to fetch lyrics from Musixmatch", "RapidAPI key not configured.")
	}

	return response.OK(c, result)
}
