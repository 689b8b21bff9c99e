package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aplaceintime/api/internal/service"
	"github.com/aplaceintime/api/pkg/response"
)

const spotifyNotConfiguredMessage = "Spotify API credentials missing."

type SpotifyHandler struct {
	service *service.SpotifyService
}

func NewSpotifyHandler(svc *service.SpotifyService) *SpotifyHandler {
	return &SpotifyHandler{service: svc}
}

// ArtistInfo handles GET /api/spotify/artist-info
func (h *SpotifyHandler) ArtistInfo(c *fiber.Ctx) error {
	result, err := h.service.ArtistInfo(c.UserContext())
	if err != nil {
		return upstreamFailure(c, err, "Failed to fetch Spotify artist info", spotifyNotConfiguredMessage)
	}
	return response.OK(c, result)
}

// TopSongs handles GET /api/spotify/top-songs
func (h *SpotifyHandler) TopSongs(c *fiber.Ctx) error {
	result, err := h.service.TopSongs(c.UserContext())
	if err != nil {
		return upstreamFailure(c, err, "Failed to fetch Spotify Top 10 songs", spotifyNotConfiguredMessage)
	}
	return response.OK(c, result)
}
