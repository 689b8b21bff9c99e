package server

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aplaceintime/api/internal/client"
	"github.com/aplaceintime/api/internal/config"
	"github.com/aplaceintime/api/internal/handler"
	"github.com/aplaceintime/api/internal/logger"
	"github.com/aplaceintime/api/internal/middleware"
	"github.com/aplaceintime/api/internal/service"
	"github.com/aplaceintime/api/pkg/response"
)

const bodyLimit = 1 * 1024 * 1024

// New builds the Fiber app with every route wired to clients created from
// cfg. redisClient may be nil, in which case rate limits are kept in memory.
func New(cfg *config.Config, redisClient *redis.Client) *fiber.App {
	validate := handler.NewValidator()

	// External clients
	generator, models := client.NewTextGenerator(cfg)
	spotifyClient := client.NewSpotifyClient(&cfg.Spotify)
	geniusClient := client.NewGeniusClient(&cfg.Genius)
	musixmatchClient := client.NewMusixmatchClient(&cfg.Musixmatch)

	// Services
	lyricsService := service.NewLyricsService(generator, models.Generate, cfg.LLM.GenerateMaxTokens)
	analysisService := service.NewAnalysisService(generator, models.Analyze, cfg.LLM.AnalyzeMaxTokens)
	chatService := service.NewChatService(generator, models.Chat, cfg.LLM.ChatMaxTokens)
	spotifyService := service.NewSpotifyService(spotifyClient, &cfg.Spotify)
	lookupService := service.NewLookupService(geniusClient, musixmatchClient)

	// Handlers
	lyricsHandler := handler.NewLyricsHandler(lyricsService, validate)
	analysisHandler := handler.NewAnalysisHandler(analysisService, validate)
	chatHandler := handler.NewChatHandler(chatService, validate)
	spotifyHandler := handler.NewSpotifyHandler(spotifyService)
	lookupHandler := handler.NewLookupHandler(lookupService, validate)

	rateLimiter := middleware.NewRateLimiter(redisClient)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    bodyLimit,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	logFormat := "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n"
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		logFormat = "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid} ${queryParams}\n"
	}
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Base URL - timestamp
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"timestamp": time.Now().Unix(),
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"llm":        generator.IsConfigured(),
				"llmBackend": generator.Name(),
				"spotify":    spotifyClient.IsConfigured(),
				"genius":     geniusClient.IsConfigured(),
				"musixmatch": musixmatchClient.IsConfigured(),
				"redis":      redisClient != nil,
			},
		})
	})

	api := app.Group("/api")

	ai := rateLimiter.AILimit(cfg.RateLimit.AIPerMin)
	api.Post("/generate", ai, lyricsHandler.Generate)
	api.Post("/analyze", ai, analysisHandler.Analyze)
	api.Post("/chat", ai, chatHandler.Chat)

	lookup := rateLimiter.LookupLimit(cfg.RateLimit.LookupPerMin)
	api.Get("/spotify/artist-info", lookup, spotifyHandler.ArtistInfo)
	api.Get("/spotify/top-songs", lookup, spotifyHandler.TopSongs)
	api.Get("/genius/search", lookup, lookupHandler.GeniusSearch)
	api.Get("/musixmatch/lyrics", lookup, lookupHandler.MusixmatchLyrics)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logger.Error("Unhandled request error", err, logger.WithContext(c))
	}

	if code == fiber.StatusNotFound {
		return response.NotFound(c, message)
	}
	return response.Error(c, code, response.CodeServiceError, message, nil)
}
