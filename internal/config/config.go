package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LLM provider identifiers accepted by llm.provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderGroq      = "groq"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
// If FOO_FILE is set, reads the file content and sets FOO.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	filePath := os.Getenv(envKey + "_FILE")
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	os.Setenv(envKey, strings.TrimSpace(string(data)))
}

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	LLM        LLMConfig
	Anthropic  AnthropicConfig
	Groq       GroqConfig
	Spotify    SpotifyConfig
	Genius     GeniusConfig
	Musixmatch MusixmatchConfig
	Sentry     SentryConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	AIPerMin     int
	LookupPerMin int
}

// LLMConfig selects the text-generation backend and bounds its output.
type LLMConfig struct {
	Provider          string
	GenerateMaxTokens int
	AnalyzeMaxTokens  int
	ChatMaxTokens     int
}

type AnthropicConfig struct {
	APIKey        string
	BaseURL       string
	GenerateModel string
	AnalyzeModel  string
	ChatModel     string
}

type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	AccountsURL  string
	APIBaseURL   string
	ArtistID     string
	PlaylistID   string
	Market       string
}

type GeniusConfig struct {
	AccessToken string
	BaseURL     string
}

// MusixmatchConfig points at the RapidAPI lyrics proxy.
type MusixmatchConfig struct {
	RapidAPIKey string
	BaseURL     string
	Host        string
}

type SentryConfig struct {
	DSN string
}

func Load() (*Config, error) {
	// Local development convenience; a missing .env is fine
	_ = godotenv.Load()

	readSecret("ANTHROPIC_API_KEY")
	readSecret("GROQ_API_KEY")
	readSecret("SPOTIFY_CLIENT_ID")
	readSecret("SPOTIFY_CLIENT_SECRET")
	readSecret("GENIUS_ACCESS_TOKEN")
	readSecret("RAPIDAPI_KEY")
	readSecret("REDIS_PASSWORD")
	readSecret("SENTRY_DSN")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("server.allowed_origins", "ALLOWED_ORIGINS")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")
	_ = viper.BindEnv("ratelimit.ai_per_min", "RATELIMIT_AI_PER_MIN")
	_ = viper.BindEnv("ratelimit.lookup_per_min", "RATELIMIT_LOOKUP_PER_MIN")
	_ = viper.BindEnv("llm.provider", "LLM_PROVIDER")
	_ = viper.BindEnv("llm.generate_max_tokens", "LLM_GENERATE_MAX_TOKENS")
	_ = viper.BindEnv("llm.analyze_max_tokens", "LLM_ANALYZE_MAX_TOKENS")
	_ = viper.BindEnv("llm.chat_max_tokens", "LLM_CHAT_MAX_TOKENS")
	_ = viper.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	_ = viper.BindEnv("anthropic.base_url", "ANTHROPIC_BASE_URL")
	_ = viper.BindEnv("anthropic.generate_model", "ANTHROPIC_GENERATE_MODEL")
	_ = viper.BindEnv("anthropic.analyze_model", "ANTHROPIC_ANALYZE_MODEL")
	_ = viper.BindEnv("anthropic.chat_model", "ANTHROPIC_CHAT_MODEL")
	_ = viper.BindEnv("groq.api_key", "GROQ_API_KEY")
	_ = viper.BindEnv("groq.base_url", "GROQ_BASE_URL")
	_ = viper.BindEnv("groq.model", "GROQ_MODEL")
	_ = viper.BindEnv("spotify.client_id", "SPOTIFY_CLIENT_ID")
	_ = viper.BindEnv("spotify.client_secret", "SPOTIFY_CLIENT_SECRET")
	_ = viper.BindEnv("spotify.accounts_url", "SPOTIFY_ACCOUNTS_URL")
	_ = viper.BindEnv("spotify.api_base_url", "SPOTIFY_API_BASE_URL")
	_ = viper.BindEnv("spotify.artist_id", "SPOTIFY_ARTIST_ID")
	_ = viper.BindEnv("spotify.playlist_id", "SPOTIFY_PLAYLIST_ID")
	_ = viper.BindEnv("spotify.market", "SPOTIFY_MARKET")
	_ = viper.BindEnv("genius.access_token", "GENIUS_ACCESS_TOKEN")
	_ = viper.BindEnv("genius.base_url", "GENIUS_BASE_URL")
	_ = viper.BindEnv("musixmatch.rapidapi_key", "RAPIDAPI_KEY")
	_ = viper.BindEnv("musixmatch.base_url", "MUSIXMATCH_BASE_URL")
	_ = viper.BindEnv("musixmatch.host", "MUSIXMATCH_HOST")
	_ = viper.BindEnv("sentry.dsn", "SENTRY_DSN")

	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("server.allowed_origins", "*")
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("ratelimit.ai_per_min", 30)
	viper.SetDefault("ratelimit.lookup_per_min", 60)

	// LLM defaults
	viper.SetDefault("llm.provider", ProviderAnthropic)
	viper.SetDefault("llm.generate_max_tokens", 4096)
	viper.SetDefault("llm.analyze_max_tokens", 4096)
	viper.SetDefault("llm.chat_max_tokens", 1024)
	viper.SetDefault("anthropic.generate_model", "claude-3-5-sonnet-20240620")
	viper.SetDefault("anthropic.analyze_model", "claude-3-opus-20240229")
	viper.SetDefault("anthropic.chat_model", "claude-3-opus-20240229")

	// Groq defaults
	viper.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("groq.model", "llama-3.3-70b-versatile")

	// Metadata API defaults
	viper.SetDefault("spotify.accounts_url", "https://accounts.spotify.com")
	viper.SetDefault("spotify.api_base_url", "https://api.spotify.com/v1")
	viper.SetDefault("spotify.artist_id", "3i7KKztiuNxSgo146aHLIZ")
	viper.SetDefault("spotify.playlist_id", "37i9dQZEVXbMDoHDwVN2tF")
	viper.SetDefault("spotify.market", "US")
	viper.SetDefault("genius.base_url", "https://api.genius.com")
	viper.SetDefault("musixmatch.base_url", "https://musixmatch-lyrics-songs.p.rapidapi.com")
	viper.SetDefault("musixmatch.host", "musixmatch-lyrics-songs.p.rapidapi.com")

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetString("server.port"),
			Env:            viper.GetString("server.env"),
			LogLevel:       viper.GetString("server.log_level"),
			AllowedOrigins: viper.GetString("server.allowed_origins"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		RateLimit: RateLimitConfig{
			AIPerMin:     viper.GetInt("ratelimit.ai_per_min"),
			LookupPerMin: viper.GetInt("ratelimit.lookup_per_min"),
		},
		LLM: LLMConfig{
			Provider:          strings.ToLower(viper.GetString("llm.provider")),
			GenerateMaxTokens: viper.GetInt("llm.generate_max_tokens"),
			AnalyzeMaxTokens:  viper.GetInt("llm.analyze_max_tokens"),
			ChatMaxTokens:     viper.GetInt("llm.chat_max_tokens"),
		},
		Anthropic: AnthropicConfig{
			APIKey:        viper.GetString("anthropic.api_key"),
			BaseURL:       viper.GetString("anthropic.base_url"),
			GenerateModel: viper.GetString("anthropic.generate_model"),
			AnalyzeModel:  viper.GetString("anthropic.analyze_model"),
			ChatModel:     viper.GetString("anthropic.chat_model"),
		},
		Groq: GroqConfig{
			APIKey:  viper.GetString("groq.api_key"),
			BaseURL: viper.GetString("groq.base_url"),
			Model:   viper.GetString("groq.model"),
		},
		Spotify: SpotifyConfig{
			ClientID:     viper.GetString("spotify.client_id"),
			ClientSecret: viper.GetString("spotify.client_secret"),
			AccountsURL:  viper.GetString("spotify.accounts_url"),
			APIBaseURL:   viper.GetString("spotify.api_base_url"),
			ArtistID:     viper.GetString("spotify.artist_id"),
			PlaylistID:   viper.GetString("spotify.playlist_id"),
			Market:       viper.GetString("spotify.market"),
		},
		Genius: GeniusConfig{
			AccessToken: viper.GetString("genius.access_token"),
			BaseURL:     viper.GetString("genius.base_url"),
		},
		Musixmatch: MusixmatchConfig{
			RapidAPIKey: viper.GetString("musixmatch.rapidapi_key"),
			BaseURL:     viper.GetString("musixmatch.base_url"),
			Host:        viper.GetString("musixmatch.host"),
		},
		Sentry: SentryConfig{
			DSN: viper.GetString("sentry.dsn"),
		},
	}

	return cfg, nil
}
