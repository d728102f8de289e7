package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-agent/internal/domain"
	"github.com/iamasit07/connect4-agent/internal/service/bot"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	FrontendURL    string

	// Search
	Strategy      string
	SearchDepth   int
	WeightsPreset string
	WeightsFile   string
	BoardRows     int
	BoardColumns  int
	HumanTimeout  time.Duration
	HumanInput    string

	// Security
	JWTSecret          string
	TokenTTL           time.Duration
	RateLimitPerMinute int

	RedisURL      string
	RedisPassword string

	LogLevel  string
	LogFormat string
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "")
	allowedOrigins := []string{"http://localhost:5173"}
	if frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", ""), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	return &Config{
		Port:           port,
		AllowedOrigins: allowedOrigins,
		FrontendURL:    frontendURL,

		Strategy:      GetEnv("AGENT_STRATEGY", bot.StrategyAlphaBeta),
		SearchDepth:   GetEnvAsInt("SEARCH_DEPTH", bot.DefaultDepth),
		WeightsPreset: GetEnv("WEIGHTS_PRESET", bot.PresetDefault),
		WeightsFile:   GetEnv("WEIGHTS_FILE", ""),
		BoardRows:     GetEnvAsInt("BOARD_ROWS", domain.DefaultRows),
		BoardColumns:  GetEnvAsInt("BOARD_COLUMNS", domain.DefaultColumns),
		HumanTimeout:  time.Duration(GetEnvAsInt("HUMAN_TIMEOUT_SECONDS", int(bot.DefaultHumanTimeout/time.Second))) * time.Second,
		HumanInput:    GetEnv("HUMAN_INPUT", "/dev/tty"),

		JWTSecret:          GetEnv("JWT_SECRET", ""),
		TokenTTL:           time.Duration(GetEnvAsInt("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		RateLimitPerMinute: GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),

		RedisURL:      GetEnv("REDIS_URL", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "console"),
	}
}

// Search builds the engine settings. Weights come from WEIGHTS_FILE when it
// is set, otherwise from the named preset.
func (c *Config) Search() (bot.SearchConfig, error) {
	weights, err := bot.PresetByName(c.WeightsPreset)
	if err != nil {
		return bot.SearchConfig{}, err
	}
	if c.WeightsFile != "" {
		if weights, err = LoadWeights(c.WeightsFile); err != nil {
			return bot.SearchConfig{}, err
		}
	}
	cfg := bot.SearchConfig{
		Depth:   c.SearchDepth,
		Weights: weights,
		Pruning: c.Strategy != bot.StrategyMinimax,
	}
	return cfg, cfg.Validate()
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("component", "config").Str("key", key).Str("value", valueStr).
			Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}
	return value
}
