package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort       string
	DatabaseURL    string // Empty means the consultation store is not configured
	AllowedOrigins []string
	StaticDir      string // Built SPA bundle, served when set

	ChatThinkMin    time.Duration
	ChatThinkMax    time.Duration
	ChatSessionTTL  time.Duration
	ChatMaxSessions int // Zero disables the cap
	LogFile         string
	MetricsEnabled  bool
	MetricsFile     string
	TracesFile      string
	CareersFile     string // Optional YAML override for the bundled catalog

	// Booking notifications; each destination is enabled when both values are set.
	SlackBotToken    string
	SlackChannelID   string
	NotionToken      string
	NotionDatabaseID string
}

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:8080"}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", strings.Join(defaultOrigins, ","))),
		StaticDir:       os.Getenv("STATIC_DIR"),
		ChatThinkMin:    getMillis("CHAT_THINK_MIN_MS", 1000),
		ChatThinkMax:    getMillis("CHAT_THINK_MAX_MS", 3000),
		ChatSessionTTL:  time.Minute * time.Duration(getInt("CHAT_SESSION_TTL_MINUTES", 60)),
		ChatMaxSessions: getInt("CHAT_MAX_SESSIONS", 10000),
		LogFile:         os.Getenv("LOG_FILE"),
		MetricsEnabled:  getBool("METRICS_ENABLED", false),
		MetricsFile:     getEnv("METRICS_FILE", "logs/careerpath_metrics.log"),
		TracesFile:      getEnv("TRACES_FILE", "logs/careerpath_traces.log"),
		CareersFile:     os.Getenv("CAREERS_FILE"),

		SlackBotToken:    os.Getenv("SLACK_BOT_TOKEN"),
		SlackChannelID:   os.Getenv("SLACK_CHANNEL_ID"),
		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DATABASE_ID"),
	}

	if cfg.ChatThinkMin > cfg.ChatThinkMax {
		return nil, fmt.Errorf("CHAT_THINK_MIN_MS (%s) must not exceed CHAT_THINK_MAX_MS (%s)", cfg.ChatThinkMin, cfg.ChatThinkMax)
	}
	if cfg.DatabaseURL == "" {
		log.Println("WARN: DATABASE_URL is not set. Consultation endpoints will report 501 until it is configured.")
	}

	log.Printf("Loaded config: Port=%s, DB_URL=%s, Think=%s..%s, SessionTTL=%s, MaxSessions=%d, Metrics=%t",
		cfg.HTTPPort, redact(cfg.DatabaseURL), cfg.ChatThinkMin, cfg.ChatThinkMax, cfg.ChatSessionTTL, cfg.ChatMaxSessions, cfg.MetricsEnabled)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Warning: Invalid %s '%s', using default %d. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return n
}

func getMillis(key string, fallback int) time.Duration {
	return time.Millisecond * time.Duration(getInt(key, fallback))
}

func getBool(key string, fallback bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %t", key, raw, fallback)
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// redact hides everything after the scheme so credentials never reach the logs.
func redact(url string) string {
	if url == "" {
		return "<unset>"
	}
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i+3] + "***"
	}
	return "***"
}
