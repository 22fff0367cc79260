package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	SignedURLTTL    time.Duration
	LLMProvider     string
	LLMTextModel    string
	LLMVisionModel  string
	LLMTimeout      time.Duration
	EmailProvider   string
	EmailFrom       string
	EmailFromName   string
	PollInterval    time.Duration
	NotifyTimeout   time.Duration
	DatabaseURL     string
	Env             string
	AppName         string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		SignedURLTTL:    getDuration("SIGNED_URL_TTL", time.Hour),
		LLMProvider:     getEnv("LLM_PROVIDER", "groq"),
		LLMTextModel:    getEnv("LLM_TEXT_MODEL", "llama-3.1-8b-instant"),
		LLMVisionModel:  getEnv("LLM_VISION_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
		LLMTimeout:      getDuration("LLM_TIMEOUT", 60*time.Second),
		EmailProvider:   getEnv("EMAIL_PROVIDER", "resend"),
		EmailFrom:       getEnv("EMAIL_FROM", ""),
		EmailFromName:   getEnv("EMAIL_FROM_NAME", "CheckMyWarranty"),
		PollInterval:    getDuration("REMINDER_POLL_INTERVAL", time.Minute),
		NotifyTimeout:   getDuration("NOTIFY_TIMEOUT", 30*time.Second),
		DatabaseURL:     dbURL,
		Env:             env,
		AppName:         getEnv("APP_NAME", "CheckMyWarranty"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		log.Printf("config %s invalid duration %q; using %s", key, raw, def)
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
