package config

import (
	"log"
	"strings"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string `default:"8080" env:"PORT"`
	Env             string `default:"dev" env:"ENV"`
	CORSOrigins     string `default:"http://localhost:5173,http://localhost:3000" env:"CORS_ALLOW_ORIGINS"`
	DatabaseURL     string `default:"" env:"DATABASE_URL"`
	ObjectStoreType string `default:"local" env:"OBJECT_STORE"`
	LocalStoreDir   string `default:"./data" env:"LOCAL_STORE_DIR"`
	AWSRegion       string `default:"" env:"AWS_REGION"`
	S3Bucket        string `default:"" env:"S3_BUCKET"`
	S3Prefix        string `default:"code/" env:"S3_PREFIX"`
	SSEKMSKeyID     string `default:"" env:"SSE_KMS_KEY_ID"`
	JWTSecret       string `default:"" env:"JWT_SECRET"`

	LLM struct {
		Provider     string `default:"gemini" env:"LLM_PROVIDER"`
		Model        string `default:"" env:"LLM_MODEL"`
		GeminiKey    string `default:"" env:"GEMINI_API_KEY"`
		OpenAIKey    string `default:"" env:"OPENAI_API_KEY"`
		OpenAIBase   string `default:"" env:"OPENAI_BASE_URL"`
		AnthropicKey string `default:"" env:"ANTHROPIC_API_KEY"`
		MaxTokens    int    `default:"4096" env:"LLM_MAX_TOKENS"`
	}

	Judge0 struct {
		URL     string `default:"https://judge0-ce.p.rapidapi.com" env:"JUDGE0_API_URL"`
		Key     string `default:"" env:"JUDGE0_API_KEY"`
		Host    string `default:"judge0-ce.p.rapidapi.com" env:"JUDGE0_API_HOST"`
		Timeout int    `default:"30" env:"JUDGE0_TIMEOUT_SECONDS"`
	}

	Interview struct {
		BatchPolicy string `default:"continue" env:"INTERVIEW_BATCH_POLICY"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

// Load reads configuration from config.yml and environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	var cfg Config
	if err := configor.New(&configor.Config{}).Load(&cfg, configFiles()...); err != nil {
		log.Printf("config: load failed, using defaults: %v", err)
	}

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.ObjectStoreType = normalizeStoreType(cfg.ObjectStoreType)
	cfg.LLM.Provider = normalizeProvider(cfg.LLM.Provider)
	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	return cfg
}

// CORSAllowOrigin returns the configured CORS origins as a list.
func (c Config) CORSAllowOrigin() []string {
	return splitAndTrim(c.CORSOrigins)
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		// Missing files are fine; already-set variables win.
		_ = godotenv.Load(path)
	}
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

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "anthropic", "claude":
		return "anthropic"
	case "none", "placeholder":
		return "none"
	default:
		return "gemini"
	}
}
