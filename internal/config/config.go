package config

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config is the full runtime configuration of the service, assembled from
// environment variables after LoadEnv has run.
type Config struct {
	Port        string `validate:"required,numeric"`
	Environment string `validate:"oneof=development production"`

	// Transcriber selects the speech-to-text backend.
	Transcriber     string `validate:"oneof=deepgram whisper"`
	DeepgramAPIKey  string
	DeepgramBaseURL string `validate:"omitempty,url"`
	OpenAIAPIKey    string

	// MaxUploadMB caps the multipart body accepted by the gateway.
	MaxUploadMB int `validate:"gte=1,lte=64"`

	// Database selects the repository backend.
	DatabaseDriver string `validate:"oneof=postgres sqlite3"`
	PostgresDSN    string
	SQLitePath     string

	// Optional object-storage archive of accepted uploads.
	ArchiveEnabled bool
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// FromEnv builds a Config from the environment and validates it.
func FromEnv() (*Config, error) {
	maxUploadMB, err := strconv.Atoi(getEnvOrDefault("MAX_UPLOAD_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "3030"),
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		Transcriber:     getEnvOrDefault("TRANSCRIBER", "deepgram"),
		DeepgramAPIKey:  getEnvOrDefault("DEEPGRAM_API_KEY", ""),
		DeepgramBaseURL: getEnvOrDefault("DEEPGRAM_BASE_URL", "https://api.deepgram.com"),
		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", ""),

		MaxUploadMB: maxUploadMB,

		DatabaseDriver: getEnvOrDefault("DB_DRIVER", "sqlite3"),
		PostgresDSN:    getEnvOrDefault("DB_DSN", ""),
		SQLitePath:     getEnvOrDefault("SQLITE_PATH", "data/transcription.db"),

		ArchiveEnabled: getEnvOrDefault("ARCHIVE_ENABLED", "false") == "true",
		MinioEndpoint:  getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "audioscribe-uploads"),
		MinioUseSSL:    getEnvOrDefault("MINIO_USE_SSL", "false") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config struct against its declared constraints and the
// cross-field requirements the tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Transcriber == "deepgram" && c.DeepgramAPIKey == "" {
		return fmt.Errorf("DEEPGRAM_API_KEY must be set when TRANSCRIBER=deepgram")
	}
	if c.Transcriber == "whisper" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set when TRANSCRIBER=whisper")
	}
	if c.DatabaseDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("DB_DSN must be set when DB_DRIVER=postgres")
	}

	return nil
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
