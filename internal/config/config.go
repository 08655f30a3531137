package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"research-rag/internal/helper"
)

// ErrMissingAPIKey is returned by Validate when the required credential is
// not set. Startup must not continue past it.
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY not found, please set it in the environment or .env file")

// Config holds all process-wide settings, supplied via environment variables
// with defaults for everything except the API credential.
type Config struct {
	GoogleAPIKey string `env:"GOOGLE_API_KEY"`

	VectorDBPath string `env:"VECTOR_DB_PATH" envDefault:"./data/vector_db"`
	UploadsPath  string `env:"UPLOADS_PATH" envDefault:"./data/uploads"`

	EmbeddingModel string `env:"EMBEDDING_MODEL" envDefault:"embedding-001"`
	LLMModel       string `env:"LLM_MODEL" envDefault:"gemini-2.5-flash"`

	// ChunkSize is the maximum chunk length in characters, ChunkOverlap the
	// number of characters adjacent chunks share.
	ChunkSize    int `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap int `env:"CHUNK_OVERLAP" envDefault:"200"`

	// TopK is how many chunks are retrieved per question.
	TopK int `env:"TOP_K_RESULTS" envDefault:"5"`

	ServerAddr string        `env:"SERVER_ADDR" envDefault:":8080"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"1h"`
}

// Load reads a local .env file if present and parses the environment.
func Load() (*Config, error) {
	// In containerized environments the variables are set externally, a
	// missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that the required credential is present and that both
// storage roots exist, creating them if missing. Every other component
// assumes it has already succeeded.
func (c *Config) Validate() error {
	if c.GoogleAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if err := helper.CreateFolder(c.VectorDBPath); err != nil {
		return fmt.Errorf("create vector db path: %w", err)
	}
	if err := helper.CreateFolder(c.UploadsPath); err != nil {
		return fmt.Errorf("create uploads path: %w", err)
	}
	return nil
}
