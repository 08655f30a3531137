package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GoogleAPIKey)
	assert.Equal(t, "./data/vector_db", cfg.VectorDBPath)
	assert.Equal(t, "./data/uploads", cfg.UploadsPath)
	assert.Equal(t, "embedding-001", cfg.EmbeddingModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLMModel)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.Equal(t, 5, cfg.TopK)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "k")
	t.Setenv("CHUNK_SIZE", "512")
	t.Setenv("CHUNK_OVERLAP", "64")
	t.Setenv("TOP_K_RESULTS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.ChunkSize)
	assert.Equal(t, 64, cfg.ChunkOverlap)
	assert.Equal(t, 3, cfg.TopK)
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg := &Config{
		VectorDBPath: filepath.Join(t.TempDir(), "vdb"),
		UploadsPath:  filepath.Join(t.TempDir(), "up"),
		ChunkSize:    1000,
		ChunkOverlap: 200,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestValidateCreatesStorageRoots(t *testing.T) {
	base := t.TempDir()
	cfg := &Config{
		GoogleAPIKey: "k",
		VectorDBPath: filepath.Join(base, "vector_db"),
		UploadsPath:  filepath.Join(base, "uploads"),
		ChunkSize:    1000,
		ChunkOverlap: 200,
	}

	require.NoError(t, cfg.Validate())

	for _, dir := range []string{cfg.VectorDBPath, cfg.UploadsPath} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestValidateRejectsOverlapNotBelowSize(t *testing.T) {
	cfg := &Config{
		GoogleAPIKey: "k",
		VectorDBPath: t.TempDir(),
		UploadsPath:  t.TempDir(),
		ChunkSize:    100,
		ChunkOverlap: 100,
	}

	assert.Error(t, cfg.Validate())
}
