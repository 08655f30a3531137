package embedding

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/googleai"

	"research-rag/internal/config"
)

// NewGoogleEmbedder creates a langchaingo embedder backed by the Google
// embedding model from the configuration.
func NewGoogleEmbedder(ctx context.Context, cfg *config.Config) (*embeddings.EmbedderImpl, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GoogleAPIKey),
		googleai.WithDefaultEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}
