package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"research-rag/internal/helper"
	"research-rag/internal/models"
)

const compress = false

// Embedder converts text into a fixed-dimension vector. Satisfied by
// langchaingo's embeddings.Embedder.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Store is a topic-namespaced facade over a chromem-go database: one
// collection per topic, created on first write. Similarity scoring and the
// index structure are chromem's responsibility.
type Store struct {
	db       *chromem.DB
	embedder Embedder
	topK     int
}

// NewStore opens a persistent database under dbPath, or an in-memory one
// when inMemory is set. topK is the default retrieval fan-out.
func NewStore(dbPath string, inMemory bool, embedder Embedder, topK int) (*Store, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}
	return &Store{db: db, embedder: embedder, topK: topK}, nil
}

func (s *Store) embeddingFunc() chromem.EmbeddingFunc {
	return s.embedder.EmbedQuery
}

// Upsert embeds each chunk and stores (text, embedding, metadata) into the
// topic's collection, creating it on the first write and appending otherwise.
func (s *Store) Upsert(ctx context.Context, topic string, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	name := helper.NormalizeTopic(topic)
	collection, err := s.db.GetOrCreateCollection(name, nil, s.embeddingFunc())
	if err != nil {
		return fmt.Errorf("failed to create/get collection: %v", err)
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for _, chunk := range chunks {
		emb, err := s.embedder.EmbedQuery(ctx, chunk.Content)
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", chunk.ChunkID, err)
		}
		docs = append(docs, chromem.Document{
			ID:        uuid.NewString(),
			Content:   chunk.Content,
			Embedding: emb,
			Metadata: map[string]string{
				"source":   chunk.SourceFilename,
				"page":     strconv.Itoa(chunk.PageNumber),
				"chunk_id": strconv.Itoa(chunk.ChunkID),
			},
		})
	}

	log.Debug().Str("topic", name).Int("chunks", len(docs)).Msg("Adding documents to vector database")
	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

// Exists reports whether the topic's collection has been created.
func (s *Store) Exists(topic string) bool {
	return s.db.GetCollection(helper.NormalizeTopic(topic), s.embeddingFunc()) != nil
}

// Topics lists the stored collection names, sorted.
func (s *Store) Topics() []string {
	collections := s.db.ListCollections()
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Retrieve embeds the query and returns the k most similar chunks for the
// topic, most similar first. A topic with no collection is a normal
// "nothing to search" case and yields a nil result, not an error. k <= 0
// means the configured default; k is clamped to the collection size.
func (s *Store) Retrieve(ctx context.Context, topic, query string, k int) ([]models.Retrieved, error) {
	collection := s.db.GetCollection(helper.NormalizeTopic(topic), s.embeddingFunc())
	if collection == nil {
		return nil, nil
	}
	if k <= 0 {
		k = s.topK
	}
	if count := collection.Count(); count == 0 {
		return nil, nil
	} else if k > count {
		k = count
	}

	queryEmbedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	retrieved := make([]models.Retrieved, 0, len(results))
	for _, res := range results {
		page, _ := strconv.Atoi(res.Metadata["page"])
		chunkID, _ := strconv.Atoi(res.Metadata["chunk_id"])
		retrieved = append(retrieved, models.Retrieved{
			Chunk: models.Chunk{
				Content:        res.Content,
				SourceFilename: res.Metadata["source"],
				PageNumber:     page,
				ChunkID:        chunkID,
			},
			Similarity: res.Similarity,
		})
	}
	return retrieved, nil
}

// Delete removes all persisted index data for the topic. Idempotent, a
// missing topic is not an error.
func (s *Store) Delete(topic string) error {
	name := helper.NormalizeTopic(topic)
	if s.db.GetCollection(name, s.embeddingFunc()) == nil {
		return nil
	}
	if err := s.db.DeleteCollection(name); err != nil {
		return fmt.Errorf("failed to drop collection: %v", err)
	}
	return nil
}
