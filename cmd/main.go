package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"research-rag/internal/api"
	"research-rag/internal/chromemdb"
	"research-rag/internal/config"
	"research-rag/internal/embedding"
	"research-rag/internal/helper"
	"research-rag/internal/llmservice"
	"research-rag/internal/parser"
	"research-rag/internal/rag"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	ingest := flag.String("ingest", "", "Comma-separated paths of papers to ingest")
	ask := flag.String("ask", "", "Question to answer from the topic's papers")
	chunks := flag.String("chunks", "", "Question to retrieve chunks for, without generation")
	topic := flag.String("topic", "", "Topic the operation applies to")
	k := flag.Int("k", 0, "Number of chunks to retrieve (0 = configured default)")
	deleteTopic := flag.Bool("delete-topic", false, "Delete the topic's index and uploaded files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	embedder, err := embedding.NewGoogleEmbedder(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	store, err := chromemdb.NewStore(cfg.VectorDBPath, false, embedder, cfg.TopK)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector database")
	}

	llm, err := llmservice.NewClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing LLM client")
	}

	engine := rag.NewRAG(store, llm)

	switch {
	case *deleteTopic:
		requireTopic(*topic)
		deleteTopicData(*topic, store, cfg)
	case *ingest != "":
		requireTopic(*topic)
		ingestPapers(ctx, strings.Split(*ingest, ","), *topic, store, cfg)
	case *ask != "":
		requireTopic(*topic)
		askQuestion(ctx, engine, *ask, *topic)
	case *chunks != "":
		requireTopic(*topic)
		showChunks(ctx, engine, *chunks, *topic, *k)
	default:
		if err := api.NewServer(cfg, engine, store).Run(); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}
}

func requireTopic(topic string) {
	if topic == "" {
		log.Fatal().Msg("Please provide a topic using the -topic flag")
	}
}

func ingestPapers(ctx context.Context, paths []string, topic string, store *chromemdb.Store, cfg *config.Config) {
	var saved []string
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Failed to read file, skipping")
			continue
		}
		storedPath, err := parser.Save(data, path, topic, cfg)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Failed to save file, skipping")
			continue
		}
		saved = append(saved, storedPath)
	}

	chunks, failed := parser.Process(saved, cfg)
	if len(chunks) == 0 {
		log.Warn().Int("failed", failed).Msg("No chunks produced, nothing to index")
		return
	}
	if err := store.Upsert(ctx, topic, chunks); err != nil {
		log.Fatal().Err(err).Msg("Error indexing chunks")
	}
	log.Info().Int("files", len(saved)).Int("failed", failed).Int("chunks", len(chunks)).Msg("Ingested papers")
}

func askQuestion(ctx context.Context, engine *rag.RAG, question, topic string) {
	result := engine.Answer(ctx, question, topic)
	if result.Err != "" {
		log.Error().Msg(result.Err)
		return
	}

	log.Info().Msg("Answer:")
	fmt.Printf("%s\n\n", result.Answer)

	log.Info().Msg("Sources:")
	helper.PrettyPrint(result.Sources)
}

func showChunks(ctx context.Context, engine *rag.RAG, question, topic string, k int) {
	sources, err := engine.RetrieveOnly(ctx, question, topic, k)
	if err != nil {
		log.Fatal().Err(err).Msg("Error retrieving chunks")
	}
	if len(sources) == 0 {
		log.Info().Str("topic", topic).Msg("No papers found for topic")
		return
	}
	helper.PrettyPrint(sources)
}

func deleteTopicData(topic string, store *chromemdb.Store, cfg *config.Config) {
	if err := store.Delete(topic); err != nil {
		log.Fatal().Err(err).Msg("Error deleting topic index")
	}
	if err := parser.DeleteTopicFiles(topic, cfg); err != nil {
		log.Fatal().Err(err).Msg("Error deleting topic files")
	}
	log.Info().Str("topic", topic).Msg("Deleted topic")
}
