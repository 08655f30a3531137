package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/prompts"

	"research-rag/internal/helper"
	"research-rag/internal/models"
)

// RefusalSentence is the literal reply required when the context does not
// contain the answer.
const RefusalSentence = models.RefusalSentence

const excerptLen = 300

// Generator produces answer text from a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever is the read side of the vector index.
type Retriever interface {
	Retrieve(ctx context.Context, topic, query string, k int) ([]models.Retrieved, error)
	Exists(topic string) bool
}

// Result is the structured outcome of a question. Exactly one of Answer or
// Err is meaningful; failures from external capabilities are converted here,
// never propagated as raw faults.
type Result struct {
	Answer  string          `json:"answer"`
	Sources []models.Source `json:"sources"`
	Err     string          `json:"error,omitempty"`
}

// RAG answers questions about a topic's papers by retrieving the most
// similar chunks and prompting the model with them as context.
type RAG struct {
	store    Retriever
	llm      Generator
	template prompts.PromptTemplate
}

func NewRAG(store Retriever, llm Generator) *RAG {
	return &RAG{
		store:    store,
		llm:      llm,
		template: prompts.NewPromptTemplate(models.AnswerPromptTemplate, []string{"context", "question"}),
	}
}

// Answer retrieves the top chunks for the question, renders the instruction
// template and invokes the model. A topic with no index yields a "no papers"
// result, a model failure a structured error result.
func (r *RAG) Answer(ctx context.Context, question, topic string) *Result {
	if !r.store.Exists(topic) {
		return &Result{
			Sources: []models.Source{},
			Err:     fmt.Sprintf("No papers found for topic '%s'. Please upload papers first.", topic),
		}
	}

	retrieved, err := r.store.Retrieve(ctx, topic, question, 0)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Retrieval failed")
		return &Result{Sources: []models.Source{}, Err: fmt.Sprintf("Error processing query: %v", err)}
	}

	var contextText strings.Builder
	for _, res := range retrieved {
		contextText.WriteString(res.Chunk.Content)
		contextText.WriteString("\n\n")
	}

	prompt, err := r.template.Format(map[string]any{
		"context":  contextText.String(),
		"question": question,
	})
	if err != nil {
		return &Result{Sources: []models.Source{}, Err: fmt.Sprintf("Error processing query: %v", err)}
	}

	answer, err := r.llm.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Generation failed")
		return &Result{Sources: []models.Source{}, Err: fmt.Sprintf("Error processing query: %v", err)}
	}

	return &Result{Answer: answer, Sources: formatSources(retrieved)}
}

// RetrieveOnly exposes the citation list for a question without invoking
// generation, for inspection and debugging.
func (r *RAG) RetrieveOnly(ctx context.Context, question, topic string, k int) ([]models.Source, error) {
	if !r.store.Exists(topic) {
		return []models.Source{}, nil
	}
	retrieved, err := r.store.Retrieve(ctx, topic, question, k)
	if err != nil {
		return nil, err
	}
	return formatSources(retrieved), nil
}

// formatSources turns retrieved chunks into citation records: 1-based
// number, source filename, page and a truncated excerpt.
func formatSources(retrieved []models.Retrieved) []models.Source {
	sources := make([]models.Source, 0, len(retrieved))
	for i, res := range retrieved {
		sources = append(sources, models.Source{
			Number:   i + 1,
			Filename: res.Chunk.SourceFilename,
			Page:     res.Chunk.PageNumber,
			Excerpt:  helper.Truncate(res.Chunk.Content, excerptLen),
		})
	}
	return sources
}
