package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"research-rag/internal/config"
	"research-rag/internal/helper"
	"research-rag/internal/models"
)

const (
	defaultChunkSize    = 1000 // characters
	defaultChunkOverlap = 200  // characters
)

// ExtractionError wraps the underlying cause when a single file cannot be
// parsed. Within a batch the file is skipped and the batch continues.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Save writes uploaded file bytes under the topic's upload folder, creating
// the folder if absent. Filename collisions overwrite.
func Save(data []byte, filename, topic string, cfg *config.Config) (string, error) {
	dir := filepath.Join(cfg.UploadsPath, helper.NormalizeTopic(topic))
	if err := helper.CreateFolder(dir); err != nil {
		return "", fmt.Errorf("create topic folder: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", filename, err)
	}
	return path, nil
}

// Extract returns the per-page text of a document, pages ordered and
// 1-based. PDF extraction is delegated to ledongthuc/pdf; plain text files
// are read whole as a single page.
func Extract(path string) ([]models.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		pages, err := extractPDF(path)
		if err != nil {
			return nil, &ExtractionError{Path: path, Err: err}
		}
		return pages, nil
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ExtractionError{Path: path, Err: err}
		}
		return []models.Page{{Number: 1, Text: string(data)}}, nil
	default:
		return nil, &ExtractionError{Path: path, Err: fmt.Errorf("unsupported file format: %s", ext)}
	}
}

func extractPDF(path string) ([]models.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var pages []models.Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		pages = append(pages, models.Page{Number: i, Text: pageText})
	}
	return pages, nil
}

// Process runs extract and chunk for every path and concatenates the results.
// A file that fails to parse is logged and skipped, the batch continues with
// the rest. Chunk indexes are renumbered sequentially across the whole batch.
// Returns the flat chunk list and the number of files skipped.
func Process(paths []string, cfg *config.Config) ([]models.Chunk, int) {
	var all []models.Chunk
	failed := 0
	for _, path := range paths {
		pages, err := Extract(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Failed to extract document, skipping")
			failed++
			continue
		}
		chunks := Chunk(pages, filepath.Base(path), cfg.ChunkSize, cfg.ChunkOverlap)
		log.Debug().Str("file", path).Int("pages", len(pages)).Int("chunks", len(chunks)).Msg("Processed document")
		all = append(all, chunks...)
	}
	for i := range all {
		all[i].ChunkID = i
	}
	return all, failed
}

// DeleteTopicFiles removes the topic's upload folder and everything in it.
// Idempotent, missing folders are not an error.
func DeleteTopicFiles(topic string, cfg *config.Config) error {
	dir := filepath.Join(cfg.UploadsPath, helper.NormalizeTopic(topic))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete topic files: %w", err)
	}
	return nil
}
