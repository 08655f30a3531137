package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"research-rag/internal/models"
	"research-rag/internal/parser"
)

type queryRequest struct {
	Question  string `json:"question" binding:"required"`
	Topic     string `json:"topic" binding:"required"`
	SessionID string `json:"session_id"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "research-rag"})
}

func (s *Server) listTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": s.index.Topics()})
}

// uploadPapers accepts a multipart upload of PDFs for a topic, saves them
// under the topic's upload folder and indexes the resulting chunks. A file
// that cannot be saved or parsed is skipped, the rest of the batch proceeds.
func (s *Server) uploadPapers(c *gin.Context) {
	topic := c.Param("topic")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form upload"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided, use the 'files' field"})
		return
	}

	var paths []string
	skipped := 0
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			log.Error().Err(err).Str("file", fh.Filename).Msg("Failed to open upload, skipping")
			skipped++
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			log.Error().Err(err).Str("file", fh.Filename).Msg("Failed to read upload, skipping")
			skipped++
			continue
		}
		path, err := parser.Save(data, fh.Filename, topic, s.cfg)
		if err != nil {
			log.Error().Err(err).Str("file", fh.Filename).Msg("Failed to save upload, skipping")
			skipped++
			continue
		}
		paths = append(paths, path)
	}

	chunks, failed := parser.Process(paths, s.cfg)
	skipped += failed

	if len(chunks) > 0 {
		if err := s.index.Upsert(c.Request.Context(), topic, chunks); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to index chunks")
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to index documents"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"files_received": len(files),
		"files_skipped":  skipped,
		"chunks_indexed": len(chunks),
	})
}

// query answers a question against a topic's papers. Failures from the
// generation capability come back as a structured error field, never as a
// raw fault.
func (s *Server) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question and topic are required"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result := s.answerer.Answer(c.Request.Context(), req.Question, req.Topic)

	answer := result.Answer
	if result.Err != "" {
		answer = result.Err
	}
	s.sessions.Append(sessionID, models.Turn{
		Question: req.Question,
		Answer:   answer,
		Sources:  result.Sources,
	})

	c.JSON(http.StatusOK, gin.H{
		"answer":     result.Answer,
		"sources":    result.Sources,
		"error":      result.Err,
		"session_id": sessionID,
	})
}

// chunks returns the citation list for a question without generation.
func (s *Server) chunks(c *gin.Context) {
	topic := c.Query("topic")
	question := c.Query("q")
	if topic == "" || question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic and q are required"})
		return
	}
	k := 0
	if v := c.Query("k"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a non-negative integer"})
			return
		}
		k = parsed
	}

	sources, err := s.answerer.RetrieveOnly(c.Request.Context(), question, topic, k)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Retrieval failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to retrieve chunks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func (s *Server) getSession(c *gin.Context) {
	id := c.Param("id")
	turns, ok := s.sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": id, "turns": turns})
}

// deleteTopic removes the topic's index data and uploaded files. Deleting a
// topic that does not exist is a no-op.
func (s *Server) deleteTopic(c *gin.Context) {
	topic := c.Param("topic")
	if err := s.index.Delete(topic); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to delete index")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete topic index"})
		return
	}
	if err := parser.DeleteTopicFiles(topic, s.cfg); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to delete uploads")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete topic files"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": topic})
}
