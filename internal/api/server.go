package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"research-rag/internal/config"
	"research-rag/internal/models"
	"research-rag/internal/rag"
)

// Answerer is the question-answering surface used by the handlers.
type Answerer interface {
	Answer(ctx context.Context, question, topic string) *rag.Result
	RetrieveOnly(ctx context.Context, question, topic string, k int) ([]models.Source, error)
}

// Index is the write and admin side of the vector index.
type Index interface {
	Upsert(ctx context.Context, topic string, chunks []models.Chunk) error
	Delete(topic string) error
	Exists(topic string) bool
	Topics() []string
}

// Server is the HTTP front end: topic management, paper upload and the chat
// endpoint. All orchestration is delegated to the ingestion pipeline, the
// vector index and the answer generator.
type Server struct {
	cfg      *config.Config
	answerer Answerer
	index    Index
	sessions *SessionStore
	router   *gin.Engine
}

func NewServer(cfg *config.Config, answerer Answerer, index Index) *Server {
	s := &Server{
		cfg:      cfg,
		answerer: answerer,
		index:    index,
		sessions: NewSessionStore(cfg.SessionTTL),
		router:   gin.Default(),
	}

	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	s.router.GET("/health", s.health)

	apiV1 := s.router.Group("/api/v1")
	{
		apiV1.GET("/topics", s.listTopics)
		apiV1.POST("/topics/:topic/papers", s.uploadPapers)
		apiV1.DELETE("/topics/:topic", s.deleteTopic)
		apiV1.POST("/query", s.query)
		apiV1.GET("/chunks", s.chunks)
		apiV1.GET("/sessions/:id", s.getSession)
	}

	return s
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	log.Info().Str("addr", s.cfg.ServerAddr).Msg("Starting HTTP server")
	return s.router.Run(s.cfg.ServerAddr)
}
