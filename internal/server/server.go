package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/Irfan-KV/dev-twin/internal/core"
)

type Server struct {
	Engine *core.Engine
}

func New(engine *core.Engine) *Server {
	return &Server{Engine: engine}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"health": "ok"})
	})

	r.POST("/ingest-data", s.IngestData)
	r.POST("/query", s.Query)
	r.POST("/retrieve", s.Retrieve)

	return r
}

type IngestRequest struct {
	FeatureID    string `json:"feature_id" binding:"required"`
	DocumentID   string `json:"document_id" binding:"required"`
	DocumentText string `json:"document_text" binding:"required"`
}

func (s *Server) IngestData(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := s.Engine.Ingest(c.Request.Context(), req.FeatureID, req.DocumentID, req.DocumentText)
	if err != nil {
		log.Error("ingestion failed", "document_id", req.DocumentID, "err", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

type QueryRequest struct {
	Query     string `json:"query" binding:"required"`
	TopK      int    `json:"top_k"`
	FeatureID string `json:"feature_id"`
}

func (s *Server) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.Engine.Answer(c.Request.Context(), req.Query, req.TopK, req.FeatureID)
	if err != nil {
		log.Error("query failed", "err", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Retrieve is the document-id variant: the same retrieval stages as /query
// but no synthesized answer.
func (s *Server) Retrieve(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.Engine.Retrieve(c.Request.Context(), req.Query, req.TopK, req.FeatureID)
	if err != nil {
		log.Error("retrieval failed", "err", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrProvider), errors.Is(err, core.ErrStore), errors.Is(err, core.ErrPartialIngest):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
