package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	tq "textractqueries"
	"textractqueries/query"
	"textractqueries/upload"

	"github.com/gin-gonic/gin"
)

type Server struct {
	Query  *query.Handler
	Upload *upload.Handler
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/query", s.RunQuery)
	r.POST("/upload", s.RunUpload)

	return r
}

// RunQuery accepts an optional QueryRequest body.
func (s *Server) RunQuery(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	var req *tq.QueryRequest
	if len(raw) > 0 {
		req = &tq.QueryRequest{}
		if err := json.Unmarshal(raw, req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	resp := s.Query.Query(c.Request.Context(), req)
	c.Data(resp.StatusCode, "application/json; charset=utf-8", []byte(resp.Body))
}

func (s *Server) RunUpload(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	resp := s.Upload.Upload(c.Request.Context(), tq.UploadEvent{Body: raw})
	c.JSON(resp.StatusCode, resp)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		tq.Logger.Info("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
