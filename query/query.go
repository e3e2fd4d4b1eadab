package query

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	tq "textractqueries"
	"textractqueries/analysis"
	"textractqueries/answers"
	"textractqueries/config"

	"golang.org/x/exp/maps"
)

type Handler struct {
	analyzer analysis.Analyzer
	cfg      *config.Config
}

func New(analyzer analysis.Analyzer, cfg *config.Config) *Handler {
	return &Handler{analyzer: analyzer, cfg: cfg}
}

// Query runs the requested queries against the document and returns the
// resolved answers. Failures are returned as a 500 response, never as an error.
func (h *Handler) Query(ctx context.Context, req *tq.QueryRequest) tq.Response {
	log := tq.Logger

	bucket, document, queries := h.withDefaults(req)
	log.Info("Query received", "bucket", bucket, "document", document, "queries", len(queries))

	blocks, err := h.analyzer.Analyze(ctx, bucket, document, queries)
	if err != nil {
		return respond(http.StatusInternalServerError, tq.QueryError{
			Error:    err.Error(),
			Bucket:   bucket,
			Document: document,
		})
	}

	resolved := answers.Resolve(blocks)
	aliases := maps.Keys(resolved)
	sort.Strings(aliases)
	log.Info("Answers resolved", "blocks", len(blocks), "aliases", aliases)

	return respond(http.StatusOK, answers.Project(resolved))
}

func (h *Handler) withDefaults(req *tq.QueryRequest) (string, string, []tq.Query) {
	bucket, document, queries := h.cfg.Bucket, h.cfg.Document, h.cfg.Queries
	if req == nil {
		return bucket, document, queries
	}
	if req.Bucket != "" {
		bucket = req.Bucket
	}
	if req.Document != "" {
		document = req.Document
	}
	if len(req.Queries) > 0 {
		queries = req.Queries
	}
	return bucket, document, queries
}

func respond(status int, body any) tq.Response {
	content, err := json.Marshal(body)
	if err != nil {
		tq.Logger.Error("Marshal response", "error", err)
		return tq.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"error":"failed to encode response"}`,
		}
	}
	return tq.Response{StatusCode: status, Body: string(content)}
}
