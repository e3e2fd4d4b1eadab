package query_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	tq "textractqueries"
	"textractqueries/answers"
	"textractqueries/config"
	"textractqueries/query"

	"gotest.tools/v3/assert"
)

type fakeAnalyzer struct {
	bucket   string
	document string
	queries  []tq.Query
	blocks   []answers.Block
	err      error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, bucket, document string, queries []tq.Query) ([]answers.Block, error) {
	f.bucket, f.document, f.queries = bucket, document, queries
	return f.blocks, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Bucket:   "default-bucket",
		Document: "default.pdf",
		Queries:  config.DefaultQueries,
	}
}

func invoiceBlocks() []answers.Block {
	return []answers.Block{
		answers.OtherBlock{ID: "page-1", Type: "PAGE"},
		answers.QueryBlock{ID: "q-from", Alias: "FromQuery", Relationships: []answers.Relationship{
			{Type: "ANSWER", IDs: []string{"r-from"}},
		}},
		answers.QueryBlock{ID: "q-to", Alias: "ToQuery", Relationships: []answers.Relationship{
			{Type: "ANSWER", IDs: []string{"r-to-1", "r-to-2"}},
		}},
		answers.QueryBlock{ID: "q-total", Alias: "TotalQuery"},
		answers.QueryResultBlock{ID: "r-from", Text: "James Lebron", Confidence: 91},
		answers.QueryResultBlock{ID: "r-to-1", Text: "B2C", Confidence: 40},
		answers.QueryResultBlock{ID: "r-to-2", Text: "B2B", Confidence: 99},
	}
}

func TestQueryDefaults(t *testing.T) {
	tests := []struct {
		name string
		req  *tq.QueryRequest
	}{
		{name: "nil request", req: nil},
		{name: "empty request", req: &tq.QueryRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{blocks: invoiceBlocks()}
			h := query.New(analyzer, testConfig())

			resp := h.Query(context.Background(), tt.req)

			assert.Equal(t, resp.StatusCode, 200)
			assert.Equal(t, analyzer.bucket, "default-bucket")
			assert.Equal(t, analyzer.document, "default.pdf")
			assert.DeepEqual(t, analyzer.queries, config.DefaultQueries)
		})
	}
}

func TestQueryOverrides(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	h := query.New(analyzer, testConfig())
	queries := []tq.Query{{Text: "DUE DATE", Alias: "DueQuery", Pages: []string{"2"}}}

	resp := h.Query(context.Background(), &tq.QueryRequest{
		Bucket:   "other",
		Document: "scans/b.pdf",
		Queries:  queries,
	})

	assert.Equal(t, resp.StatusCode, 200)
	assert.Equal(t, analyzer.bucket, "other")
	assert.Equal(t, analyzer.document, "scans/b.pdf")
	assert.DeepEqual(t, analyzer.queries, queries)
}

func TestQueryBody(t *testing.T) {
	h := query.New(&fakeAnalyzer{blocks: invoiceBlocks()}, testConfig())

	resp := h.Query(context.Background(), nil)
	assert.Equal(t, resp.StatusCode, 200)

	var got answers.Result
	assert.NilError(t, json.Unmarshal([]byte(resp.Body), &got))
	want := answers.Result{
		From:  "James Lebron",
		To:    "B2B",
		Total: "",
		Raw: map[string]answers.Answer{
			"FromQuery":  {Text: "James Lebron", Confidence: 91},
			"ToQuery":    {Text: "B2B", Confidence: 99},
			"TotalQuery": {Text: "", Confidence: -1},
		},
	}
	assert.DeepEqual(t, got, want)
}

func TestQueryBodyKeepsNonASCII(t *testing.T) {
	h := query.New(&fakeAnalyzer{blocks: []answers.Block{
		answers.QueryBlock{ID: "q", Alias: "FromQuery", Relationships: []answers.Relationship{{Type: "ANSWER", IDs: []string{"r"}}}},
		answers.QueryResultBlock{ID: "r", Text: "José Peña", Confidence: 80},
	}}, testConfig())

	resp := h.Query(context.Background(), nil)

	assert.Assert(t, json.Valid([]byte(resp.Body)))
	assert.Equal(t, resp.Body, `{"from":"José Peña","to":"","total":"","raw":{"FromQuery":{"text":"José Peña","confidence":80}}}`)
}

func TestQueryError(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("AccessDeniedException: not authorized")}
	h := query.New(analyzer, testConfig())

	resp := h.Query(context.Background(), &tq.QueryRequest{Document: "x.pdf"})

	assert.Equal(t, resp.StatusCode, 500)
	var got tq.QueryError
	assert.NilError(t, json.Unmarshal([]byte(resp.Body), &got))
	assert.DeepEqual(t, got, tq.QueryError{
		Error:    "AccessDeniedException: not authorized",
		Bucket:   "default-bucket",
		Document: "x.pdf",
	})
}
