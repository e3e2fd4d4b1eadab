package textractqueries

import "encoding/json"

// Query is one named Textract query. The capitalised keys match the
// AnalyzeDocument QueriesConfig shape callers already send.
type Query struct {
	Text  string   `json:"Text" yaml:"Text"`
	Alias string   `json:"Alias" yaml:"Alias"`
	Pages []string `json:"Pages,omitempty" yaml:"Pages,omitempty"`
}

// QueryRequest is the optional query handler event. Empty fields fall back
// to the process defaults.
type QueryRequest struct {
	Bucket   string  `json:"bucket,omitempty"`
	Document string  `json:"document,omitempty"`
	Queries  []Query `json:"queries,omitempty"`
}

// Response is the proxy style envelope returned by the query handler.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type QueryError struct {
	Error    string `json:"error"`
	Bucket   string `json:"bucket"`
	Document string `json:"document"`
}

type UploadRequest struct {
	Bucket      string `json:"bucket"`
	Key         string `json:"key,omitempty"`
	Directory   string `json:"directory,omitempty"`
	Filename    string `json:"filename,omitempty"`
	FileBase64  string `json:"file_base64"`
	ContentType string `json:"content_type,omitempty"`
}

// UploadEvent carries the upload body either as an object or, as API Gateway
// delivers it, as a string holding the JSON object.
type UploadEvent struct {
	Body json.RawMessage `json:"body"`
}

type UploadResponse struct {
	StatusCode int    `json:"statusCode"`
	Bucket     string `json:"bucket"`
	Key        string `json:"key"`
	SizeBytes  int    `json:"size_bytes"`
	ETag       string `json:"etag"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}

// MarshalJSON writes only statusCode and error for failed uploads.
func (r UploadResponse) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			StatusCode int    `json:"statusCode"`
			Error      string `json:"error"`
		}{r.StatusCode, r.Error})
	}
	type plain UploadResponse
	return json.Marshal(plain(r))
}
