package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime"
	"net/http"
	"path"
	"strings"

	tq "textractqueries"
	"textractqueries/store"
)

const (
	ErrInvalidBody   = "invalid request body"
	ErrMissingBucket = "missing 'bucket'"
	ErrMissingKey    = "provide 'key' or ('directory' and 'filename')"
	ErrMissingFile   = "missing 'file_base64'"
	ErrInvalidBase64 = "'file_base64' is not valid base64"

	MessageUploaded = "file uploaded"
)

type Handler struct {
	store store.ObjectStore
}

func New(s store.ObjectStore) *Handler {
	return &Handler{store: s}
}

// Upload decodes the event body and stores the file.
func (h *Handler) Upload(ctx context.Context, event tq.UploadEvent) tq.UploadResponse {
	req, err := DecodeBody(event.Body)
	if err != nil {
		tq.Logger.Warn("Upload body rejected", "error", err)
		return failure(http.StatusBadRequest, ErrInvalidBody)
	}
	return h.Handle(ctx, req)
}

// Handle validates req, decodes the file and puts it into the object store.
// The store is only called for a valid request.
func (h *Handler) Handle(ctx context.Context, req tq.UploadRequest) tq.UploadResponse {
	log := tq.Logger

	if req.Bucket == "" {
		return failure(http.StatusBadRequest, ErrMissingBucket)
	}
	key, ok := ObjectKey(req)
	if !ok {
		return failure(http.StatusBadRequest, ErrMissingKey)
	}
	if req.FileBase64 == "" {
		return failure(http.StatusBadRequest, ErrMissingFile)
	}
	data, err := base64.StdEncoding.DecodeString(req.FileBase64)
	if err != nil {
		log.Warn("Invalid base64 content", "bucket", req.Bucket, "key", key, "error", err)
		return failure(http.StatusBadRequest, ErrInvalidBase64)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(key))
	}

	log.Info("Upload start", "bucket", req.Bucket, "key", key, "size", len(data), "contentType", contentType)
	etag, err := h.store.Put(ctx, req.Bucket, key, data, contentType)
	if err != nil {
		return failure(http.StatusInternalServerError, err.Error())
	}

	return tq.UploadResponse{
		StatusCode: http.StatusOK,
		Bucket:     req.Bucket,
		Key:        key,
		SizeBytes:  len(data),
		ETag:       etag,
		Message:    MessageUploaded,
	}
}

// ObjectKey returns the key if given, otherwise directory and filename joined
// by a single separator.
func ObjectKey(req tq.UploadRequest) (string, bool) {
	if req.Key != "" {
		return req.Key, true
	}
	if req.Directory == "" || req.Filename == "" {
		return "", false
	}
	directory := req.Directory
	if !strings.HasSuffix(directory, "/") {
		directory += "/"
	}
	return directory + req.Filename, true
}

// DecodeBody accepts the body as a JSON object or as a JSON string holding
// one. An absent or null body decodes to an empty request.
func DecodeBody(raw json.RawMessage) (tq.UploadRequest, error) {
	var req tq.UploadRequest
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return req, nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return req, err
		}
		if strings.TrimSpace(inner) == "" {
			return req, nil
		}
		raw = []byte(inner)
	}
	err := json.Unmarshal(raw, &req)
	return req, err
}

func failure(status int, msg string) tq.UploadResponse {
	return tq.UploadResponse{StatusCode: status, Error: msg}
}
