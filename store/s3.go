package store

import (
	"bytes"
	"context"
	"errors"
	"strings"

	tq "textractqueries"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// PutObjectAPI is the part of the S3 client used here.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectStore writes an object and returns its entity tag.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
}

type S3Store struct {
	api PutObjectAPI
}

func New(api PutObjectAPI) *S3Store {
	return &S3Store{api: api}
}

func NewFromConfig(cfg aws.Config) *S3Store {
	return New(s3.NewFromConfig(cfg))
}

// Put stores data under bucket/key. An empty contentType leaves the S3
// default in place. The returned entity tag has its quotes stripped.
func (s *S3Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	log := tq.Logger
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	out, err := s.api.PutObject(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			log.Error("PutObject failed", "bucket", bucket, "key", key, "code", apiErr.ErrorCode(), "error", apiErr.ErrorMessage())
		} else {
			log.Error("PutObject failed", "bucket", bucket, "key", key, "error", err)
		}
		return "", err
	}
	return NormalizeETag(aws.ToString(out.ETag)), nil
}

// NormalizeETag strips the quote characters S3 wraps entity tags in.
func NormalizeETag(etag string) string {
	return strings.Trim(etag, `"`)
}
