package store

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"gotest.tools/v3/assert"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	etag  string
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{ETag: aws.String(f.etag)}, nil
}

func TestPut(t *testing.T) {
	api := &fakeS3{etag: `"9b2cf535f27731c974343645a3985328"`}
	s := New(api)

	etag, err := s.Put(context.Background(), "docs", "in/a.pdf", []byte("%PDF-1.7"), "application/pdf")
	assert.NilError(t, err)

	assert.Equal(t, etag, "9b2cf535f27731c974343645a3985328")
	assert.Equal(t, aws.ToString(api.input.Bucket), "docs")
	assert.Equal(t, aws.ToString(api.input.Key), "in/a.pdf")
	assert.Equal(t, aws.ToString(api.input.ContentType), "application/pdf")
	assert.Equal(t, aws.ToInt64(api.input.ContentLength), int64(8))
	assert.Equal(t, string(api.body), "%PDF-1.7")
}

func TestPutWithoutContentType(t *testing.T) {
	api := &fakeS3{etag: "abc"}

	_, err := New(api).Put(context.Background(), "docs", "blob", []byte{1}, "")
	assert.NilError(t, err)

	assert.Assert(t, api.input.ContentType == nil)
}

func TestPutError(t *testing.T) {
	api := &fakeS3{err: &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}}

	_, err := New(api).Put(context.Background(), "nope", "k", []byte{1}, "")

	assert.ErrorContains(t, err, "The specified bucket does not exist")
}

func TestNormalizeETag(t *testing.T) {
	tests := []struct {
		etag string
		want string
	}{
		{etag: `"abc"`, want: "abc"},
		{etag: "abc", want: "abc"},
		{etag: `""`, want: ""},
		{etag: `"abc-2"`, want: "abc-2"},
	}
	for _, tt := range tests {
		t.Run(tt.etag, func(t *testing.T) {
			assert.Equal(t, NormalizeETag(tt.etag), tt.want)
		})
	}
}
