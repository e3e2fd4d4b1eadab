package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	tq "textractqueries"
	"textractqueries/answers"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "  cli query  -function name [-bucket b] [-document d] [-verbose]\n")
	fmt.Fprintf(os.Stderr, "  cli upload -function name -bucket b (-key k | -directory d) -file path [-content-type t]\n")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	ctx := context.TODO()
	switch os.Args[1] {
	case "query":
		runQuery(ctx, os.Args[2:])
	case "upload":
		runUpload(ctx, os.Args[2:])
	default:
		usage()
	}
}

func runQuery(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	function := fs.String("function", "textract-query", "Name of the query Lambda function")
	bucket := fs.String("bucket", "", "Bucket holding the document (function default when empty)")
	document := fs.String("document", "", "Document key (function default when empty)")
	verbose := fs.Bool("verbose", false, "Show all aliases with confidence")
	fs.Parse(args)

	payload, err := json.Marshal(tq.QueryRequest{Bucket: *bucket, Document: *document})
	if err != nil {
		log.Fatalf("failed to marshal payload, %v", err)
	}

	var response tq.Response
	invoke(ctx, *function, payload, &response)
	if response.StatusCode != 200 {
		log.Fatalf("query failed with status %d: %s", response.StatusCode, response.Body)
	}

	var result answers.Result
	if err := json.Unmarshal([]byte(response.Body), &result); err != nil {
		log.Fatalf("failed to unmarshal response body, %v", err)
	}

	fmt.Println("From: ", result.From)
	fmt.Println("To:   ", result.To)
	fmt.Println("Total:", result.Total)

	if *verbose {
		fmt.Println("\nAll answers\n============")
		aliases := make([]string, 0, len(result.Raw))
		for alias := range result.Raw {
			aliases = append(aliases, alias)
		}
		sort.Strings(aliases)
		for _, alias := range aliases {
			a := result.Raw[alias]
			fmt.Printf("%s: %q (%.2f)\n", alias, a.Text, a.Confidence)
		}
	}
}

func runUpload(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	function := fs.String("function", "textract-upload", "Name of the upload Lambda function")
	bucket := fs.String("bucket", "", "Target bucket")
	key := fs.String("key", "", "Target key")
	directory := fs.String("directory", "", "Target directory, the file name is appended")
	file := fs.String("file", "", "Local file to upload")
	contentType := fs.String("content-type", "", "Content type of the object")
	fs.Parse(args)

	if *file == "" {
		log.Fatalf("file parameter is required")
	}
	content, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("unable to read %s, %v", *file, err)
	}

	body := tq.UploadRequest{
		Bucket:      *bucket,
		Key:         *key,
		Directory:   *directory,
		FileBase64:  base64.StdEncoding.EncodeToString(content),
		ContentType: *contentType,
	}
	if *key == "" {
		body.Filename = filepath.Base(*file)
	}
	payload, err := json.Marshal(map[string]tq.UploadRequest{"body": body})
	if err != nil {
		log.Fatalf("failed to marshal payload, %v", err)
	}

	var response tq.UploadResponse
	invoke(ctx, *function, payload, &response)
	if response.StatusCode != 200 {
		log.Fatalf("upload failed with status %d: %s", response.StatusCode, response.Error)
	}
	fmt.Printf("Uploaded s3://%s/%s (%d bytes, etag %s)\n", response.Bucket, response.Key, response.SizeBytes, response.ETag)
}

func invoke(ctx context.Context, function string, payload []byte, out any) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}
	client := lambda.NewFromConfig(cfg)

	result, err := client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(function),
		Payload:      payload,
	})
	if err != nil {
		log.Fatalf("failed to invoke lambda function, %v", err)
	}
	if result.FunctionError != nil {
		log.Fatalf("lambda function returned an error: %s", aws.ToString(result.FunctionError))
	}
	if err := json.Unmarshal(result.Payload, out); err != nil {
		log.Fatalf("failed to unmarshal response payload, %v", err)
	}
}
