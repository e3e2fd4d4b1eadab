package main

import (
	"context"
	"os"

	tq "textractqueries"
	"textractqueries/store"
	"textractqueries/upload"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

var handler *upload.Handler

func init() {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		tq.Logger.Error("Loading AWS configuration", "error", err)
		os.Exit(1)
	}
	handler = upload.New(store.NewFromConfig(awsCfg))
}

func main() {
	lambda.Start(Handler)
}

func Handler(ctx context.Context, event tq.UploadEvent) (tq.UploadResponse, error) {
	return handler.Upload(ctx, event), nil
}
