package main

import (
	"context"
	"os"

	tq "textractqueries"
	"textractqueries/analysis"
	"textractqueries/config"
	"textractqueries/query"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

var handler *query.Handler

func init() {
	log := tq.Logger
	cfg, err := config.Load()
	if err != nil {
		log.Error("Loading configuration", "error", err)
		os.Exit(1)
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Error("Loading AWS configuration", "error", err)
		os.Exit(1)
	}
	handler = query.New(analysis.NewFromConfig(awsCfg), cfg)
}

func main() {
	lambda.Start(Handler)
}

func Handler(ctx context.Context, event *tq.QueryRequest) (tq.Response, error) {
	return handler.Query(ctx, event), nil
}
