package main

import (
	"context"
	"fmt"
	"os"

	tq "textractqueries"
	"textractqueries/analysis"
	"textractqueries/api"
	"textractqueries/config"
	"textractqueries/query"
	"textractqueries/store"
	"textractqueries/upload"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

var ginLambda *ginadapter.GinLambda

// Runs behind API Gateway when started by the Lambda runtime, as a plain
// HTTP server otherwise.
func main() {
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

	s := &api.Server{
		Query:  query.New(analysis.NewFromConfig(awsCfg), cfg),
		Upload: upload.New(store.NewFromConfig(awsCfg)),
	}

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		gin.SetMode(gin.ReleaseMode)
		ginLambda = ginadapter.New(s.SetupRouter())
		lambda.Start(Handler)
		return
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("Listening", "addr", addr)
	if err := s.SetupRouter().Run(addr); err != nil {
		log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}
