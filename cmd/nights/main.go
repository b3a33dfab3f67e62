// Command nights is the Lambda entrypoint for the by-night ratings endpoint.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/ratings/internal/bootstrap"
)

func main() {
	settings := bootstrap.LoadSettings(os.Getenv)
	logger := bootstrap.NewLogger(os.Stdout, settings.LogLevel)

	h, err := bootstrap.NewHandler(context.Background(), settings, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}

	lambda.Start(h.Night)
}
