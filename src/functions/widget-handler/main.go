package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/maddiesch/serverless"
	"github.com/maddiesch/tago-user-manager/src/tago"
)

func main() {
	cfg := tago.LoadConfig()
	logger := serverless.GetLogger()

	router := tago.NewRouter(tago.HTTPConnector{Config: cfg}, tago.LedgerFromConfig(cfg, logger), logger)

	lambda.Start(handler(router))
}

// handler never fails the invocation; the router reports everything itself.
func handler(router *tago.Router) func(context.Context, tago.Invocation) error {
	return func(ctx context.Context, event tago.Invocation) error {
		serverless.Log("Widget invocation from ", event.Data.Origin())

		router.Run(ctx, event)

		return nil
	}
}
