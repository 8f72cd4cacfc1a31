package main

import (
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"
	"github.com/maddiesch/serverless"
	"github.com/maddiesch/serverless/sam"
	"github.com/maddiesch/tago-user-manager/src/tago"
)

var (
	routerInstance  *tago.Router
	historyInstance ledgerHistory
	routerSetup     sync.Once
)

// getRouter builds the widget router on first use. Tests install their own beforehand.
func getRouter() *tago.Router {
	routerSetup.Do(func() {
		if routerInstance != nil {
			return
		}

		cfg := tago.LoadConfig()
		logger := serverless.GetLogger()
		ledger := tago.LedgerFromConfig(cfg, logger)

		if history, ok := ledger.(ledgerHistory); ok && historyInstance == nil {
			historyInstance = history
		}

		routerInstance = tago.NewRouter(tago.HTTPConnector{Config: cfg}, ledger, logger)
	})
	return routerInstance
}

func main() {
	lambda.Start(serverless.LambdaHandler(func() {
		if !sam.IsLocal() && !tago.IsTest() {
			gin.SetMode(gin.ReleaseMode)
		}

		getRouter()

		serverless.SharedApp().ConfigureGin(func(e *gin.Engine) {
			installRoutes(e)
		})
	}))
}
