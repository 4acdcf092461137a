// Command function serves the send-card endpoint as an AWS Lambda behind
// API Gateway. Configuration comes from the function's environment.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/pol3d/cardmail/config"
	"github.com/pol3d/cardmail/handlers"
	"github.com/pol3d/cardmail/middlewares"
	"github.com/pol3d/cardmail/pkg/logger"
)

const flushTimeout = 2 * time.Second

var adapter *chiadapter.ChiLambda

func init() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Logger, cfg.Sentry, middlewares.RequestIDExtractor())

	svc, err := config.NewService(cfg, log)
	if err != nil {
		log.Error("failed to build card service", "error", err)
		os.Exit(1)
	}
	if err := svc.Ready(); err != nil {
		log.Warn("card service not ready", "error", err)
	}

	app := handlers.NewApp(svc, log, cfg.Server.RequestTimeout)
	adapter = chiadapter.New(app.Mux())
}

// Handler proxies one API Gateway event through the router.
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	defer logger.FlushSentry(flushTimeout)
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
