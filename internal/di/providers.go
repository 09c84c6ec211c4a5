package di

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"page-relay/internal/adapter/discord"
	"page-relay/internal/adapter/graph"
	"page-relay/internal/adapter/httpapi"
	"page-relay/internal/adapter/logging"
	"page-relay/internal/adapter/meta"
	"page-relay/internal/adapter/metrics"
	"page-relay/internal/app"
	"page-relay/internal/config"
	"page-relay/internal/domain/ports"
)

func provideLogger(cfg *config.Config) (*logging.ZapLogger, func(), error) {
	zl, err := logging.Build(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	logger := logging.New(zl.With(zap.String("env", cfg.Env)))
	return logger, logger.Sync, nil
}

func provideGraphClient(cfg *config.Config) *graph.Client {
	return graph.New(graph.Options{
		BaseURL:     cfg.Graph.BaseURL,
		Version:     cfg.Graph.Version,
		AccessToken: cfg.Graph.PageAccessToken,
		Timeout:     cfg.RequestTimeout,
	})
}

func provideNotifier(cfg *config.Config, logger ports.Logger) *discord.Webhook {
	return discord.NewWebhook(cfg.Discord.WebhookURL, cfg.RequestTimeout, logger)
}

func provideVerifier(cfg *config.Config) *meta.Verifier {
	return meta.NewVerifier(cfg.Meta.AppSecret)
}

func provideWebhookHandler(cfg *config.Config, processor httpapi.EventProcessor, logger ports.Logger) *httpapi.WebhookHandler {
	return httpapi.NewWebhookHandler(cfg.Meta.VerifyToken, processor, logger)
}

func provideRouter(cfg *config.Config, webhook *httpapi.WebhookHandler, verifier *meta.Verifier, collector *metrics.Collector, logger ports.Logger) http.Handler {
	return httpapi.NewRouter(webhook, httpapi.Options{
		Logger:         logger,
		Verifier:       verifier,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		Metrics:        collector,
		MetricsHandler: collector.Handler(),
	})
}

func provideAppOptions(cfg *config.Config) app.Options {
	return app.Options{
		Addr:               cfg.HTTP.Addr(),
		MaxConnections:     cfg.HTTP.MaxConnections,
		ShutdownTimeout:    cfg.HTTP.ShutdownTimeout,
		TokenCheckSchedule: cfg.TokenCheckCron,
	}
}
