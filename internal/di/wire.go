//go:build wireinject

package di

import (
	"github.com/google/wire"

	"page-relay/internal/adapter/discord"
	"page-relay/internal/adapter/graph"
	"page-relay/internal/adapter/httpapi"
	"page-relay/internal/adapter/logging"
	"page-relay/internal/adapter/metrics"
	"page-relay/internal/app"
	"page-relay/internal/config"
	"page-relay/internal/domain/ports"
	"page-relay/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		wire.Bind(new(ports.Logger), new(*logging.ZapLogger)),
		provideGraphClient,
		wire.Bind(new(ports.PostProvider), new(*graph.Client)),
		wire.Bind(new(ports.TokenInspector), new(*graph.Client)),
		provideNotifier,
		wire.Bind(new(ports.Notifier), new(*discord.Webhook)),
		metrics.New,
		wire.Bind(new(ports.Metrics), new(*metrics.Collector)),
		provideVerifier,
		usecase.NewFeedRelay,
		usecase.NewTokenCheck,
		wire.Bind(new(httpapi.EventProcessor), new(*usecase.FeedRelay)),
		wire.Bind(new(app.TokenChecker), new(*usecase.TokenCheck)),
		provideWebhookHandler,
		provideRouter,
		provideAppOptions,
		app.New,
	)
	return nil, nil, nil
}
