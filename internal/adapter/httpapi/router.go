// Package httpapi exposes the webhook endpoint and the operational routes.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"page-relay/internal/domain/ports"
)

// Options configures the router.
type Options struct {
	Logger         ports.Logger
	Verifier       SignatureVerifier
	MaxBodyBytes   int64
	Metrics        RequestObserver
	MetricsHandler http.Handler
}

// NewRouter builds the chi router with middleware (outer to inner) and routes.
func NewRouter(webhook *WebhookHandler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		Recover(opts.Logger),
		RequestID(),
		Logging(opts.Logger),
	)
	if opts.Metrics != nil {
		r.Use(Instrument(opts.Metrics))
	}

	r.Get("/webhook", webhook.Subscribe)
	r.With(VerifySignature(opts.Verifier, opts.MaxBodyBytes, opts.Logger)).
		Post("/webhook", webhook.Deliver)

	r.Get("/livez", Health)
	r.Get("/healthz", Health)
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	return r
}
