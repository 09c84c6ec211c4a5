package httpapi

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"page-relay/internal/domain/failure"
	"page-relay/internal/domain/model"
	"page-relay/internal/domain/ports"
)

// EventReceived acknowledges an accepted page event.
const EventReceived = "EVENT_RECEIVED"

const subscribeMode = "subscribe"

// EventProcessor consumes a decoded page event.
type EventProcessor interface {
	Process(ctx context.Context, event model.PageEvent) ([]model.ChangeResult, error)
}

// WebhookHandler serves the subscription handshake and event deliveries.
type WebhookHandler struct {
	verifyToken string
	processor   EventProcessor
	logger      ports.Logger
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(verifyToken string, processor EventProcessor, logger ports.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		processor:   processor,
		logger:      logger,
	}
}

// Subscribe answers the platform's verification handshake by echoing hub.challenge.
func (h *WebhookHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")

	if mode != subscribeMode || subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) != 1 {
		h.logger.Warn(r.Context(), "webhook verification refused", "mode", mode)
		w.WriteHeader(http.StatusForbidden)
		return
	}

	h.logger.Info(r.Context(), "webhook verified")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, query.Get("hub.challenge"))
}

// Deliver decodes an authenticated page event and relays its feed changes.
// Per-change failures do not change the response.
func (h *WebhookHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeFailure(w, r, failure.Validation(err, "read request body"))
		return
	}

	event, err := decodeEvent(body)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	results, err := h.processor.Process(r.Context(), event)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	failed := 0
	for _, result := range results {
		if !result.OK() {
			failed++
		}
	}
	if failed > 0 {
		h.logger.Warn(r.Context(), "some feed changes were not relayed", "failed", failed, "total", len(results))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, EventReceived)
}

func decodeEvent(body []byte) (model.PageEvent, error) {
	var event model.PageEvent

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return event, failure.Validation(nil, "request body is not a JSON object")
	}
	if err := json.Unmarshal(trimmed, &event); err != nil {
		return event, failure.Validation(err, "decode page event")
	}
	return event, nil
}

func (h *WebhookHandler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := failure.HTTPStatus(err)
	h.logger.Warn(r.Context(), "webhook delivery rejected",
		"status", status,
		"text_code", failure.TextCode(err),
		"error", err)
	w.WriteHeader(status)
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}
