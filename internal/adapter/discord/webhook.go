package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"page-relay/internal/domain/model"
	"page-relay/internal/domain/ports"
)

// Webhook is a Discord webhook notifier.
type Webhook struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Notifier = (*Webhook)(nil)

// NewWebhook creates a new Discord webhook notifier.
func NewWebhook(webhookURL string, timeout time.Duration, logger ports.Logger) *Webhook {
	return &Webhook{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type webhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []embedPayload `json:"embeds,omitempty"`
}

type embedPayload struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	Color       int            `json:"color,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Footer      *footerPayload `json:"footer,omitempty"`
	Image       *imagePayload  `json:"image,omitempty"`
	Fields      []fieldPayload `json:"fields,omitempty"`
}

type footerPayload struct {
	Text string `json:"text"`
}

type imagePayload struct {
	URL string `json:"url"`
}

type fieldPayload struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Send posts the notification to Discord.
func (w *Webhook) Send(ctx context.Context, notification model.Notification) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}
	if notification.IsEmpty() {
		return fmt.Errorf("notification is empty")
	}

	body, err := json.Marshal(convertNotification(notification))
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if msg := strings.TrimSpace(string(detail)); msg != "" {
			return fmt.Errorf("discord webhook returned status %d: %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	w.logger.Info(ctx, "notification sent to discord", "embeds", len(notification.Embeds))
	return nil
}

func convertNotification(n model.Notification) webhookPayload {
	payload := webhookPayload{Content: truncate(n.Content, 2000)}
	for _, e := range n.Embeds {
		payload.Embeds = append(payload.Embeds, convertEmbed(e))
	}
	return payload
}

func convertEmbed(e model.Embed) embedPayload {
	embed := embedPayload{
		Title:       truncate(e.Title, 256),
		Description: truncate(e.Description, 4096),
		URL:         e.URL,
		Color:       e.Color,
		Fields:      convertFields(e.Fields),
	}
	if !e.Timestamp.IsZero() {
		embed.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}
	if e.Footer != "" {
		embed.Footer = &footerPayload{Text: truncate(e.Footer, 2048)}
	}
	if e.ImageURL != "" {
		embed.Image = &imagePayload{URL: e.ImageURL}
	}
	return embed
}

func convertFields(fields []model.NotificationField) []fieldPayload {
	if len(fields) == 0 {
		return nil
	}

	result := make([]fieldPayload, 0, len(fields))
	for _, field := range fields {
		result = append(result, fieldPayload{
			Name:   truncate(field.Name, 256),
			Value:  truncate(field.Value, 1024),
			Inline: field.Inline,
		})
	}

	return result
}

// truncate caps value at limit characters, the unit Discord counts in.
func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
