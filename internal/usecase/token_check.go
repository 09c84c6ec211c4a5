package usecase

import (
	"context"
	"fmt"

	"page-relay/internal/domain/model"
	"page-relay/internal/domain/ports"
)

// TokenWarning is posted to the channel when the page access token stops working.
const TokenWarning = "⚠️ The Facebook page access token check failed. New posts cannot be relayed until the token is renewed."

// TokenCheck verifies that the page access token can still read from the content API.
type TokenCheck struct {
	inspector ports.TokenInspector
	notifier  ports.Notifier
	logger    ports.Logger
}

// NewTokenCheck constructs a TokenCheck use case.
func NewTokenCheck(inspector ports.TokenInspector, notifier ports.Notifier, logger ports.Logger) *TokenCheck {
	return &TokenCheck{
		inspector: inspector,
		notifier:  notifier,
		logger:    logger,
	}
}

// Run inspects the token once. A failed inspection is reported to the channel;
// a failed report is only logged.
func (c *TokenCheck) Run(ctx context.Context) error {
	identity, err := c.inspector.InspectToken(ctx)
	if err != nil {
		c.logger.Error(ctx, "page access token check failed", "error", err)
		if sendErr := c.notifier.Send(ctx, model.Notification{Content: TokenWarning}); sendErr != nil {
			c.logger.Error(ctx, "failed to send token warning", "error", sendErr)
		}
		return fmt.Errorf("inspect token: %w", err)
	}

	c.logger.Info(ctx, "page access token is valid", "page_id", identity.ID, "page_name", identity.Name)
	return nil
}
