package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/events"
)

// NotificationService logs domain events and forwards them to an optional
// webhook.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// WebhookEnabled reports whether events are forwarded anywhere.
func (n *NotificationService) WebhookEnabled() bool {
	return strings.TrimSpace(n.cfg.WebhookURL) != ""
}

// RegisterHandlers subscribes to every event type. Each event is logged and,
// when a webhook is configured, handed to enqueue for delivery.
func (n *NotificationService) RegisterHandlers(enqueue func(events.Event)) {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		n.dispatcher.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			n.logger.Info("domain event",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.String("entity", event.Entity),
				zap.Int64("entity_id", event.EntityID),
				zap.Any("payload", event.Payload))
			if enqueue != nil && n.WebhookEnabled() {
				enqueue(event)
			}
			return nil
		})
	}
}

// Deliver POSTs the event as JSON to the configured webhook. Any non-2xx
// response is an error.
func (n *NotificationService) Deliver(ctx context.Context, event events.Event) error {
	if !n.WebhookEnabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Post(n.cfg.WebhookURL)
	agent.JSON(event)
	agent.Set("X-Event-Type", string(event.Type))
	agent.Set("X-Event-ID", event.ID)
	agent.Timeout(n.cfg.WebhookTimeout())
	if err := agent.Parse(); err != nil {
		return fmt.Errorf("prepare webhook request: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("send webhook: %w", errs[0])
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fmt.Errorf("webhook responded %d: %s", code, truncate(string(body), 256))
	}
	n.logger.Debug("webhook delivered",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int("status", code))
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
