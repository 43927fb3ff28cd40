package events

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
	"github.com/SscSPs/cash_register_app/internal/middleware"
	"github.com/SscSPs/cash_register_app/internal/utils"
)

// fallbackDistinctID is used when an event carries no tenant.
const fallbackDistinctID = "cash-register"

// PosthogPublisher sends domain events to PostHog, keyed by tenant.
type PosthogPublisher struct {
	client *utils.PosthogClientWrapper
}

func NewPosthogPublisher(client *utils.PosthogClientWrapper) *PosthogPublisher {
	return &PosthogPublisher{client: client}
}

func (p *PosthogPublisher) Publish(_ context.Context, kind string, payload map[string]any) error {
	distinctID := fallbackDistinctID
	if tenantID, ok := payload["tenant_id"].(string); ok && tenantID != "" {
		distinctID = tenantID
	}
	return p.client.Enqueue(distinctID, kind, payload)
}

// LogPublisher writes domain events to the request logger. Used when PostHog is not configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, kind string, payload map[string]any) error {
	middleware.GetLoggerFromCtx(ctx).Info("Domain event", slog.String("event", kind), slog.Any("payload", payload))
	return nil
}

// NewPublisher picks PostHog when the client is initialized, otherwise logs events.
func NewPublisher(client *utils.PosthogClientWrapper) portssvc.EventPublisher {
	if client.IsInitialized() {
		return NewPosthogPublisher(client)
	}
	return LogPublisher{}
}

var (
	_ portssvc.EventPublisher = (*PosthogPublisher)(nil)
	_ portssvc.EventPublisher = LogPublisher{}
)
