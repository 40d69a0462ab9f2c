package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/multi-auth-api/internal/events"
	"github.com/spec-kit/multi-auth-api/internal/observability"
)

// StartAuditWorker registers handlers that write authentication outcomes to the log.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")

	dispatcher.Subscribe(events.EventLoginSucceeded, func(ctx context.Context, e events.Event) error {
		audit.Info("login succeeded", eventFields(ctx, e)...)
		return nil
	})
	dispatcher.Subscribe(events.EventLoginFailed, func(ctx context.Context, e events.Event) error {
		audit.Warn("login failed", eventFields(ctx, e)...)
		return nil
	})
	dispatcher.Subscribe(events.EventCredentialRejected, func(ctx context.Context, e events.Event) error {
		audit.Debug("credential rejected", eventFields(ctx, e)...)
		return nil
	})
}

func eventFields(ctx context.Context, e events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", e.ID),
		zap.String("event", string(e.Type)),
		zap.String("scheme", string(e.Scheme)),
		zap.Time("at", e.Timestamp),
	}
	if e.Username != "" {
		fields = append(fields, zap.String("username", e.Username))
	}
	if e.Reason != "" {
		fields = append(fields, zap.String("reason", e.Reason))
	}
	if id := observability.RequestIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return fields
}
