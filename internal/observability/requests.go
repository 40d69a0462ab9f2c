package observability

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// HeaderRequestID carries the request id in both directions.
	HeaderRequestID = "X-Request-ID"

	// UnmatchedRoute is the metric path for requests no registered route served.
	UnmatchedRoute = "<unmatched>"

	requestIDKey      = "request_id"
	unmatchedRouteKey = "unmatched_route"
)

type requestIDCtxKey struct{}

// RequestIDMiddleware reuses an inbound X-Request-ID or assigns a new one.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.SetUserContext(context.WithValue(c.UserContext(), requestIDCtxKey{}, id))
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// RequestID returns the id assigned by RequestIDMiddleware, if any.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// RequestIDFromContext returns the request id carried by a request's user context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

// MarkUnmatched must be registered after every route. It only runs for
// requests no route handled, flags them and lets fiber answer 404 or 405.
func MarkUnmatched() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(unmatchedRouteKey, true)
		return c.Next()
	}
}

// RoutePath returns the registered pattern that served c, so metric keys stay
// bounded by the route table rather than by what clients request.
func RoutePath(c *fiber.Ctx) string {
	if unmatched, _ := c.Locals(unmatchedRouteKey).(bool); unmatched {
		return UnmatchedRoute
	}
	if path := c.Route().Path; path != "" {
		return path
	}
	return UnmatchedRoute
}

// RequestLogger logs each request once it completes and records request metrics.
// Headers are never logged since they may carry credentials.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		metrics.RecordRequest(RoutePath(c), c.Method(), status, duration)

		logger.Info("request",
			zap.String("request_id", RequestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", duration),
			zap.String("ip", c.IP()),
		)
		return err
	}
}
