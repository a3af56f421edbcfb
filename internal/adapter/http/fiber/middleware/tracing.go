package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lyuongruouvang/shop-assistant/internal/observability/telemetry"
	"github.com/lyuongruouvang/shop-assistant/pkg/requestid"
)

// methodUse is the method Fiber reports for middleware mounted with app.Use.
const methodUse = "USE"

// Tracing opens a server span per request. Downstream spans hang off the user context.
// Spans are named after the matched route template, never the raw path.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, span := telemetry.Tracer().Start(c.UserContext(), c.Method(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.OriginalURL()),
				attribute.String("request.id", requestid.FromContext(c.UserContext())),
			),
		)
		defer span.End()

		c.SetUserContext(ctx)
		err := c.Next()

		if route := c.Route(); route != nil && route.Method != methodUse {
			span.SetName(c.Method() + " " + route.Path)
			span.SetAttributes(attribute.String("http.route", route.Path))
		}

		status := c.Response().StatusCode()
		span.SetAttributes(attribute.String("http.status_code", strconv.Itoa(status)))
		if err != nil {
			span.RecordError(err)
		}
		if err != nil || status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "request failed")
		}
		return err
	}
}
