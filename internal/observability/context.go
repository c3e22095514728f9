package observability

import (
	"context"
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// requestField identifies one request-scoped value carried in a context.
type requestField int

const (
	fieldTraceID requestField = iota
	fieldSpanID
	fieldRequestID
	fieldProducer
	fieldModel
)

// loggedFields lists, in log order, the values FromContext attaches.
//
//nolint:gochecknoglobals // Read-only field order
var loggedFields = [...]requestField{fieldTraceID, fieldSpanID, fieldRequestID, fieldProducer, fieldModel}

// logKey is the structured log key of the field.
func (f requestField) logKey() string {
	switch f {
	case fieldTraceID:
		return "trace_id"
	case fieldSpanID:
		return "span_id"
	case fieldRequestID:
		return "request_id"
	case fieldProducer:
		return "producer"
	case fieldModel:
		return "model"
	default:
		return "field"
	}
}

func withField(ctx context.Context, f requestField, value string) context.Context {
	return context.WithValue(ctx, f, value)
}

func fieldValue(ctx context.Context, f requestField) string {
	value, _ := ctx.Value(f).(string)
	return value
}

// WithTraceID stores the trace id of the request.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return withField(ctx, fieldTraceID, traceID)
}

// WithSpanID stores the root span id of the request.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return withField(ctx, fieldSpanID, spanID)
}

// WithRequestID stores the caller-visible request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withField(ctx, fieldRequestID, requestID)
}

// WithProducer records which producer serves the request.
func WithProducer(ctx context.Context, producer string) context.Context {
	return withField(ctx, fieldProducer, producer)
}

// WithModel records the effective model of the request.
func WithModel(ctx context.Context, model string) context.Context {
	return withField(ctx, fieldModel, model)
}

// GetTraceID and the getters below return "" when the value is absent.
func GetTraceID(ctx context.Context) string   { return fieldValue(ctx, fieldTraceID) }
func GetSpanID(ctx context.Context) string    { return fieldValue(ctx, fieldSpanID) }
func GetRequestID(ctx context.Context) string { return fieldValue(ctx, fieldRequestID) }
func GetProducer(ctx context.Context) string  { return fieldValue(ctx, fieldProducer) }
func GetModel(ctx context.Context) string     { return fieldValue(ctx, fieldModel) }

// GenerateTraceID returns a W3C trace id (32 lowercase hex chars).
func GenerateTraceID() string {
	var id trace.TraceID
	if _, err := rand.Read(id[:]); err != nil || !id.IsValid() {
		return hexUUID()
	}
	return id.String()
}

// GenerateSpanID returns a W3C span id (16 lowercase hex chars).
func GenerateSpanID() string {
	var id trace.SpanID
	if _, err := rand.Read(id[:]); err != nil || !id.IsValid() {
		return hexUUID()[:16]
	}
	return id.String()
}

// GenerateRequestID returns a random UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

func hexUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
