package observability

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

type contextKey string

const (
	traceIDBytes = 16 // OpenTelemetry trace ID size in bytes
	spanIDBytes  = 8  // OpenTelemetry span ID size in bytes
)

const (
	// TraceIDKey holds the OpenTelemetry trace ID.
	TraceIDKey contextKey = "trace_id"

	// SpanIDKey holds the OpenTelemetry span ID.
	SpanIDKey contextKey = "span_id"

	// RequestIDKey holds the unique request identifier.
	RequestIDKey contextKey = "request_id"

	// ServiceKey holds the product/service name being aggregated.
	ServiceKey contextKey = "service"

	// DatasetKey holds the analytics dataset name being queried.
	DatasetKey contextKey = "dataset"
)

// WithTraceID injects trace ID into context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// WithSpanID injects span ID into context.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, SpanIDKey, spanID)
}

// WithRequestID injects request ID into context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithService injects the product/service name into context.
func WithService(ctx context.Context, service string) context.Context {
	return context.WithValue(ctx, ServiceKey, service)
}

// WithDataset injects the analytics dataset name into context.
func WithDataset(ctx context.Context, dataset string) context.Context {
	return context.WithValue(ctx, DatasetKey, dataset)
}

// GetTraceID extracts trace ID from context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// GetSpanID extracts span ID from context.
func GetSpanID(ctx context.Context) string {
	if spanID, ok := ctx.Value(SpanIDKey).(string); ok {
		return spanID
	}
	return ""
}

// GetRequestID extracts request ID from context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetService extracts the product/service name from context.
func GetService(ctx context.Context) string {
	if service, ok := ctx.Value(ServiceKey).(string); ok {
		return service
	}
	return ""
}

// GetDataset extracts the analytics dataset name from context.
func GetDataset(ctx context.Context) string {
	if dataset, ok := ctx.Value(DatasetKey).(string); ok {
		return dataset
	}
	return ""
}

// GenerateTraceID creates a random OpenTelemetry-sized trace ID.
func GenerateTraceID() string {
	return randomHex(traceIDBytes)
}

// GenerateSpanID creates a random OpenTelemetry-sized span ID.
func GenerateSpanID() string {
	return randomHex(spanIDBytes)
}

// GenerateRequestID creates a unique request identifier.
func GenerateRequestID() string {
	return uuid.NewString()
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to a UUID-derived value; rand.Read on a broken system
		// should not take request handling down with it.
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
