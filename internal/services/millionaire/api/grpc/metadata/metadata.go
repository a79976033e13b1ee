package metadata

import (
	"context"
	"strings"

	"github.com/louisbranch/millionaire/internal/platform/id"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader is the gRPC metadata key for request correlation IDs.
const RequestIDHeader = "x-millionaire-request-id"

// UserIDHeader carries the authenticated player ID set by the surrounding app.
const UserIDHeader = "x-millionaire-user-id"

// LocaleHeader selects the language of user-facing error messages.
const LocaleHeader = "x-millionaire-locale"

type contextKey string

const requestIDContextKey contextKey = "millionaire-request-id"

// RequestIDFromContext returns the request ID stored by the interceptor.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey).(string)
	return value
}

// WithRequestID stores the request ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// UserIDFromContext returns the player ID from incoming metadata.
func UserIDFromContext(ctx context.Context) string {
	return strings.TrimSpace(valueFromIncomingContext(ctx, UserIDHeader))
}

// LocaleFromContext returns the requested locale from incoming metadata.
func LocaleFromContext(ctx context.Context) string {
	return strings.TrimSpace(valueFromIncomingContext(ctx, LocaleHeader))
}

// OutgoingContext attaches player and locale headers to a client call.
func OutgoingContext(ctx context.Context, userID, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	pairs := make([]string, 0, 4)
	if userID != "" {
		pairs = append(pairs, UserIDHeader, userID)
	}
	if locale != "" {
		pairs = append(pairs, LocaleHeader, locale)
	}
	if len(pairs) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

// IsPrintableASCII reports whether a string contains only printable ASCII characters.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return false
		}
	}
	return true
}

// FirstMetadataValue returns the first printable ASCII value for key.
func FirstMetadataValue(md metadata.MD, key string) string {
	for mdKey, values := range md {
		if !strings.EqualFold(mdKey, key) {
			continue
		}
		for _, value := range values {
			if IsPrintableASCII(value) {
				return value
			}
		}
	}
	return ""
}

// UnaryServerInterceptor assigns a request ID to every unary call, echoes it
// in the response headers and tags the active span with it.
func UnaryServerInterceptor(idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := valueFromIncomingContext(ctx, RequestIDHeader)
		if requestID == "" {
			generated, err := idGenerator()
			if err != nil {
				return nil, status.Errorf(codes.Internal, "ensure request metadata: %v", err)
			}
			requestID = generated
		}
		ctx = WithRequestID(ctx, requestID)
		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.String("millionaire.request_id", requestID),
			attribute.String("millionaire.user_id", UserIDFromContext(ctx)),
		)
		return handler(ctx, req)
	}
}

func valueFromIncomingContext(ctx context.Context, header string) string {
	if ctx == nil {
		return ""
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return FirstMetadataValue(md, header)
}
