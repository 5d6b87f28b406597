package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/nayanishant/vegetable-wholesaler/internal/auth"
	"github.com/nayanishant/vegetable-wholesaler/pkg/logger"
	"go.uber.org/zap"
)

const maxRequestBodySize = 1 << 20 // 1MB

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger stores a logger carrying the request and trace ids in the context.
func RequestLogger(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger.WithTrace(r.Context(), base).With(zap.String("request_id", getRequestID(r.Context())))
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loggerKey, l)))
		})
	}
}

func LimitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		next.ServeHTTP(w, r)
	})
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func loggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// requireSession returns the session attached by the route guard, answering
// 401 when there is none.
func requireSession(w http.ResponseWriter, r *http.Request) (*auth.Session, bool) {
	s := auth.SessionFromContext(r.Context())
	if s == nil {
		respondError(w, r, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return nil, false
	}
	return s, true
}
