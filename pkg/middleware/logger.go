package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewStructuredLogger is a custom middleware that provides structured logging for requests.
func NewStructuredLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			tww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			tStart := time.Now()
			defer func() {
				status := tww.Status()
				latency := time.Since(tStart)

				requestFields := zap.Dict("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)

				responseFields := zap.Dict("response",
					zap.Int("status", status),
					zap.Int("bytes", tww.BytesWritten()),
					zap.Duration("latency", latency),
				)

				fields := []zap.Field{requestFields, responseFields}
				if reqID := middleware.GetReqID(r.Context()); reqID != "" {
					fields = append(fields, zap.String("request_id", reqID))
				}
				if claims, ok := ClaimsFrom(r.Context()); ok {
					fields = append(fields, zap.String("account_id", claims.Subject))
				}

				if status >= 500 {
					logger.Error("server error", fields...)
				} else {
					logger.Info("request completed", fields...)
				}
			}()

			next.ServeHTTP(tww, r)
		}
		return http.HandlerFunc(fn)
	}
}

// RequestID returns the ID chi's RequestID middleware assigned to r.
func RequestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
