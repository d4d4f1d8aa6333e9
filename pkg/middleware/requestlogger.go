package middleware

import (
	"log/slog"
	"net/http"

	"github.com/nobih83-prog/Nashwa01/pkg/logger"
)

// RequestLogger stores a request-scoped logger in context carrying
// correlation_id, session_id, trace_id and span_id. Mount it after
// RequestLogging, Tracing and Session so those values are already present.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if logger.SessionIDFromContext(ctx) == "" {
				if id := r.Header.Get(SessionHeader); sessionIDPattern.MatchString(id) {
					ctx = logger.WithSessionID(ctx, id)
				}
			}

			enriched := logger.WithContext(ctx, base)
			if sub := SubjectFromContext(ctx); sub != "" {
				enriched = enriched.With(slog.String("subject", sub))
			}
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
