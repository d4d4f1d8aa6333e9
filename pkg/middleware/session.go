package middleware

import (
	"net/http"
	"regexp"

	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
	"github.com/nobih83-prog/Nashwa01/pkg/httputil"
	"github.com/nobih83-prog/Nashwa01/pkg/logger"
)

// SessionHeader carries the shopper's session id.
const SessionHeader = "X-Session-ID"

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Session requires a well-formed X-Session-ID header and stores it in the
// request context, where logger.SessionIDFromContext reads it back.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			httputil.WriteError(w, r, apperrors.InvalidInput("missing "+SessionHeader+" header"), nil)
			return
		}
		if !sessionIDPattern.MatchString(id) {
			httputil.WriteError(w, r, apperrors.InvalidInput("malformed "+SessionHeader+" header"), nil)
			return
		}

		ctx := logger.WithSessionID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
