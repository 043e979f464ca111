package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"ems/internal/transport/http/api"
)

// Recover is the single boundary for panics escaping a handler. The caller
// always gets a generic 500; the panic value and stack only ever reach the
// response in development mode.
func Recover(development bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					slog.Error("panic in handler",
						"panic", fmt.Sprint(recovered),
						"path", r.URL.Path,
						"requestId", GetRequestID(r.Context()),
						"stack", string(debug.Stack()),
					)
					message := "internal server error"
					if development {
						message = fmt.Sprint(recovered)
					}
					api.Fail(w, http.StatusInternalServerError, "internal", message, GetRequestID(r.Context()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
