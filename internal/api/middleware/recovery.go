package middleware

import (
	"log/slog"
	"net/http"

	"github.com/blaisecz/sleep-dashboard/internal/xslog"
	"github.com/blaisecz/sleep-dashboard/pkg/problem"
)

// Recovery recovers from panics and returns a 500 error
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.ErrorContext(r.Context(), "panic recovered",
						xslog.ErrorAny(err),
						xslog.RequestID(RequestIDFromContext(r.Context())),
						xslog.RequestMethod(r),
						xslog.RequestPath(r),
						xslog.Stack(),
					)
					problem.InternalError("An unexpected error occurred").WithInstance(r.URL.Path).Write(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
