package httpx

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/freecontest/userbackend/pkg/slogx"
	"github.com/getsentry/sentry-go"
)

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// Chain wraps h with mws so that the first middleware listed is the
// outermost, i.e. the first to see the request.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recover turns a panic in a downstream handler into a response written by
// onPanic. The panic and stack are reported to Sentry (a no-op when Sentry
// is not initialised) and logged.
func Recover(onPanic http.Handler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				stack := string(debug.Stack())
				sentry.WithScope(func(scope *sentry.Scope) {
					scope.SetExtra("panic", fmt.Sprint(rec))
					scope.SetExtra("stack", stack)
					scope.SetTag("method", r.Method)
					scope.SetTag("path", r.URL.Path)
					sentry.CaptureMessage("panic in request")
				})

				slogx.FromContext(r.Context()).Error("panic_recovered",
					"panic", fmt.Sprint(rec),
					"stack", stack,
				)

				onPanic.ServeHTTP(w, r)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
