package middleware

import (
	"net/http"
	"runtime/debug"

	perr "lawsearch/internal/platform/errors"
	"lawsearch/internal/platform/logger"
	phttp "lawsearch/internal/platform/net/http"
)

// RecoverJSON turns a panic into a JSON 500 envelope and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			phttp.RespondError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
