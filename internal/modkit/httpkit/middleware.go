package httpkit

import (
	"net/http"
	"time"

	"lawsearch/internal/platform/net/middleware"
)

// StackOptions tune the per API scope middleware
type StackOptions struct {
	RequestTimeout time.Duration
	MaxInFlight    int
	CORS           middleware.CORSOptions
}

// CommonStack returns the middleware for the versioned API scope
// request id, logging and recovery live on the root router (middleware.Defaults)
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	mw := []func(http.Handler) http.Handler{
		middleware.CORS(o.CORS),
		middleware.Timeout(o.RequestTimeout),
	}
	if o.MaxInFlight > 0 {
		mw = append(mw, middleware.Throttle(o.MaxInFlight, o.MaxInFlight*2, o.RequestTimeout))
	}
	return mw
}
