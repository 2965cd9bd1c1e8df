package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"telejoin/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack; zero values pick the defaults
type StackOptions struct {
	Timeout     time.Duration
	MaxBody     int64
	Throttle    int
	SlowRequest time.Duration
	Origins     []string
}

// CommonStack returns the baseline middleware slice for the api
// liveness stays on the root router, see middleware.Heartbeat
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// observability wraps recovery so panics are logged with their 500
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,

		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.Origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Throttle(o.Throttle),
		middleware.Timeout(o.Timeout),
	}
	if o.MaxBody > 0 {
		stack = append(stack, middleware.MaxBody(o.MaxBody))
	}
	return stack
}
