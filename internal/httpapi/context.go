package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is a process-level context that can be canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// predictContext derives the context for one predict call: canceled when the
// client goes away, when the server shuts down, or after predictTimeout.
func predictContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(r.Context())
	if serverBaseCtx.Err() != nil {
		cancel()
	}
	stop := context.AfterFunc(serverBaseCtx, cancel)
	if predictTimeout <= 0 {
		return ctx, func() { stop(); cancel() }
	}
	tctx, tcancel := context.WithTimeout(ctx, predictTimeout)
	return tctx, func() { tcancel(); stop(); cancel() }
}
