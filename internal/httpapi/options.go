package httpapi

import (
	"context"

	"github.com/go-chi/cors"
)

const defaultMaxBodyBytes = 1 << 20

// Process wide settings, installed by the serve command before NewMux.
var (
	maxBodyBytes int64 = defaultMaxBodyBytes
	// nil leaves CORS off
	corsOpts *cors.Options
	// canceled on shutdown; stops running batches and event streams
	serverBaseCtx = context.Background()
)

// SetMaxBodyBytes limits JSON request bodies; n <= 0 restores 1 MiB.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		n = defaultMaxBodyBytes
	}
	maxBodyBytes = n
}

// SetCORSOptions enables CORS for the given origins. Empty methods and
// headers fall back to the cors package defaults.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	if !enabled {
		corsOpts = nil
		return
	}
	corsOpts = &cors.Options{
		AllowedOrigins: append([]string(nil), origins...),
		AllowedMethods: append([]string(nil), methods...),
		AllowedHeaders: append([]string(nil), headers...),
	}
}

// SetBaseContext sets the context every batch and event stream is joined
// with. nil resets it to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// joinContexts derives from b and is also canceled when a is done. The
// returned cancel must be called to release the watch on a.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(b)
	stop := context.AfterFunc(a, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
