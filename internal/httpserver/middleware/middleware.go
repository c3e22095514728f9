package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/davidbz/howl/internal/config"
)

// Middleware wraps an http.Handler with additional functionality.
// Middlewares can be composed using the Chain function.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middlewares into a single middleware.
// Middlewares are applied in the order they are provided, with the first
// middleware being the outermost wrapper (executed first on request).
//
// Example:
//
//	chain := Chain(CORS(corsConfig), Trace(), RateLimit(limitConfig))
//	handler := chain(router)
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		// Apply in reverse order so first middleware wraps outermost.
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// BuildMiddlewareChain composes the middleware chain for production.
// Order matters: Recover -> CORS -> Trace -> RateLimit.
func BuildMiddlewareChain(corsConfig *config.CORSConfig, limitConfig *config.RateLimitConfig) Middleware {
	return Chain(
		chimiddleware.Recoverer,
		CORS(corsConfig),
		Trace(),
		RateLimit(limitConfig, "/health", "/metrics"),
	)
}
