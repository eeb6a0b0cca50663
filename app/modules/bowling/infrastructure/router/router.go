package bowlingrouter

import (
	bowlinghandlers "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// BasePath is where the bowling API is mounted.
const BasePath = "/api/bowling"

// Options configures the bowling routes.
type Options struct {
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
}

// Register mounts the bowling API on r.
func Register(r chi.Router, handlers bowlinghandlers.Handlers, opts Options) {
	limiter := bowlinghandlers.NewClientLimiter(bowlinghandlers.DefaultLimiterOptions(opts.RateLimit, opts.RateBurst))

	r.Route(BasePath, func(r chi.Router) {
		if len(opts.AllowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: opts.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
				ExposedHeaders: []string{"X-Request-Id"},
				MaxAge:         300,
			}))
		}
		r.Use(bowlinghandlers.RateLimitMiddleware(limiter))

		r.Post("/score", handlers.HandleScore)
		r.Get("/chart", handlers.HandleChart)
		r.Get("/strategies", handlers.HandleStrategies)
	})
}
