package olass

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/olasslabs/olass-backend/internal/cache"
	"github.com/olasslabs/olass-backend/internal/config"
	"github.com/olasslabs/olass-backend/internal/http/handlers/asset/jobs"
	"github.com/olasslabs/olass-backend/internal/http/handlers/asset/profileread"
	"github.com/olasslabs/olass-backend/internal/http/handlers/asset/profilesubmit"
	"github.com/olasslabs/olass-backend/internal/http/handlers/asset/salarysubmit"
	"github.com/olasslabs/olass-backend/internal/http/handlers/health"
	"github.com/olasslabs/olass-backend/internal/http/handlers/user/email"
	"github.com/olasslabs/olass-backend/internal/http/middlewarectx"
	assetservice "github.com/olasslabs/olass-backend/internal/services/asset"
	userservice "github.com/olasslabs/olass-backend/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	assetService *assetservice.AssetService, userService *userservice.UserService, cacheRedis *cache.Cache) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/asset/v1", func(r chi.Router) {
		r.Get("/jobs", jobs.New(logger, assetService).ServeHTTP)
		r.Get("/profile/{uniqueId}", profileread.New(logger, assetService).ServeHTTP)
		r.Post("/profile", profilesubmit.New(logger, assetService).ServeHTTP)

		// Лимитер только на отправку зарплаты
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, cacheRedis, cfg.RateLimit.MaxCalls, cfg.RateLimit.Period))
			r.Post("/salary", salarysubmit.New(logger, assetService).ServeHTTP)
		})
	})

	r.Route("/api/user/v1", func(r chi.Router) {
		r.Post("/email", email.New(logger, userService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
