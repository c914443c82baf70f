package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/account/dashboard"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/account/login"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/account/logout"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/application/submit"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/catalog/plans"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/catalog/quote"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/health"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/metrics"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/application"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/session"
)

// Deps зависимости маршрутов веб-сервиса.
type Deps struct {
	Applications   *application.Service
	Sessions       *session.Service
	Tokens         middlewarectx.TokenParser
	Checks         map[string]health.Pinger
	MaxUploadBytes int64
	// UploadsDir каталог локального хранилища, пустой если скриншоты лежат в S3
	UploadsDir string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/plans", plans.New(logger).ServeHTTP)
		r.Get("/quote", quote.New(logger).ServeHTTP)
		r.Post("/applications", submit.New(logger, deps.Applications, deps.MaxUploadBytes).ServeHTTP)
		r.With(middlewarectx.RateLimitMiddleware(logger, rate.Every(2*time.Second), 5)).
			Post("/login", login.New(logger, deps.Sessions).ServeHTTP)

		// Группа с токеном сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(deps.Tokens, logger))
			r.Get("/dashboard", dashboard.New(logger, deps.Sessions).ServeHTTP)
			r.Post("/logout", logout.New(logger, deps.Sessions).ServeHTTP)
		})
	})

	if deps.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))
	}

	r.Get("/healthz", health.New(logger, deps.Checks).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
