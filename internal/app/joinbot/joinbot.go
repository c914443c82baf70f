// Package joinbot принимает вебхук Telegram и пускает в закрытые каналы
// подписчиков с одобренной и не истёкшей заявкой.
package joinbot

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/config"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/health"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/telegram/webhook"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/telegram"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/metrics"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/joinrequest"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err := db.WaitReady(ctx, 10, 3*time.Second); err != nil {
		_ = db.Close()
		return nil, err
	}

	bot, err := telegram.New(cfg.Telegram)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("telegram bot authorized", slog.String("username", bot.Username()))

	authorizer := joinrequest.NewAuthorizer(logger, db, bot, cfg.RemoteCallTimeout)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authorizer, cfg.WebhookSecret, map[string]health.Pinger{"postgres": db})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// RegisterRoutes регистрирует вебхук и служебные маршруты.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authorizer webhook.Authorizer, secret string, checks map[string]health.Pinger) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
	)
	r.Post("/telegram/webhook", webhook.New(logger, authorizer, secret).ServeHTTP)
	r.Get("/healthz", health.New(logger, checks).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("join bot webhook listening", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down join bot gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}
	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close database", sl.Err(cerr))
	}
	return err
}
