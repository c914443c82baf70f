// Package web собирает HTTP API: каталог, подачу заявок, вход и личный кабинет.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/cache"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/config"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/handlers/health"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/jwt"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/migrations"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/objectstore"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/application"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/lookup"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/session"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	store, err := objectstore.New(ctx, cfg.ObjectStorage, logger)
	if err != nil {
		_ = db.Close()
		_ = cacheRedis.Close()
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		_ = db.Close()
		_ = cacheRedis.Close()
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationQueues())
	if err != nil {
		_ = conn.Close()
		_ = db.Close()
		_ = cacheRedis.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	tokens := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	lookupService := lookup.NewService(logger, db, cfg.RemoteCallTimeout)
	sessionService := session.NewService(logger, cacheRedis, lookupService, tokens)
	applicationService := application.NewService(logger, db, store, rabbitmq.NewPublisher(ch),
		sessionService, cfg.RemoteCallTimeout, cfg.MaxUploadBytes)

	deps := Deps{
		Applications:   applicationService,
		Sessions:       sessionService,
		Tokens:         tokens,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Checks: map[string]health.Pinger{
			"postgres": db,
			"redis":    cacheRedis,
		},
	}
	if local, ok := store.(*objectstore.LocalStore); ok && cfg.PublicURL == "" {
		deps.UploadsDir = local.BasePath()
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, deps)

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
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
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
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}
	a.close()
	return err
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
