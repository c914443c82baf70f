package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/access"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/metrics"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/objectstore"
)

// Repository создаёт записи заявок.
type Repository interface {
	CreateApplication(ctx context.Context, r models.Record) (int64, time.Time, error)
}

// Publisher публикует уведомления в очередь.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Sessions открывает сессию заявителя после подачи заявки.
type Sessions interface {
	Start(ctx context.Context, app *models.Application) (string, error)
}

// Result ответ на успешную подачу заявки.
type Result struct {
	Application *models.Application `json:"application"`
	Token       string              `json:"token,omitempty"`
	PaymentNote string              `json:"payment_note"`
}

type Service struct {
	log            *slog.Logger
	repo           Repository
	store          objectstore.Store
	publisher      Publisher
	sessions       Sessions
	timeout        time.Duration
	maxUploadBytes int64
	now            func() time.Time
}

func NewService(log *slog.Logger, repo Repository, store objectstore.Store, publisher Publisher,
	sessions Sessions, timeout time.Duration, maxUploadBytes int64) *Service {
	return &Service{
		log:            log,
		repo:           repo,
		store:          store,
		publisher:      publisher,
		sessions:       sessions,
		timeout:        timeout,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

// Submit проверяет форму, загружает скриншот и только после успешной загрузки
// создаёт запись. Если запись создать не удалось, загруженный объект удаляется.
// Ошибки публикации события и открытия сессии не отменяют уже сохранённую заявку.
func (s *Service) Submit(ctx context.Context, form Form, proof *Proof) (*Result, error) {
	const op = "application.Submit"
	log := s.log.With(slog.String("op", op))

	app, err := Assemble(form, proof)
	if err != nil {
		metrics.ApplicationsSubmitted.WithLabelValues("invalid").Inc()
		return nil, err
	}

	data, contentType, err := objectstore.NormalizeSlip(proof.Body, s.maxUploadBytes)
	if err != nil {
		metrics.ApplicationsSubmitted.WithLabelValues("invalid").Inc()
		switch {
		case errors.Is(err, objectstore.ErrTooLarge):
			return nil, &ValidationError{Fields: []FieldError{{Field: "payment_slip", Message: "file is too large"}}}
		case errors.Is(err, objectstore.ErrUnsupportedType):
			return nil, &ValidationError{Fields: []FieldError{{Field: "payment_slip", Message: "must be an image"}}}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	key := objectstore.SlipKey(s.now(), ".jpg")
	uploadCtx, cancel := context.WithTimeout(ctx, s.timeout)
	url, err := s.store.Put(uploadCtx, key, bytes.NewReader(data), contentType)
	cancel()
	if err != nil {
		log.Error("failed to upload payment slip", sl.Err(err))
		metrics.ApplicationsSubmitted.WithLabelValues("upload_failed").Inc()
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUpload, err)
	}
	app.PaymentSlipURL = url

	dbCtx, cancel := context.WithTimeout(ctx, s.timeout)
	id, createdAt, err := s.repo.CreateApplication(dbCtx, ToRecord(app))
	cancel()
	if err != nil {
		log.Error("failed to save application", sl.Err(err))
		metrics.ApplicationsSubmitted.WithLabelValues("store_failed").Inc()
		s.removeSlip(ctx, key)
		return nil, fmt.Errorf("%s: %w: %w", op, ErrStore, err)
	}
	app.ID = id
	app.CreatedAt = createdAt
	metrics.ApplicationsSubmitted.WithLabelValues("ok").Inc()
	log.Info("application submitted",
		slog.Int64("id", id),
		slog.String("plan", string(app.Plan)),
		slog.Int("duration", app.Duration.Months()),
	)

	if err := s.publisher.Publish(ctx, rabbitmq.RoutingSubmitted, submittedEvent(app)); err != nil {
		log.Warn("failed to publish submitted event", sl.Err(err), slog.Int64("id", id))
	}

	token, err := s.sessions.Start(ctx, app)
	if err != nil {
		log.Warn("failed to start session", sl.Err(err), slog.Int64("id", id))
	}

	return &Result{
		Application: app,
		Token:       token,
		PaymentNote: access.PaymentNote(app.FullName, app.Plan, app.Duration),
	}, nil
}

func (s *Service) removeSlip(ctx context.Context, key string) {
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	if err := s.store.Delete(delCtx, key); err != nil {
		s.log.Warn("failed to remove orphaned payment slip", sl.Err(err), slog.String("key", key))
	}
}

func submittedEvent(app *models.Application) models.SubmittedEvent {
	return models.SubmittedEvent{
		ApplicationID:  app.ID,
		FullName:       app.FullName,
		Email:          app.Email,
		Telegram:       app.Telegram,
		Plan:           string(app.Plan),
		Duration:       app.Duration.Label(),
		Amount:         app.AmountDisplay(),
		PaymentMethod:  app.PaymentMethod,
		PaymentSlipURL: app.PaymentSlipURL,
	}
}
