// Package session хранит вид заявки для вошедшего заявителя в redis.
// Клиент получает только подписанный токен с идентификатором сессии.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/jwt"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/lookup"
)

// ErrNoSession сессия истекла или была закрыта.
var ErrNoSession = errors.New("session not found")

type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Finder повторно читает заявку из хранилища.
type Finder interface {
	Lookup(ctx context.Context, email, phone string) (*models.Application, error)
}

type Service struct {
	log    *slog.Logger
	cache  Cache
	finder Finder
	tokens jwt.Maker
}

func NewService(log *slog.Logger, cache Cache, finder Finder, tokens jwt.Maker) *Service {
	return &Service{log: log, cache: cache, finder: finder, tokens: tokens}
}

func key(sessionID string) string {
	return "session:" + sessionID
}

// Start сохраняет вид заявки под новой сессией и возвращает токен.
func (s *Service) Start(ctx context.Context, app *models.Application) (string, error) {
	const op = "session.Start"
	sid := uuid.NewString()
	if err := s.cache.Set(ctx, key(sid), app, s.tokens.TTL()); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.tokens.GenerateToken(sid, app.ID)
	if err != nil {
		_ = s.cache.Invalidate(ctx, key(sid))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Login ищет заявку по email и телефону и открывает для неё сессию.
// Ошибки lookup.ErrNotFound и lookup.ErrLookup возвращаются как есть.
func (s *Service) Login(ctx context.Context, email, phone string) (*models.Application, string, error) {
	const op = "session.Login"
	app, err := s.finder.Lookup(ctx, email, phone)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.Start(ctx, app)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return app, token, nil
}

// Get возвращает сохранённый вид заявки без обращения к базе.
func (s *Service) Get(ctx context.Context, sessionID string) (*models.Application, error) {
	const op = "session.Get"
	var app models.Application
	found, err := s.cache.Get(ctx, key(sessionID), &app)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, ErrNoSession
	}
	return &app, nil
}

// Reconcile один раз перечитывает заявку и перезаписывает кэш, если запись изменилась
// (например оператор одобрил заявку). Если база недоступна или запись пропала,
// возвращается сохранённый вид.
func (s *Service) Reconcile(ctx context.Context, sessionID string) (*models.Application, error) {
	const op = "session.Reconcile"
	log := s.log.With(sl.Op(op))

	cached, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fresh, err := s.finder.Lookup(ctx, cached.Email, cached.Phone)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			log.Warn("application disappeared, serving cached view", slog.Int64("id", cached.ID))
		} else {
			log.Warn("failed to refresh application, serving cached view", sl.Err(err))
		}
		return cached, nil
	}

	if !changed(cached, fresh) {
		return cached, nil
	}

	// название "другого" класса не хранится в базе, берём его из сессии
	if fresh.OtherStudentClass == "" && slices.Equal(fresh.StudentClasses, withOther(cached)) {
		fresh.StudentClasses = cached.StudentClasses
		fresh.OtherStudentClass = cached.OtherStudentClass
	}

	if err := s.cache.Set(ctx, key(sessionID), fresh, s.tokens.TTL()); err != nil {
		log.Warn("failed to update cached application", sl.Err(err))
	}
	log.Info("application view refreshed",
		slog.Int64("id", fresh.ID),
		slog.String("status", string(fresh.Status)),
	)
	return fresh, nil
}

// Logout закрывает сессию. Повторный выход ошибкой не считается.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	const op = "session.Logout"
	if err := s.cache.Invalidate(ctx, key(sessionID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func withOther(app *models.Application) []string {
	if app.OtherStudentClass == "" {
		return app.StudentClasses
	}
	return append(slices.Clone(app.StudentClasses), app.OtherStudentClass)
}

func changed(cached, fresh *models.Application) bool {
	if cached.ID != fresh.ID || cached.Status != fresh.Status ||
		cached.Plan != fresh.Plan || cached.Duration != fresh.Duration ||
		cached.Format != fresh.Format || cached.IsStudent != fresh.IsStudent ||
		cached.Telegram != fresh.Telegram || cached.FullName != fresh.FullName ||
		cached.PaymentSlipURL != fresh.PaymentSlipURL || !cached.Amount.Equal(fresh.Amount) {
		return true
	}
	if !slices.Equal(withOther(cached), fresh.StudentClasses) {
		return true
	}
	switch {
	case cached.EndDate == nil && fresh.EndDate == nil:
		return false
	case cached.EndDate == nil || fresh.EndDate == nil:
		return true
	default:
		return !cached.EndDate.Equal(*fresh.EndDate)
	}
}
