// Package scheduler периодически ищет подписки, доступ по которым скоро закончится,
// и ставит напоминания в очередь уведомлений. Статусы заявок не меняются.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
)

type Repository interface {
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringInfo, error)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
	// window насколько вперёд смотрим, обычно сутки
	window time.Duration
	now    func() time.Time
}

func NewService(log *slog.Logger, repo Repository, publisher Publisher, window time.Duration) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		window:    window,
		now:       time.Now,
	}
}

// Run выполняет проход сразу и затем каждые interval, пока не отменён ctx.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce публикует напоминание для каждой подписки с end_date в (now, now+window].
// Возвращает число опубликованных сообщений.
func (s *Service) RunOnce(ctx context.Context) int {
	const op = "scheduler.RunOnce"
	log := s.log.With(sl.Op(op))

	from := s.now().UTC()
	to := from.Add(s.window)
	infos, err := s.repo.FindExpiringBetween(ctx, from, to)
	if err != nil {
		log.Error("failed to find expiring subscriptions", sl.Err(err))
		return 0
	}
	if len(infos) == 0 {
		log.Info("no expiring subscriptions found")
		return 0
	}

	log.Info("found expiring subscriptions", slog.Int("count", len(infos)))
	published := 0
	for _, info := range infos {
		if err := s.publisher.Publish(ctx, rabbitmq.RoutingExpiring, info); err != nil {
			log.Error("failed to publish message", slog.String("email", info.Email), sl.Err(err))
			continue
		}
		published++
	}
	return published
}
