// Package joinrequest решает судьбу заявок на вступление в закрытые каналы.
//
// Пускаем только по точному совпадению telegram-ника с одобренной и не истёкшей
// заявкой. Ошибка хранилища никогда не приводит к одобрению.
package joinrequest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/metrics"
)

// ErrLookup хранилище не ответило, решение не принято.
var ErrLookup = errors.New("subscriber lookup failed")

// Store проверяет наличие активной подписки по нику вида "@name".
type Store interface {
	FindApprovedByTelegram(ctx context.Context, handle string, now time.Time) (bool, error)
}

// Moderator выполняет решение в Telegram.
type Moderator interface {
	Approve(chatID, userID int64) error
	Decline(chatID, userID int64) error
}

// JoinRequest заявка пользователя на вступление в канал.
// Username приходит без "@" и может быть пустым.
type JoinRequest struct {
	ChatID   int64
	UserID   int64
	Username string
}

type Decision int

const (
	// Defer заявку не трогаем, она остаётся в ожидании в Telegram.
	Defer Decision = iota
	Approve
	Decline
)

func (d Decision) String() string {
	switch d {
	case Approve:
		return "approve"
	case Decline:
		return "decline"
	default:
		return "defer"
	}
}

type Authorizer struct {
	log       *slog.Logger
	store     Store
	moderator Moderator
	timeout   time.Duration
	now       func() time.Time
}

func NewAuthorizer(log *slog.Logger, store Store, moderator Moderator, timeout time.Duration) *Authorizer {
	return &Authorizer{
		log:       log,
		store:     store,
		moderator: moderator,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Decide принимает решение, ничего не отправляя в Telegram.
func (a *Authorizer) Decide(ctx context.Context, req JoinRequest) (Decision, error) {
	const op = "joinrequest.Decide"
	if req.Username == "" {
		return Decline, nil
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	found, err := a.store.FindApprovedByTelegram(ctx, "@"+req.Username, a.now().UTC())
	if err != nil {
		return Defer, fmt.Errorf("%s: %w: %w", op, ErrLookup, err)
	}
	if found {
		return Approve, nil
	}
	return Defer, nil
}

// Handle принимает решение и выполняет его. При ошибке хранилища заявка остаётся
// в ожидании, а ошибка возвращается вызывающему.
func (a *Authorizer) Handle(ctx context.Context, req JoinRequest) (Decision, error) {
	const op = "joinrequest.Handle"
	log := a.log.With(
		sl.Op(op),
		slog.Int64("chat_id", req.ChatID),
		slog.Int64("user_id", req.UserID),
		slog.String("username", req.Username),
	)

	decision, err := a.Decide(ctx, req)
	if err != nil {
		metrics.JoinRequestDecisions.WithLabelValues("error").Inc()
		log.Error("failed to check subscriber", sl.Err(err))
		return Defer, err
	}

	switch decision {
	case Approve:
		err = a.moderator.Approve(req.ChatID, req.UserID)
	case Decline:
		err = a.moderator.Decline(req.ChatID, req.UserID)
	}
	if err != nil {
		metrics.JoinRequestDecisions.WithLabelValues("error").Inc()
		log.Error("failed to send decision", slog.String("decision", decision.String()), sl.Err(err))
		return decision, fmt.Errorf("%s: %w", op, err)
	}

	metrics.JoinRequestDecisions.WithLabelValues(decision.String()).Inc()
	log.Info("join request handled", slog.String("decision", decision.String()))
	return decision, nil
}
