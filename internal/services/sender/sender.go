// Package sender отправляет письма по событиям из очереди уведомлений.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/metrics"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
)

const (
	kindSubmitted = "submitted"
	kindExpiring  = "expiring"
)

type Mailer interface {
	Send(to []string, subject, body string) error
}

type Service struct {
	mailer   Mailer
	operator string
	log      *slog.Logger
}

// NewService создаёт Service. operator адрес, на который приходят новые заявки.
func NewService(log *slog.Logger, mailer Mailer, operator string) *Service {
	return &Service{
		mailer:   mailer,
		operator: operator,
		log:      log,
	}
}

// HandleSubmitted уведомляет оператора о новой заявке со ссылкой на квитанцию.
// Битое сообщение отбрасывается, ошибка отправки возвращается, чтобы сообщение вернулось в очередь.
func (s *Service) HandleSubmitted(body []byte) error {
	const op = "sender.HandleSubmitted"
	log := s.log.With(sl.Op(op))

	var event models.SubmittedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal message body, dropping", sl.Err(err))
		metrics.NotificationsSent.WithLabelValues(kindSubmitted, "dropped").Inc()
		return nil
	}
	if s.operator == "" {
		log.Warn("operator email is not configured, dropping", slog.Int64("application_id", event.ApplicationID))
		metrics.NotificationsSent.WithLabelValues(kindSubmitted, "dropped").Inc()
		return nil
	}

	subject := fmt.Sprintf("New application #%d: %s, %s %s", event.ApplicationID, event.FullName, event.Plan, event.Duration)
	text := strings.Join([]string{
		"A new subscription application is waiting for review.",
		"",
		"Name: " + event.FullName,
		"Email: " + event.Email,
		"Telegram: " + event.Telegram,
		"Plan: " + event.Plan + ", " + event.Duration,
		"Amount: " + event.Amount + " via " + event.PaymentMethod,
		"Payment slip: " + event.PaymentSlipURL,
	}, "\n")

	return s.send(log, kindSubmitted, []string{s.operator}, subject, text)
}

// HandleExpiring напоминает подписчику, что доступ скоро закончится.
func (s *Service) HandleExpiring(body []byte) error {
	const op = "sender.HandleExpiring"
	log := s.log.With(sl.Op(op))

	var info models.ExpiringInfo
	if err := json.Unmarshal(body, &info); err != nil {
		log.Error("failed to unmarshal message body, dropping", sl.Err(err))
		metrics.NotificationsSent.WithLabelValues(kindExpiring, "dropped").Inc()
		return nil
	}
	if info.Email == "" {
		log.Warn("expiring notice without email, dropping")
		metrics.NotificationsSent.WithLabelValues(kindExpiring, "dropped").Inc()
		return nil
	}

	subject := "Your " + info.Plan + " subscription is ending soon"
	text := fmt.Sprintf("Hello, %s!\n\n"+
		"Your %s access to the model library ends on %s (UTC).\n"+
		"Renew your plan in advance to keep access to the channels.",
		info.FullName, info.Plan, info.EndDate.UTC().Format("2 Jan 2006 15:04"))

	return s.send(log, kindExpiring, []string{info.Email}, subject, text)
}

func (s *Service) send(log *slog.Logger, kind string, to []string, subject, text string) error {
	if err := s.mailer.Send(to, subject, text); err != nil {
		metrics.NotificationsSent.WithLabelValues(kind, "failed").Inc()
		log.Error("failed to send email", slog.Any("to", to), sl.Err(err))
		return err
	}
	metrics.NotificationsSent.WithLabelValues(kind, "sent").Inc()
	log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
