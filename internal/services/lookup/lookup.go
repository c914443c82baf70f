// Package lookup находит заявку по email и телефону и восстанавливает её
// каноническое представление из строки таблицы.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/catalog"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/metrics"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
)

var (
	// ErrNotFound заявки с такими данными нет. Обычный отрицательный ответ, не сбой.
	ErrNotFound = errors.New("account not found")
	// ErrLookup хранилище недоступно, запрос можно повторить.
	ErrLookup = errors.New("lookup failed")
)

// Repository ищет строки заявок.
type Repository interface {
	FindByCredentials(ctx context.Context, email, phone string) ([]models.Record, error)
}

type Service struct {
	log     *slog.Logger
	repo    Repository
	timeout time.Duration
}

func NewService(log *slog.Logger, repo Repository, timeout time.Duration) *Service {
	return &Service{log: log, repo: repo, timeout: timeout}
}

// Lookup ищет заявку по точному совпадению email и телефона.
// При нескольких совпадениях возвращается первая по id, аномалия пишется в лог.
func (s *Service) Lookup(ctx context.Context, email, phone string) (*models.Application, error) {
	const op = "lookup.Lookup"
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" || phone == "" {
		metrics.Logins.WithLabelValues("not_found").Inc()
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.repo.FindByCredentials(ctx, email, phone)
	if err != nil {
		s.log.Error("failed to look up application", sl.Op(op), sl.Err(err))
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%s: %w: %w", op, ErrLookup, err)
	}
	if len(records) == 0 {
		metrics.Logins.WithLabelValues("not_found").Inc()
		return nil, ErrNotFound
	}
	if len(records) > 1 {
		ids := make([]int64, 0, len(records))
		for _, r := range records {
			ids = append(ids, r.ID)
		}
		s.log.Warn("duplicate applications for credentials, using the first",
			sl.Op(op), slog.Any("ids", ids))
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	return FromRecord(records[0]), nil
}

// FromRecord восстанавливает заявку из строки таблицы.
// Срок разбирается по метке (неизвестная метка даёт 12 месяцев), страна выводится из
// способа оплаты. Название "другого" класса отдельно не хранится и не восстанавливается.
func FromRecord(r models.Record) *models.Application {
	country := catalog.CountryFromPaymentMethod(r.PaymentMethod)

	var classes []string
	if r.RtaClassName != "" {
		classes = strings.Split(r.RtaClassName, ", ")
	}

	cur := catalog.Currency(r.Currency)
	if cur == "" {
		cur = country.Currency()
	}

	return &models.Application{
		ID:             r.ID,
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.PhoneNumber,
		Telegram:       r.TelegramUsername,
		Country:        country,
		Plan:           catalog.Tier(r.PlanTier),
		Duration:       catalog.ParseDurationLabel(r.PlanDuration),
		Format:         catalog.SoftwareFormat(r.SoftwareFormat),
		IsStudent:      r.IsRtaStudent,
		StudentClasses: classes,
		PaymentSlipURL: r.PaymentSlipURL,
		Amount:         r.Amount,
		Currency:       cur,
		PaymentMethod:  r.PaymentMethod,
		Status:         models.Status(r.Status),
		EndDate:        r.EndDate,
		CreatedAt:      r.CreatedAt,
	}
}
