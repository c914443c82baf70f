// Package storage хранит заявки на подписку в PostgreSQL (таблица subscriptions).
// Запись создаётся только при подаче заявки. Статус и end_date меняет оператор
// вне этого сервиса, здесь они только читаются.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New открывает пул соединений и проверяет доступность базы.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// CheckDatabaseReady проверяет, что миграции применены.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	const op = "storage.CheckDatabaseReady"
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_name = 'subscriptions'
	)`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: required table subscriptions missing", op)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

const recordColumns = `id, full_name, email, phone_number, telegram_username, plan_tier, plan_duration,
	amount_mmk, amount_thb, amount, currency, is_rta_student, rta_class_name, software_format,
	payment_method, payment_slip_url, status, end_date, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (models.Record, error) {
	var r models.Record
	err := row.Scan(&r.ID, &r.FullName, &r.Email, &r.PhoneNumber, &r.TelegramUsername,
		&r.PlanTier, &r.PlanDuration, &r.AmountMMK, &r.AmountTHB, &r.Amount, &r.Currency,
		&r.IsRtaStudent, &r.RtaClassName, &r.SoftwareFormat, &r.PaymentMethod,
		&r.PaymentSlipURL, &r.Status, &r.EndDate, &r.CreatedAt)
	return r, err
}

// CreateApplication вставляет новую заявку со статусом из записи и возвращает её ID и время создания.
func (s *Storage) CreateApplication(ctx context.Context, r models.Record) (int64, time.Time, error) {
	const op = "storage.CreateApplication"
	select {
	case <-ctx.Done():
		return 0, time.Time{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (full_name, email, phone_number, telegram_username,
				plan_tier, plan_duration, amount_mmk, amount_thb, amount, currency,
				is_rta_student, rta_class_name, software_format, payment_method,
				payment_slip_url, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			  RETURNING id, created_at`
	var (
		id        int64
		createdAt time.Time
	)
	err := s.DB.QueryRowContext(ctx, query,
		r.FullName, r.Email, r.PhoneNumber, r.TelegramUsername,
		r.PlanTier, r.PlanDuration, r.AmountMMK, r.AmountTHB, r.Amount, r.Currency,
		r.IsRtaStudent, r.RtaClassName, r.SoftwareFormat, r.PaymentMethod,
		r.PaymentSlipURL, r.Status).Scan(&id, &createdAt)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return id, createdAt, nil
}

// FindByCredentials возвращает все заявки с точным совпадением email и телефона, по возрастанию id.
func (s *Storage) FindByCredentials(ctx context.Context, email, phone string) ([]models.Record, error) {
	const op = "storage.FindByCredentials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + recordColumns + `
			  FROM subscriptions
			  WHERE email = $1 AND phone_number = $2
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, email, phone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var res []models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// FindApprovedByTelegram сообщает, есть ли одобренная и не истёкшая на момент now заявка
// с точно таким telegram-ником (вместе с @).
func (s *Storage) FindApprovedByTelegram(ctx context.Context, handle string, now time.Time) (bool, error) {
	const op = "storage.FindApprovedByTelegram"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
				SELECT 1 FROM subscriptions
				WHERE telegram_username = $1
				  AND status = 'approved'
				  AND end_date > $2
			  )`
	var found bool
	if err := s.DB.QueryRowContext(ctx, query, handle, now).Scan(&found); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return found, nil
}

// FindExpiringBetween возвращает одобренные заявки, у которых end_date попадает в (from, to].
func (s *Storage) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringInfo, error) {
	const op = "storage.FindExpiringBetween"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, full_name, plan_tier, end_date
			  FROM subscriptions
			  WHERE status = 'approved'
			    AND end_date > $1 AND end_date <= $2
			  ORDER BY end_date`
	rows, err := s.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var res []*models.ExpiringInfo
	for rows.Next() {
		var info models.ExpiringInfo
		if err := rows.Scan(&info.Email, &info.FullName, &info.Plan, &info.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, &info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// WaitReady ждёт, пока база поднимется и миграции будут применены.
func (s *Storage) WaitReady(ctx context.Context, attempts int, delay time.Duration) error {
	const op = "storage.WaitReady"
	var err error
	for range attempts {
		if err = s.CheckDatabaseReady(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%s: database not ready after %d attempts: %w", op, attempts, err)
}
