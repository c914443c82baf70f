package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/migrations"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping postgres integration test")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(ctx, dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	root, err := filepath.Abs("../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, filepath.Join(root, "migrations")))

	cleanup := func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}

// testRecord заявка Essential на 12 месяцев из Мьянмы.
func testRecord(email, phone, telegram string) models.Record {
	amount := "80,000 MMK"
	return models.Record{
		FullName:         "Aung Aung",
		Email:            email,
		PhoneNumber:      phone,
		TelegramUsername: telegram,
		PlanTier:         "Essential",
		PlanDuration:     "12 Months",
		AmountMMK:        &amount,
		Amount:           decimal.NewFromInt(80000),
		Currency:         "MMK",
		SoftwareFormat:   "3ds Max",
		PaymentMethod:    "KBZPay",
		PaymentSlipURL:   "https://slips.test/a.jpg",
		Status:           string(models.StatusPending),
	}
}

// approve имитирует действие оператора.
func approve(t *testing.T, s *Storage, id int64, endDate time.Time) {
	_, err := s.DB.Exec(`UPDATE subscriptions SET status = 'approved', end_date = $1 WHERE id = $2`, endDate, id)
	require.NoError(t, err)
}
