package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/cache"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/catalog"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/config"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/jwt"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/lookup"
)

type FinderMock struct {
	mock.Mock
}

func (m *FinderMock) Lookup(ctx context.Context, email, phone string) (*models.Application, error) {
	args := m.Called(ctx, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*Service, *FinderMock, *miniredis.Miniredis, jwt.Maker) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	finder := new(FinderMock)
	maker := jwt.NewJWTMaker("secret", time.Hour)
	return NewService(newNoopLogger(), c, finder, maker), finder, mr, maker
}

func pendingApp() *models.Application {
	return &models.Application{
		ID:                4,
		FullName:          "Aung Aung",
		Email:             "aung@example.com",
		Phone:             "0991234567",
		Telegram:          "@aung",
		Country:           catalog.Myanmar,
		Plan:              catalog.Professional,
		Duration:          catalog.TwelveMonths,
		Format:            catalog.FormatSketchUp,
		IsStudent:         true,
		StudentClasses:    []string{"Visualization Class", catalog.OtherClass},
		OtherStudentClass: "Revit Class",
		Amount:            decimal.NewFromInt(120000),
		Currency:          catalog.MMK,
		PaymentMethod:     "KBZPay",
		Status:            models.StatusPending,
	}
}

// storedView то, что вернёт база для pendingApp после FromRecord.
func storedView() *models.Application {
	app := pendingApp()
	app.StudentClasses = []string{"Visualization Class", catalog.OtherClass, "Revit Class"}
	app.OtherStudentClass = ""
	return app
}

func sessionID(t *testing.T, maker jwt.Maker, token string) string {
	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	return claims.SessionID()
}

func TestStartAndGet(t *testing.T) {
	svc, _, _, maker := newTestService(t)
	ctx := context.Background()

	token, err := svc.Start(ctx, pendingApp())
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.ApplicationID)

	got, err := svc.Get(ctx, claims.SessionID())
	require.NoError(t, err)
	assert.Equal(t, "Revit Class", got.OtherStudentClass)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(120000)))
}

func TestGet_Expired(t *testing.T) {
	svc, _, mr, maker := newTestService(t)
	ctx := context.Background()

	token, err := svc.Start(ctx, pendingApp())
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)

	_, err = svc.Get(ctx, sessionID(t, maker, token))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLogin(t *testing.T) {
	svc, finder, _, maker := newTestService(t)
	ctx := context.Background()

	finder.On("Lookup", mock.Anything, "aung@example.com", "0991234567").Return(storedView(), nil)
	app, token, err := svc.Login(ctx, "aung@example.com", "0991234567")
	require.NoError(t, err)
	assert.Equal(t, int64(4), app.ID)
	_, err = svc.Get(ctx, sessionID(t, maker, token))
	require.NoError(t, err)

	finder.On("Lookup", mock.Anything, "x@x.test", "1").Return(nil, lookup.ErrNotFound)
	_, _, err = svc.Login(ctx, "x@x.test", "1")
	assert.ErrorIs(t, err, lookup.ErrNotFound)
}

func TestReconcile_Unchanged(t *testing.T) {
	svc, finder, _, maker := newTestService(t)
	ctx := context.Background()

	token, err := svc.Start(ctx, pendingApp())
	require.NoError(t, err)
	finder.On("Lookup", mock.Anything, "aung@example.com", "0991234567").Return(storedView(), nil)

	got, err := svc.Reconcile(ctx, sessionID(t, maker, token))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, "Revit Class", got.OtherStudentClass)
}

func TestReconcile_ApprovedOverwritesCache(t *testing.T) {
	svc, finder, _, maker := newTestService(t)
	ctx := context.Background()

	token, err := svc.Start(ctx, pendingApp())
	require.NoError(t, err)
	sid := sessionID(t, maker, token)

	end := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	approved := storedView()
	approved.Status = models.StatusApproved
	approved.EndDate = &end
	finder.On("Lookup", mock.Anything, mock.Anything, mock.Anything).Return(approved, nil)

	got, err := svc.Reconcile(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, "Revit Class", got.OtherStudentClass)

	cached, err := svc.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, cached.Status)
	require.NotNil(t, cached.EndDate)
	assert.True(t, end.Equal(*cached.EndDate))

	// повторная сверка ничего не меняет
	again, err := svc.Reconcile(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, again.Status)
}

func TestReconcile_TransientErrorServesCache(t *testing.T) {
	svc, finder, _, maker := newTestService(t)
	ctx := context.Background()

	token, err := svc.Start(ctx, pendingApp())
	require.NoError(t, err)
	finder.On("Lookup", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.Join(lookup.ErrLookup, errors.New("timeout")))

	got, err := svc.Reconcile(ctx, sessionID(t, maker, token))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestReconcile_NoSession(t *testing.T) {
	svc, finder, _, _ := newTestService(t)
	_, err := svc.Reconcile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoSession)
	finder.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogout(t *testing.T) {
	svc, _, _, maker := newTestService(t)
	ctx := context.Background()

	token, err := svc.Start(ctx, pendingApp())
	require.NoError(t, err)
	sid := sessionID(t, maker, token)

	require.NoError(t, svc.Logout(ctx, sid))
	require.NoError(t, svc.Logout(ctx, sid))
	_, err = svc.Get(ctx, sid)
	assert.ErrorIs(t, err, ErrNoSession)
}
