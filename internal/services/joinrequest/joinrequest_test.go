package joinrequest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/metrics"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) FindApprovedByTelegram(ctx context.Context, handle string, now time.Time) (bool, error) {
	args := m.Called(ctx, handle, now)
	return args.Bool(0), args.Error(1)
}

type ModeratorMock struct {
	mock.Mock
}

func (m *ModeratorMock) Approve(chatID, userID int64) error {
	return m.Called(chatID, userID).Error(0)
}

func (m *ModeratorMock) Decline(chatID, userID int64) error {
	return m.Called(chatID, userID).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newAuthorizer(store Store, mod Moderator) *Authorizer {
	a := NewAuthorizer(newNoopLogger(), store, mod, time.Second)
	a.now = func() time.Time { return fixedNow }
	return a
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		username string
		setup    func(s *StoreMock)
		want     Decision
		wantErr  bool
	}{
		{
			name:     "no username",
			username: "",
			setup:    func(_ *StoreMock) {},
			want:     Decline,
		},
		{
			name:     "active subscriber",
			username: "aung",
			setup: func(s *StoreMock) {
				s.On("FindApprovedByTelegram", mock.Anything, "@aung", fixedNow).Return(true, nil)
			},
			want: Approve,
		},
		{
			name:     "unknown or expired",
			username: "stranger",
			setup: func(s *StoreMock) {
				s.On("FindApprovedByTelegram", mock.Anything, "@stranger", fixedNow).Return(false, nil)
			},
			want: Defer,
		},
		{
			name:     "store error fails closed",
			username: "aung",
			setup: func(s *StoreMock) {
				s.On("FindApprovedByTelegram", mock.Anything, "@aung", fixedNow).Return(true, errors.New("conn reset"))
			},
			want:    Defer,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(StoreMock)
			tt.setup(store)
			a := newAuthorizer(store, new(ModeratorMock))

			got, err := a.Decide(context.Background(), JoinRequest{ChatID: -100, UserID: 7, Username: tt.username})
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrLookup)
			} else {
				assert.NoError(t, err)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestDecide_NoUsernameSkipsStore(t *testing.T) {
	store := new(StoreMock)
	a := newAuthorizer(store, new(ModeratorMock))
	_, err := a.Decide(context.Background(), JoinRequest{ChatID: 1, UserID: 2})
	require.NoError(t, err)
	store.AssertNotCalled(t, "FindApprovedByTelegram", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_Approve(t *testing.T) {
	store := new(StoreMock)
	mod := new(ModeratorMock)
	store.On("FindApprovedByTelegram", mock.Anything, "@aung", fixedNow).Return(true, nil)
	mod.On("Approve", int64(-100), int64(7)).Return(nil)

	before := testutil.ToFloat64(metrics.JoinRequestDecisions.WithLabelValues("approve"))
	got, err := newAuthorizer(store, mod).Handle(context.Background(), JoinRequest{ChatID: -100, UserID: 7, Username: "aung"})
	require.NoError(t, err)
	assert.Equal(t, Approve, got)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.JoinRequestDecisions.WithLabelValues("approve")))
	mod.AssertExpectations(t)
}

func TestHandle_Decline(t *testing.T) {
	mod := new(ModeratorMock)
	mod.On("Decline", int64(-100), int64(7)).Return(nil)

	got, err := newAuthorizer(new(StoreMock), mod).Handle(context.Background(), JoinRequest{ChatID: -100, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, Decline, got)
	mod.AssertExpectations(t)
}

func TestHandle_DeferSendsNothing(t *testing.T) {
	store := new(StoreMock)
	mod := new(ModeratorMock)
	store.On("FindApprovedByTelegram", mock.Anything, "@late", fixedNow).Return(false, nil)

	got, err := newAuthorizer(store, mod).Handle(context.Background(), JoinRequest{ChatID: -100, UserID: 7, Username: "late"})
	require.NoError(t, err)
	assert.Equal(t, Defer, got)
	mod.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
	mod.AssertNotCalled(t, "Decline", mock.Anything, mock.Anything)
}

func TestHandle_StoreErrorNeverApproves(t *testing.T) {
	store := new(StoreMock)
	mod := new(ModeratorMock)
	store.On("FindApprovedByTelegram", mock.Anything, "@aung", fixedNow).Return(false, errors.New("timeout"))

	got, err := newAuthorizer(store, mod).Handle(context.Background(), JoinRequest{ChatID: -100, UserID: 7, Username: "aung"})
	assert.ErrorIs(t, err, ErrLookup)
	assert.Equal(t, Defer, got)
	mod.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
}

func TestHandle_ModeratorError(t *testing.T) {
	store := new(StoreMock)
	mod := new(ModeratorMock)
	store.On("FindApprovedByTelegram", mock.Anything, "@aung", fixedNow).Return(true, nil)
	mod.On("Approve", int64(-100), int64(7)).Return(errors.New("Bad Request: HIDE_REQUESTER_MISSING"))

	got, err := newAuthorizer(store, mod).Handle(context.Background(), JoinRequest{ChatID: -100, UserID: 7, Username: "aung"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLookup)
	assert.Equal(t, Approve, got)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "approve", Approve.String())
	assert.Equal(t, "decline", Decline.String())
	assert.Equal(t, "defer", Defer.String())
}
