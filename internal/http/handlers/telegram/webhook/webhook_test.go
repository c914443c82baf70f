package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/joinrequest"
)

type AuthorizerMock struct {
	mock.Mock
}

func (m *AuthorizerMock) Handle(ctx context.Context, req joinrequest.JoinRequest) (joinrequest.Decision, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(joinrequest.Decision), args.Error(1)
}

const joinUpdate = `{
	"update_id": 1001,
	"chat_join_request": {
		"chat": {"id": -1001234, "type": "channel", "title": "FURNITURE MODELS"},
		"from": {"id": 777, "is_bot": false, "first_name": "Aung", "username": "aung"},
		"date": 1741600000
	}
}`

func TestWebhookHandler(t *testing.T) {
	wantReq := joinrequest.JoinRequest{ChatID: -1001234, UserID: 777, Username: "aung"}

	tests := []struct {
		name       string
		secret     string
		body       string
		setupMock  func(m *AuthorizerMock)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "approved",
			secret: "s3cret",
			body:   joinUpdate,
			setupMock: func(m *AuthorizerMock) {
				m.On("Handle", mock.Anything, wantReq).Return(joinrequest.Approve, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"decision":"approve"`,
		},
		{
			name:   "deferred",
			secret: "s3cret",
			body:   joinUpdate,
			setupMock: func(m *AuthorizerMock) {
				m.On("Handle", mock.Anything, wantReq).Return(joinrequest.Defer, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"decision":"defer"`,
		},
		{
			name:   "store failure is not acknowledged",
			secret: "s3cret",
			body:   joinUpdate,
			setupMock: func(m *AuthorizerMock) {
				m.On("Handle", mock.Anything, wantReq).
					Return(joinrequest.Defer, errors.Join(joinrequest.ErrLookup, errors.New("timeout")))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"status":"Error"`,
		},
		{
			name:       "wrong secret",
			secret:     "guess",
			body:       joinUpdate,
			setupMock:  func(_ *AuthorizerMock) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `invalid secret token`,
		},
		{
			name:       "other update type",
			secret:     "s3cret",
			body:       `{"update_id": 5, "message": {"message_id": 1, "date": 0, "chat": {"id": 1, "type": "private"}, "text": "hi"}}`,
			setupMock:  func(_ *AuthorizerMock) {},
			wantStatus: http.StatusOK,
			wantBody:   `"handled":false`,
		},
		{
			name:       "malformed body",
			secret:     "s3cret",
			body:       `{"update_id":`,
			setupMock:  func(_ *AuthorizerMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid update`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(AuthorizerMock)
			tt.setupMock(auth)
			h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), auth, "s3cret")

			req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(tt.body))
			req.Header.Set(SecretHeader, tt.secret)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
			auth.AssertExpectations(t)
		})
	}
}

func TestWebhookHandler_EmptySecretRejectsEverything(t *testing.T) {
	auth := new(AuthorizerMock)
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), auth, "")

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(joinUpdate))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
