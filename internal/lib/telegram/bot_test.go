package telegram

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/config"
)

// fakeAPI отвечает как Bot API и запоминает вызванные методы.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	_ = r.ParseForm()
	f.calls = append(f.calls, method+"?"+r.Form.Encode())

	w.Header().Set("Content-Type", "application/json")
	switch {
	case method == "getMe":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Archviz","username":"archviz_bot"}}`))
	case f.fail:
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: HIDE_REQUESTER_MISSING"}`))
	default:
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}
}

func newTestBot(t *testing.T) (*Bot, *fakeAPI) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	bot, err := New(config.Telegram{
		BotToken:    "token",
		APIEndpoint: srv.URL + "/bot%s/%s",
		Timeout:     time.Second,
	})
	require.NoError(t, err)
	return bot, fake
}

func TestBot_ApproveDecline(t *testing.T) {
	bot, fake := newTestBot(t)
	assert.Equal(t, "archviz_bot", bot.Username())

	require.NoError(t, bot.Approve(-100123, 42))
	require.NoError(t, bot.Decline(-100123, 43))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.calls, 3)
	assert.Equal(t, "approveChatJoinRequest?chat_id=-100123&user_id=42", fake.calls[1])
	assert.Equal(t, "declineChatJoinRequest?chat_id=-100123&user_id=43", fake.calls[2])
}

func TestBot_APIError(t *testing.T) {
	bot, fake := newTestBot(t)
	fake.fail = true

	err := bot.Approve(-100123, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.Approve")
}

func TestDecodeUpdate(t *testing.T) {
	body := `{"update_id":10,"chat_join_request":{"chat":{"id":-100123,"type":"channel"},
		"from":{"id":42,"is_bot":false,"first_name":"Aung","username":"aung"},"date":1700000000}}`

	upd, err := DecodeUpdate(strings.NewReader(body))
	require.NoError(t, err)
	require.NotNil(t, upd.ChatJoinRequest)
	assert.Equal(t, int64(-100123), upd.ChatJoinRequest.Chat.ID)
	assert.Equal(t, int64(42), upd.ChatJoinRequest.From.ID)
	assert.Equal(t, "aung", upd.ChatJoinRequest.From.UserName)

	_, err = DecodeUpdate(strings.NewReader("{"))
	assert.Error(t, err)
}
