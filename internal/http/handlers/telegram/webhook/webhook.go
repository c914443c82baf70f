// Package webhook принимает обновления Telegram и обрабатывает заявки на вступление в каналы.
//
// Запрос принимается только с заголовком X-Telegram-Bot-Api-Secret-Token, равным секрету,
// заданному при setWebhook. Обновления других типов подтверждаются без обработки.
package webhook

import (
	"context"
	"crypto/hmac"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/telegram"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/joinrequest"
)

// SecretHeader заголовок, которым Telegram подписывает вызовы вебхука.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

type Authorizer interface {
	Handle(ctx context.Context, req joinrequest.JoinRequest) (joinrequest.Decision, error)
}

type Handler struct {
	log        *slog.Logger
	authorizer Authorizer
	secret     string
}

func New(log *slog.Logger, authorizer Authorizer, secret string) *Handler {
	return &Handler{
		log:        log,
		authorizer: authorizer,
		secret:     secret,
	}
}

// ServeHTTP godoc
// @Summary Вебхук Telegram
// @Description Одобряет заявку на вступление, если у пользователя есть одобренная и не истёкшая подписка.
// @Tags Telegram
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректное обновление"
// @Failure 401 {object} response.ErrorResponse "Неверный секрет"
// @Failure 500 {object} response.ErrorResponse "Проверка не выполнена, Telegram повторит запрос"
// @Router /telegram/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.telegram.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if h.secret == "" || !hmac.Equal([]byte(r.Header.Get(SecretHeader)), []byte(h.secret)) {
		log.Warn("webhook call with invalid secret")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid secret token"))
		return
	}

	upd, err := telegram.DecodeUpdate(r.Body)
	if err != nil {
		log.Info("failed to decode update", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid update"))
		return
	}

	if upd.ChatJoinRequest == nil {
		render.JSON(w, r, response.StatusOKWithData(map[string]any{"handled": false}))
		return
	}

	req := joinrequest.JoinRequest{
		ChatID:   upd.ChatJoinRequest.Chat.ID,
		UserID:   upd.ChatJoinRequest.From.ID,
		Username: upd.ChatJoinRequest.From.UserName,
	}
	decision, err := h.authorizer.Handle(r.Context(), req)
	if err != nil {
		log.Error("failed to handle join request", slog.Int64("update_id", int64(upd.UpdateID)), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("join request was not processed"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"handled":  true,
		"decision": decision.String(),
	}))
}
