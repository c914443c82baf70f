// Package dashboard отдаёт личный кабинет: заявку, бонусные месяцы и каналы.
// Ссылки на каналы открываются только после одобрения заявки оператором.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/access"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/session"
)

type Sessions interface {
	Reconcile(ctx context.Context, sessionID string) (*models.Application, error)
}

// View ответ кабинета.
type View struct {
	Application   *models.Application    `json:"application"`
	AmountDisplay string                 `json:"amount_display"`
	Approved      bool                   `json:"approved"`
	Bonus         access.Bonus           `json:"bonus"`
	Channels      []access.ChannelAccess `json:"channels"`
}

type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{log: log, sessions: sessions}
}

// ServeHTTP godoc
// @Summary Личный кабинет
// @Description Сверяет сохранённую заявку с базой и возвращает её статус, бонус и доступ к каналам.
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=View}
// @Failure 401 {object} response.ErrorResponse "Сессия истекла"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sid, ok := middlewarectx.SessionIDFrom(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not signed in"))
		return
	}

	app, err := h.sessions.Reconcile(r.Context(), sid)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			log.Info("session expired")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("session expired, please sign in again"))
			return
		}
		log.Error("failed to load session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load dashboard"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(View{
		Application:   app,
		AmountDisplay: app.AmountDisplay(),
		Approved:      app.IsApproved(),
		Bonus:         access.BonusFor(app.Duration),
		Channels:      access.Dashboard(app),
	}))
}
