// Package logout закрывает сессию заявителя.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
)

type Sessions interface {
	Logout(ctx context.Context, sessionID string) error
}

type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{log: log, sessions: sessions}
}

// ServeHTTP godoc
// @Summary Выход
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.logout"
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
	if err := h.sessions.Logout(r.Context(), sid); err != nil {
		log.Error("failed to close session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sign out"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{"signed_out": true}))
}
