// Package login реализует вход заявителя по email и телефону.
//
// Успешный вход открывает серверную сессию и возвращает её токен вместе
// с текущим видом заявки.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/lookup"
)

// Request — входные данные для входа.
type Request struct {
	Email string `json:"email" validate:"required,max=254"`
	Phone string `json:"phone" validate:"required,max=32"`
}

// Service описывает вход заявителя.
type Service interface {
	Login(ctx context.Context, email, phone string) (*models.Application, string, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход по email и телефону
// @Description Находит заявку и открывает сессию. Токен передаётся в заголовке Authorization: Bearer.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body Request true "Данные, указанные при регистрации"
// @Success 200 {object} response.Response "Токен и заявка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	app, token, err := h.service.Login(r.Context(), req.Email, req.Phone)
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		log.Info("account not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("account not found, check your email and phone number"))
		return
	case errors.Is(err, lookup.ErrLookup):
		log.Error("lookup failed", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("service is temporarily unavailable, try again"))
		return
	case err != nil:
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sign in"))
		return
	}

	log.Info("login success", slog.Int64("id", app.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":       token,
		"application": app,
	}))
}
