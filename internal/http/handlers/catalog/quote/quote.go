// Package quote считает стоимость выбранного плана в валюте страны.
package quote

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/access"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/catalog"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Расчёт стоимости
// @Description Цена плана в USD, сумма к оплате в MMK или THB и бонусные месяцы.
// @Tags Catalog
// @Produce json
// @Param plan query string true "Essential, Professional или Premium"
// @Param duration query int true "3, 6 или 12"
// @Param country query string true "Myanmar или Thailand"
// @Success 200 {object} response.Response{data=access.Quote}
// @Failure 400 {object} response.ErrorResponse "Неизвестный план, срок или страна"
// @Router /quote [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.quote"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	q := r.URL.Query()

	tier, err := catalog.ParseTier(q.Get("plan"))
	if err != nil {
		h.badRequest(w, r, log, err)
		return
	}
	months, err := strconv.Atoi(q.Get("duration"))
	if err != nil {
		h.badRequest(w, r, log, err)
		return
	}
	duration, err := catalog.ParseDuration(months)
	if err != nil {
		h.badRequest(w, r, log, err)
		return
	}
	country, err := catalog.ParseCountry(q.Get("country"))
	if err != nil {
		h.badRequest(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(access.QuoteFor(tier, duration, country)))
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Info("invalid quote request", slog.String("error", err.Error()))
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error(err.Error()))
}
