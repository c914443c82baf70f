// Package plans отдаёт витрину тарифов: планы, цены по срокам, валюты и список занятий.
package plans

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/access"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/catalog"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/response"
)

// PriceView цена плана на один срок вместе с бонусными месяцами.
type PriceView struct {
	Duration catalog.Duration `json:"duration"`
	catalog.PriceInfo
	Terms access.Bonus `json:"terms"`
}

type PlanView struct {
	catalog.Plan
	PriceList []PriceView `json:"prices"`
}

type CountryView struct {
	Name          catalog.Country  `json:"name"`
	Currency      catalog.Currency `json:"currency"`
	Rate          decimal.Decimal  `json:"rate"`
	PaymentMethod string           `json:"payment_method"`
}

// View ответ GET /plans. Каталог статический, поэтому собирается один раз.
type View struct {
	Plans          []PlanView               `json:"plans"`
	Countries      []CountryView            `json:"countries"`
	Formats        []catalog.SoftwareFormat `json:"formats"`
	StudentClasses []string                 `json:"student_classes"`
}

type Handler struct {
	log  *slog.Logger
	view View
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log:  log,
		view: buildView(),
	}
}

func buildView() View {
	var v View
	for _, p := range catalog.Plans() {
		pv := PlanView{Plan: p}
		for _, d := range catalog.Durations() {
			pv.PriceList = append(pv.PriceList, PriceView{
				Duration:  d,
				PriceInfo: catalog.PriceFor(p.Tier, d),
				Terms:     access.BonusFor(d),
			})
		}
		v.Plans = append(v.Plans, pv)
	}
	for _, c := range []catalog.Country{catalog.Myanmar, catalog.Thailand} {
		v.Countries = append(v.Countries, CountryView{
			Name:          c,
			Currency:      c.Currency(),
			Rate:          catalog.Rate(c.Currency()),
			PaymentMethod: c.PaymentMethod(),
		})
	}
	v.Formats = []catalog.SoftwareFormat{catalog.FormatMax, catalog.FormatSketchUp, catalog.FormatBoth}
	v.StudentClasses = catalog.StudentClasses()
	return v
}

// ServeHTTP godoc
// @Summary Каталог тарифов
// @Description Планы с ценами в USD по срокам, валюты стран оплаты и список занятий для студентов.
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response{data=View}
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(h.view))
}
