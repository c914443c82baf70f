// Package access вычисляет бонусные месяцы и набор каналов, на которые
// подписчик имеет право по своему плану, формату и статусу студента.
//
// Право на канал не означает доступ: ссылка открывается только после одобрения заявки.
package access

import (
	"github.com/magabrotheeeer/archviz-subscriptions/internal/catalog"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
)

// Bonus бонусные условия срока подписки.
type Bonus struct {
	BonusMonths int    `json:"bonus_months"`
	TotalMonths int    `json:"total_months"`
	Label       string `json:"label"`
}

// BonusFor возвращает бонус для срока: 3→0, 6→1, 12→2 бесплатных месяца.
func BonusFor(d catalog.Duration) Bonus {
	switch d {
	case catalog.SixMonths:
		return Bonus{BonusMonths: 1, TotalMonths: 7, Label: "6 months + 1 month FREE"}
	case catalog.TwelveMonths:
		return Bonus{BonusMonths: 2, TotalMonths: 14, Label: "12 months + 2 months FREE"}
	default:
		return Bonus{BonusMonths: 0, TotalMonths: d.Months(), Label: "Launch Price"}
	}
}

// Entitlements возвращает каналы, положенные подписчику, в порядке каталога и без повторов.
func Entitlements(format catalog.SoftwareFormat, tier catalog.Tier, isStudent bool) []catalog.Channel {
	var out []catalog.Channel
	seen := make(map[string]struct{})
	for _, ch := range catalog.Channels() {
		if !entitled(ch, format, tier, isStudent) {
			continue
		}
		if _, dup := seen[ch.Name]; dup {
			continue
		}
		seen[ch.Name] = struct{}{}
		out = append(out, ch)
	}
	return out
}

func entitled(ch catalog.Channel, format catalog.SoftwareFormat, tier catalog.Tier, isStudent bool) bool {
	switch ch.Software {
	case catalog.SoftwareMax:
		return format == catalog.FormatMax || format == catalog.FormatBoth
	case catalog.SoftwareSketchUp:
		return format == catalog.FormatSketchUp || format == catalog.FormatBoth
	}

	switch ch.Name {
	case catalog.ChannelPremiumTextures:
		return tier == catalog.Professional || tier == catalog.Premium
	case catalog.ChannelSoftware:
		return tier == catalog.Premium
	case catalog.ChannelMegascan:
		return isStudent
	}
	return false
}

// ChannelAccess канал на дашборде. Link заполнен только у открытых каналов.
type ChannelAccess struct {
	catalog.Channel
	Open bool `json:"open"`
}

// Dashboard сочетает права подписчика со статусом заявки.
func Dashboard(app *models.Application) []ChannelAccess {
	open := app.IsApproved()
	list := Entitlements(app.Format, app.Plan, app.IsStudent)
	out := make([]ChannelAccess, 0, len(list))
	for _, ch := range list {
		if !open {
			ch.Link = ""
		}
		out = append(out, ChannelAccess{Channel: ch, Open: open})
	}
	return out
}
