// Package catalog содержит статический каталог тарифов: планы, длительности,
// цены в USD, курсы валют и перечень Telegram-каналов библиотеки.
//
// Все перечисления закрыты: значение приходит снаружи только через Parse*-функции,
// поэтому PriceFor — тотальная функция и не возвращает ошибку.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier тарифный план.
type Tier string

const (
	Essential    Tier = "Essential"
	Professional Tier = "Professional"
	Premium      Tier = "Premium"
)

// Tiers возвращает планы в порядке отображения.
func Tiers() []Tier {
	return []Tier{Essential, Professional, Premium}
}

// ParseTier разбирает название плана.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown plan tier %q", s)
	}
	return t, nil
}

// Valid сообщает, входит ли значение в перечисление.
func (t Tier) Valid() bool {
	switch t {
	case Essential, Professional, Premium:
		return true
	}
	return false
}

// Duration срок подписки в месяцах.
type Duration int

const (
	ThreeMonths  Duration = 3
	SixMonths    Duration = 6
	TwelveMonths Duration = 12
)

// Durations возвращает допустимые сроки по возрастанию.
func Durations() []Duration {
	return []Duration{ThreeMonths, SixMonths, TwelveMonths}
}

// ParseDuration проверяет число месяцев.
func ParseDuration(months int) (Duration, error) {
	d := Duration(months)
	if !d.Valid() {
		return 0, fmt.Errorf("unsupported duration %d months", months)
	}
	return d, nil
}

// Valid сообщает, входит ли значение в перечисление.
func (d Duration) Valid() bool {
	switch d {
	case ThreeMonths, SixMonths, TwelveMonths:
		return true
	}
	return false
}

// Months возвращает число оплачиваемых месяцев.
func (d Duration) Months() int {
	return int(d)
}

// Label строка, под которой срок хранится в таблице subscriptions.
func (d Duration) Label() string {
	return fmt.Sprintf("%d Months", int(d))
}

// ParseDurationLabel обратное преобразование Label.
// Нераспознанная строка трактуется как 12 месяцев.
func ParseDurationLabel(label string) Duration {
	for _, d := range Durations() {
		if d.Label() == label {
			return d
		}
	}
	return TwelveMonths
}

func (d Duration) index() int {
	switch d {
	case ThreeMonths:
		return 0
	case SixMonths:
		return 1
	default:
		return 2
	}
}

// SoftwareFormat формат моделей, который выбирает подписчик.
type SoftwareFormat string

const (
	FormatMax      SoftwareFormat = "3ds Max"
	FormatSketchUp SoftwareFormat = "SketchUp"
	FormatBoth     SoftwareFormat = "Both 3ds Max & SketchUp"
)

// ParseSoftwareFormat разбирает формат. Пустая строка — ошибка.
func ParseSoftwareFormat(s string) (SoftwareFormat, error) {
	f := SoftwareFormat(s)
	switch f {
	case FormatMax, FormatSketchUp, FormatBoth:
		return f, nil
	}
	return "", fmt.Errorf("unknown software format %q", s)
}

// PriceInfo цена плана на конкретный срок, в USD.
// Инвариант: Total <= Monthly*months, Save = Monthly*months - Total.
type PriceInfo struct {
	Monthly decimal.Decimal `json:"monthly"`
	Total   decimal.Decimal `json:"total"`
	Save    decimal.Decimal `json:"save"`
	Bonus   string          `json:"bonus"`
}

// Plan описание тарифа для витрины.
type Plan struct {
	Tier      Tier         `json:"name"`
	Features  []string     `json:"features"`
	Prices    [3]PriceInfo `json:"-"`
	IsPopular bool         `json:"is_popular"`
}

const (
	launchBonus = "Get the Lowest Launch Price"
	sixBonus    = "1 Month FREE"
	yearBonus   = "2 Month FREE - Free Library Management Class (Worth $30)"
)

func prices(monthly, six, year int64) [3]PriceInfo {
	m := decimal.NewFromInt(monthly)
	build := func(d Duration, total int64, bonus string) PriceInfo {
		full := m.Mul(decimal.NewFromInt(int64(d.Months())))
		t := decimal.NewFromInt(total)
		return PriceInfo{Monthly: m, Total: t, Save: full.Sub(t), Bonus: bonus}
	}
	return [3]PriceInfo{
		build(ThreeMonths, monthly*3, launchBonus),
		build(SixMonths, six, sixBonus),
		build(TwelveMonths, year, yearBonus),
	}
}

var plans = map[Tier]Plan{
	Essential: {
		Tier: Essential,
		Features: []string{
			"Interior Models",
			"Exterior Models",
			"3ds Max or SketchUp",
			"Model Studio (+$5 Value Saved)",
		},
		Prices: prices(2, 10, 20),
	},
	Professional: {
		Tier: Professional,
		Features: []string{
			"Interior Models",
			"Exterior Models",
			"3ds Max or SketchUp",
			"Model Studio (+$5 Value Saved)",
			"Texture Library",
		},
		Prices:    prices(3, 15, 30),
		IsPopular: true,
	},
	Premium: {
		Tier: Premium,
		Features: []string{
			"Interior Models",
			"Exterior Models",
			"Both 3ds Max & SketchUp",
			"Model Studio (+$5 Value Saved)",
			"Texture Library",
			"Software Library FREE",
		},
		Prices: prices(5, 25, 50),
	},
}

// PlanFor возвращает описание плана. Для значений вне перечисления
// возвращается план Essential; такие значения отсекаются в ParseTier.
func PlanFor(t Tier) Plan {
	if p, ok := plans[t]; ok {
		return p
	}
	return plans[Essential]
}

// Plans возвращает все планы в порядке отображения.
func Plans() []Plan {
	out := make([]Plan, 0, len(plans))
	for _, t := range Tiers() {
		out = append(out, plans[t])
	}
	return out
}

// PriceFor возвращает цену плана на срок.
func PriceFor(t Tier, d Duration) PriceInfo {
	return PlanFor(t).Prices[d.index()]
}
