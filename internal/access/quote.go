package access

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/catalog"
)

// Quote расчёт стоимости плана для выбранной страны.
type Quote struct {
	Plan          catalog.Tier      `json:"plan"`
	Duration      catalog.Duration  `json:"duration"`
	Price         catalog.PriceInfo `json:"price_usd"`
	Bonus         Bonus             `json:"bonus"`
	Currency      catalog.Currency  `json:"currency"`
	Amount        decimal.Decimal   `json:"amount"`
	AmountDisplay string            `json:"amount_display"`
	PaymentMethod string            `json:"payment_method"`
}

// QuoteFor считает цену в USD и в валюте страны.
func QuoteFor(tier catalog.Tier, d catalog.Duration, country catalog.Country) Quote {
	price := catalog.PriceFor(tier, d)
	cur := country.Currency()
	amount := catalog.Convert(price.Total, cur)
	return Quote{
		Plan:          tier,
		Duration:      d,
		Price:         price,
		Bonus:         BonusFor(d),
		Currency:      cur,
		Amount:        amount,
		AmountDisplay: catalog.FormatAmount(amount, cur),
		PaymentMethod: country.PaymentMethod(),
	}
}

// PaymentNote подсказка для комментария к переводу, например "Aung Aung, Premium 12mo".
func PaymentNote(fullName string, tier catalog.Tier, d catalog.Duration) string {
	return fmt.Sprintf("%s, %s %dmo", fullName, tier, d.Months())
}
