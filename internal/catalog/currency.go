package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency локальная валюта оплаты.
type Currency string

const (
	MMK Currency = "MMK"
	THB Currency = "THB"
)

// ParseCurrency разбирает код валюты.
func ParseCurrency(s string) (Currency, error) {
	switch c := Currency(s); c {
	case MMK, THB:
		return c, nil
	}
	return "", fmt.Errorf("unknown currency %q", s)
}

var rates = map[Currency]decimal.Decimal{
	MMK: decimal.NewFromInt(4000),
	THB: decimal.RequireFromString("31.38"),
}

// Rate курс валюты к одному доллару США.
func Rate(c Currency) decimal.Decimal {
	return rates[c]
}

// Convert переводит сумму в USD в локальную валюту.
// Результат округляется до двух знаков.
func Convert(amountUSD decimal.Decimal, c Currency) decimal.Decimal {
	return amountUSD.Mul(Rate(c)).Round(2)
}

var printer = message.NewPrinter(language.English)

// FormatAmount форматирует сумму с разделителями тысяч и кодом валюты,
// например "80,000 MMK" или "627.6 THB".
func FormatAmount(amount decimal.Decimal, c Currency) string {
	return fmt.Sprintf("%s %s",
		printer.Sprintf("%v", number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(2))),
		c)
}

// Country страна плательщика. Определяет валюту и способ оплаты.
type Country string

const (
	Myanmar  Country = "Myanmar"
	Thailand Country = "Thailand"
)

// Способы оплаты в том виде, как они хранятся в таблице.
const (
	PaymentKBZPay   = "KBZPay"
	PaymentThaiBank = "Thai Bank"
)

// ParseCountry разбирает страну.
func ParseCountry(s string) (Country, error) {
	switch c := Country(s); c {
	case Myanmar, Thailand:
		return c, nil
	}
	return "", fmt.Errorf("unknown country %q", s)
}

// Currency валюта страны.
func (c Country) Currency() Currency {
	if c == Myanmar {
		return MMK
	}
	return THB
}

// PaymentMethod подпись способа оплаты.
func (c Country) PaymentMethod() string {
	if c == Myanmar {
		return PaymentKBZPay
	}
	return PaymentThaiBank
}

// CountryFromPaymentMethod восстанавливает страну по сохранённому способу оплаты.
func CountryFromPaymentMethod(method string) Country {
	if method == PaymentKBZPay {
		return Myanmar
	}
	return Thailand
}
