package currency

import "strings"

// Currency identifies an ISO 4217 currency.
type Currency struct {
	Code        string
	NumericCode int
}

var (
	USD = Currency{Code: "USD", NumericCode: 840}
	GBP = Currency{Code: "GBP", NumericCode: 826}
	CHF = Currency{Code: "CHF", NumericCode: 756}
	JPY = Currency{Code: "JPY", NumericCode: 392}
	EUR = Currency{Code: "EUR", NumericCode: 978}
)

var byCode = map[string]Currency{
	USD.Code: USD,
	GBP.Code: GBP,
	CHF.Code: CHF,
	JPY.Code: JPY,
	EUR.Code: EUR,
}

// Parse resolves an ISO code. Unknown codes yield a Currency with only the
// code set.
func Parse(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c, ok := byCode[code]; ok {
		return c
	}
	return Currency{Code: code}
}

func (c Currency) String() string { return c.Code }

// IsZero reports whether no currency is set.
func (c Currency) IsZero() bool { return c.Code == "" }

// PaymentLag is the number of business days between an overnight-indexed
// coupon's accrual end and its payment in the currency's market convention.
func PaymentLag(c Currency) int {
	switch c.NumericCode {
	case EUR.NumericCode, CHF.NumericCode:
		return 1
	case USD.NumericCode:
		return 2
	default:
		return 0
	}
}
