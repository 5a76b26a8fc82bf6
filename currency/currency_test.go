package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/iborfallback/currency"
)

func TestParse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, currency.USD, currency.Parse(" usd "))
	assert.Equal(t, 826, currency.Parse("GBP").NumericCode)

	aud := currency.Parse("aud")
	assert.Equal(t, "AUD", aud.Code)
	assert.Equal(t, 0, aud.NumericCode)
	assert.False(t, aud.IsZero())
	assert.True(t, currency.Currency{}.IsZero())
}

func TestPaymentLag(t *testing.T) {
	t.Parallel()

	cases := map[currency.Currency]int{
		currency.EUR:         1,
		currency.CHF:         1,
		currency.USD:         2,
		currency.GBP:         0,
		currency.JPY:         0,
		currency.Parse("AUD"): 0,
	}
	for ccy, want := range cases {
		assert.Equal(t, want, currency.PaymentLag(ccy), ccy.Code)
	}
}
