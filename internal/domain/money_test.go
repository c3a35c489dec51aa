package domain_test

import (
	"testing"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

var (
	brl = currency.MustParseISO("BRL")
	usd = currency.MustParseISO("USD")
)

func money(t *testing.T, amount string) domain.Money {
	t.Helper()
	return domain.NewMoney(decimal.RequireFromString(amount), brl)
}

func TestMoney_Round(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "half rounds up", amount: "2.345", want: "2.35"},
		{name: "below half rounds down", amount: "2.344", want: "2.34"},
		{name: "integral unchanged", amount: "10", want: "10.00"},
		{name: "two decimals unchanged", amount: "19.99", want: "19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money(t, tt.amount).Round()
			assert.Equal(t, tt.want, got.Amount.StringFixed(2))
		})
	}
}

func TestMoney_Add(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		sum, err := money(t, "10.50").Add(money(t, "4.50"))
		require.NoError(t, err)
		assert.True(t, sum.Amount.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, brl, sum.Currency)
	})

	t.Run("zero value adopts currency", func(t *testing.T) {
		sum, err := domain.Money{}.Add(money(t, "7.00"))
		require.NoError(t, err)
		assert.Equal(t, brl, sum.Currency)
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := money(t, "1.00").Add(domain.NewMoney(decimal.NewFromInt(1), usd))
		require.ErrorContains(t, err, "currency mismatch")
	})
}

func TestMoney_MulInt(t *testing.T) {
	got := money(t, "19.99").MulInt(3)
	assert.Equal(t, "59.97", got.Amount.StringFixed(2))
}
