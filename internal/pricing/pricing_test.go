package pricing_test

import (
	"testing"

	"github.com/aaravmahajanofficial/online-shop/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name        string
		price       string
		salePercent *int
		want        string
	}{
		{name: "15 percent off 1000", price: "1000", salePercent: intPtr(15), want: "850"},
		{name: "No sale", price: "1000", salePercent: nil, want: "1000"},
		{name: "Zero sale", price: "1000", salePercent: intPtr(0), want: "1000"},
		{name: "Full discount", price: "1000", salePercent: intPtr(100), want: "0"},
		{name: "Rounds down below half", price: "999", salePercent: intPtr(15), want: "849"},
		{name: "Exact half rounds up", price: "10", salePercent: intPtr(5), want: "10"},
		{name: "Half of one rounds up", price: "1", salePercent: intPtr(50), want: "1"},
		{name: "Half of three rounds up", price: "3", salePercent: intPtr(50), want: "2"},
		{name: "Fractional price without sale", price: "100.5", salePercent: nil, want: "101"},
		{name: "Fractional price below half", price: "100.49", salePercent: nil, want: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.FinalPrice(decimal.RequireFromString(tt.price), tt.salePercent)

			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestLineTotal(t *testing.T) {
	got := pricing.LineTotal(decimal.NewFromInt(850), 2)

	assert.True(t, decimal.NewFromInt(1700).Equal(got))
}

func TestValidateSalePercent(t *testing.T) {
	assert.NoError(t, pricing.ValidateSalePercent(nil))
	assert.NoError(t, pricing.ValidateSalePercent(intPtr(0)))
	assert.NoError(t, pricing.ValidateSalePercent(intPtr(100)))
	assert.Error(t, pricing.ValidateSalePercent(intPtr(-1)))
	assert.Error(t, pricing.ValidateSalePercent(intPtr(101)))
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, pricing.ValidatePrice(decimal.Zero))
	assert.Error(t, pricing.ValidatePrice(decimal.NewFromInt(-1)))
}
