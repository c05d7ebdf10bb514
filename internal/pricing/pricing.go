package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FinalPrice applies the sale discount to price and rounds half-up to whole units.
// A nil or zero sale percent leaves the price undiscounted but still rounded.
func FinalPrice(price decimal.Decimal, salePercent *int) decimal.Decimal {
	if salePercent == nil || *salePercent == 0 {
		return roundHalfUp(price)
	}

	factor := hundred.Sub(decimal.NewFromInt(int64(*salePercent))).Div(hundred)

	return roundHalfUp(price.Mul(factor))
}

// LineTotal is the cost of qty units at finalPrice.
func LineTotal(finalPrice decimal.Decimal, qty int) decimal.Decimal {
	return finalPrice.Mul(decimal.NewFromInt(int64(qty)))
}

func ValidateSalePercent(salePercent *int) error {
	if salePercent == nil {
		return nil
	}

	if *salePercent < 0 || *salePercent > 100 {
		return fmt.Errorf("sale percent must be between 0 and 100, got %d", *salePercent)
	}

	return nil
}

func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", price.String())
	}

	return nil
}

// decimal.Round rounds half away from zero, which is half-up for the non-negative prices we store.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
