package accounting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Storage scales. Money is kept at 2 decimals, rates at 4.
const (
	MoneyScale = 2
	RateScale  = 4
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to 2 decimals.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Round4 rounds half away from zero to 4 decimals.
func Round4(d decimal.Decimal) decimal.Decimal {
	return d.Round(RateScale)
}

// Add2 adds and rounds at storage scale.
func Add2(a, b decimal.Decimal) decimal.Decimal {
	return Round2(a.Add(b))
}

// Sub2 subtracts and rounds at storage scale.
func Sub2(a, b decimal.Decimal) decimal.Decimal {
	return Round2(a.Sub(b))
}

// MulRate2 multiplies an amount by a rate and rounds the result to 2 decimals.
func MulRate2(amount, rate decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(rate))
}

// Sum2 adds every value exactly and rounds once at the end.
func Sum2(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Round2(total)
}

// IsMoneyScale reports whether d has no more than 2 significant decimals.
func IsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(Round2(d))
}

// ToCents returns the amount in minor units. d must already be at money scale.
func ToCents(d decimal.Decimal) int64 {
	return d.Mul(hundred).IntPart()
}

// ParseAmount parses a decimal string and rounds it to money scale.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Round2(d), nil
}

// NormalizeRate returns the rate rounded to 4 decimals, defaulting to 1 when unset.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.NewFromInt(1)
	}
	return Round4(rate)
}
