package money

import "github.com/shopspring/decimal"

// Places is the number of fraction digits of the currency minor unit.
const Places int32 = 2

var hundred = decimal.NewFromInt(100)

// RoundCents rounds d to the currency minor unit, half away from zero.
// Payroll amounts are never negative, so this is round-half-up.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent returns pct percent of base, rounded to the minor unit.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return RoundCents(base.Mul(pct).Div(hundred))
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Sum adds all values, starting from zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Fixed renders d with exactly two fraction digits, e.g. "3550.00".
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(Places)
}
