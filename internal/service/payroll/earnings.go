package payroll

import (
	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// AggregateGross sums base remuneration with overtime, night differential and
// DSR amounts. The bonus is left out; it goes through its own cascade.
func AggregateGross(in payroll.EarningsInput) decimal.Decimal {
	return money.Sum(
		in.BaseRemuneration,
		in.Overtime50Amount,
		in.Overtime100Amount,
		in.NightDifferentialAmount,
		in.DSRAmount,
	)
}
