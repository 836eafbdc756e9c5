package payroll

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// ApplyCascade subtracts discounts from base one after another, in ascending
// CalculationOrder. Discounts with the same order keep their input order.
// A percentage discount is taken from the balance left by the discounts
// before it, rounded to cents at every step. No step takes more than the
// remaining balance, and every discount yields a ledger entry, even once the
// balance has reached zero.
//
// Input is validated up front; on error nothing is computed.
func ApplyCascade(base decimal.Decimal, discounts []payroll.Discount) (decimal.Decimal, []payroll.DiscountLedgerEntry, error) {
	errs := payroll.ValidateAmount("base", base)
	errs = append(errs, payroll.ValidateDiscounts("discounts", discounts)...)
	if err := payroll.AsInputError(errs); err != nil {
		return decimal.Zero, nil, err
	}

	balance, ledger := applyCascade(base, discounts)
	return balance, ledger, nil
}

// applyCascade runs the cascade on input that has already been validated.
func applyCascade(base decimal.Decimal, discounts []payroll.Discount) (decimal.Decimal, []payroll.DiscountLedgerEntry) {
	ordered := sortByCalculationOrder(discounts)
	ledger := make([]payroll.DiscountLedgerEntry, 0, len(ordered))

	balance := base
	for _, d := range ordered {
		applied := money.Min(requestedAmount(d, balance), balance)
		balance = balance.Sub(applied)

		ledger = append(ledger, payroll.DiscountLedgerEntry{
			DiscountID:    d.ID,
			Description:   d.Description,
			AppliedAmount: applied,
			BalanceAfter:  balance,
		})
	}

	return balance, ledger
}

func requestedAmount(d payroll.Discount, balance decimal.Decimal) decimal.Decimal {
	switch d.Kind {
	case payroll.DiscountKindFixed:
		return *d.Amount
	case payroll.DiscountKindPercentage:
		return money.Percent(balance, *d.Percentage)
	}
	panic(fmt.Sprintf("payroll: unvalidated discount kind %q", d.Kind))
}

// sortByCalculationOrder returns a stably sorted copy; the caller's slice is
// left untouched.
func sortByCalculationOrder(discounts []payroll.Discount) []payroll.Discount {
	ordered := slices.Clone(discounts)
	slices.SortStableFunc(ordered, func(a, b payroll.Discount) int {
		return cmp.Compare(a.CalculationOrder, b.CalculationOrder)
	})
	return ordered
}

// sumApplied totals the applied amounts of a ledger.
func sumApplied(ledger []payroll.DiscountLedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range ledger {
		total = total.Add(entry.AppliedAmount)
	}
	return total
}
