package payroll

import (
	"errors"
	"testing"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func fixed(id, amount string, order int) payroll.Discount {
	return payroll.Discount{ID: id, Description: id, Kind: payroll.DiscountKindFixed, Amount: decPtr(amount), CalculationOrder: order}
}

func percentage(id, pct string, order int) payroll.Discount {
	return payroll.Discount{ID: id, Description: id, Kind: payroll.DiscountKindPercentage, Percentage: decPtr(pct), CalculationOrder: order}
}

func ledgerIDs(ledger []payroll.DiscountLedgerEntry) []string {
	ids := make([]string, 0, len(ledger))
	for _, e := range ledger {
		ids = append(ids, e.DiscountID)
	}
	return ids
}

func TestApplyCascade_EmptyListIsIdentity(t *testing.T) {
	for _, base := range []string{"0", "0.01", "100", "98765.43"} {
		balance, ledger, err := ApplyCascade(dec(base), nil)
		require.NoError(t, err)
		assert.True(t, balance.Equal(dec(base)), "base %s", base)
		assert.NotNil(t, ledger)
		assert.Empty(t, ledger)
	}
}

func TestApplyCascade_OrderingSensitivity(t *testing.T) {
	t.Run("percentage then fixed", func(t *testing.T) {
		balance, ledger, err := ApplyCascade(dec("100"), []payroll.Discount{
			percentage("pct", "50", 1),
			fixed("fix", "10", 2),
		})
		require.NoError(t, err)
		assert.Equal(t, "40.00", balance.StringFixed(2))
		require.Len(t, ledger, 2)
		assert.Equal(t, "50.00", ledger[0].AppliedAmount.StringFixed(2))
		assert.Equal(t, "50.00", ledger[0].BalanceAfter.StringFixed(2))
		assert.Equal(t, "10.00", ledger[1].AppliedAmount.StringFixed(2))
	})

	t.Run("fixed then percentage", func(t *testing.T) {
		balance, ledger, err := ApplyCascade(dec("100"), []payroll.Discount{
			percentage("pct", "50", 2),
			fixed("fix", "10", 1),
		})
		require.NoError(t, err)
		assert.Equal(t, "45.00", balance.StringFixed(2))
		assert.Equal(t, []string{"fix", "pct"}, ledgerIDs(ledger))
		assert.Equal(t, "45.00", ledger[1].AppliedAmount.StringFixed(2))
	})
}

func TestApplyCascade_Clamping(t *testing.T) {
	balance, ledger, err := ApplyCascade(dec("100"), []payroll.Discount{fixed("big", "150", 1)})
	require.NoError(t, err)

	assert.True(t, balance.IsZero())
	require.Len(t, ledger, 1)
	assert.Equal(t, "100.00", ledger[0].AppliedAmount.StringFixed(2))
	assert.True(t, ledger[0].BalanceAfter.IsZero())
}

func TestApplyCascade_ZeroBalanceStillProducesEntries(t *testing.T) {
	balance, ledger, err := ApplyCascade(dec("100"), []payroll.Discount{
		fixed("a", "100", 1),
		fixed("b", "20", 2),
		percentage("c", "30", 3),
	})
	require.NoError(t, err)

	assert.True(t, balance.IsZero())
	assert.Equal(t, []string{"a", "b", "c"}, ledgerIDs(ledger))
	assert.True(t, ledger[1].AppliedAmount.IsZero())
	assert.True(t, ledger[2].AppliedAmount.IsZero())
}

func TestApplyCascade_ZeroPercentEntry(t *testing.T) {
	balance, ledger, err := ApplyCascade(dec("250"), []payroll.Discount{percentage("none", "0", 1)})
	require.NoError(t, err)

	assert.True(t, balance.Equal(dec("250")))
	require.Len(t, ledger, 1)
	assert.True(t, ledger[0].AppliedAmount.IsZero())
	assert.True(t, ledger[0].BalanceAfter.Equal(dec("250")))
}

func TestApplyCascade_TiesKeepInputOrder(t *testing.T) {
	balance, ledger, err := ApplyCascade(dec("1000"), []payroll.Discount{
		percentage("second-tier", "10", 2),
		fixed("first", "100", 1),
		percentage("tie-a", "50", 1),
		fixed("tie-b", "30", 1),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "tie-a", "tie-b", "second-tier"}, ledgerIDs(ledger))
	// 1000 -100 = 900, -450 = 450, -30 = 420, -42 = 378
	assert.Equal(t, "378.00", balance.StringFixed(2))
}

func TestApplyCascade_RoundsEveryStepHalfUp(t *testing.T) {
	// 10.05 * 50% = 5.025 -> 5.03, leaving 5.02; 5.02 * 50% = 2.51
	balance, ledger, err := ApplyCascade(dec("10.05"), []payroll.Discount{
		percentage("p1", "50", 1),
		percentage("p2", "50", 2),
	})
	require.NoError(t, err)

	assert.Equal(t, "5.03", ledger[0].AppliedAmount.StringFixed(2))
	assert.Equal(t, "5.02", ledger[0].BalanceAfter.StringFixed(2))
	assert.Equal(t, "2.51", ledger[1].AppliedAmount.StringFixed(2))
	assert.Equal(t, "2.51", balance.StringFixed(2))
}

func TestApplyCascade_NeverNegative(t *testing.T) {
	discounts := []payroll.Discount{
		fixed("f1", "33.33", 3),
		percentage("p1", "99.99", 1),
		fixed("f2", "0.01", 2),
		percentage("p2", "100", 4),
		fixed("f3", "1000000", 5),
	}
	for _, base := range []string{"0", "0.01", "1", "77.77", "5000"} {
		balance, ledger, err := ApplyCascade(dec(base), discounts)
		require.NoError(t, err)
		assert.False(t, balance.IsNegative())
		for _, entry := range ledger {
			assert.False(t, entry.AppliedAmount.IsNegative())
			assert.False(t, entry.BalanceAfter.IsNegative())
		}
		assert.True(t, dec(base).Sub(sumApplied(ledger)).Equal(balance))
	}
}

func TestApplyCascade_DoesNotMutateInput(t *testing.T) {
	discounts := []payroll.Discount{
		fixed("b", "10", 2),
		fixed("a", "10", 1),
	}
	_, _, err := ApplyCascade(dec("100"), discounts)
	require.NoError(t, err)

	assert.Equal(t, "b", discounts[0].ID)
	assert.Equal(t, "a", discounts[1].ID)
}

func TestApplyCascade_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		discounts []payroll.Discount
		field     string
	}{
		{"negative base", "-1", nil, "base"},
		{"percentage above 100", "100", []payroll.Discount{percentage("p", "100.01", 1)}, "discounts[0].percentage"},
		{"negative percentage", "100", []payroll.Discount{percentage("p", "-5", 1)}, "discounts[0].percentage"},
		{"negative fixed amount", "100", []payroll.Discount{fixed("f", "-0.01", 1)}, "discounts[0].amount"},
		{"fixed amount below cents", "100", []payroll.Discount{fixed("f", "10.005", 1)}, "discounts[0].amount"},
		{"base below cents", "100.004", nil, "base"},
		{"percentage without value", "100", []payroll.Discount{{ID: "p", Kind: payroll.DiscountKindPercentage, Amount: decPtr("5")}}, "discounts[0].percentage"},
		{"fixed without value", "100", []payroll.Discount{fixed("ok", "1", 1), {ID: "f", Kind: payroll.DiscountKindFixed, Percentage: decPtr("5")}}, "discounts[1].amount"},
		{"unknown kind", "100", []payroll.Discount{{ID: "x", Kind: "HALF"}}, "discounts[0].kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, ledger, err := ApplyCascade(dec(tt.base), tt.discounts)
			require.Error(t, err)
			assert.ErrorIs(t, err, payroll.ErrInvalidInput)
			assert.True(t, balance.IsZero())
			assert.Nil(t, ledger)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestApplyCascade_AcceptsTrailingZeros(t *testing.T) {
	balance, ledger, err := ApplyCascade(dec("100.000"), []payroll.Discount{fixed("f", "10.500", 1)})
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, "89.50", balance.StringFixed(2))
	assert.True(t, balance.Equal(balance.Round(2)))
}
