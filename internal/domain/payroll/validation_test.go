package payroll

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankaa/payroll-backend-go/internal/pkg/validator"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidateEarnings(t *testing.T) {
	assert.Empty(t, ValidateEarnings(EarningsInput{BaseRemuneration: decimal.NewFromInt(3000)}))

	errs := ValidateEarnings(EarningsInput{
		BaseRemuneration: decimal.NewFromInt(-1),
		DSRAmount:        decimal.RequireFromString("-0.01"),
		DSRDays:          -2,
	})
	fields := errs.ToMap()
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "base_remuneration")
	assert.Contains(t, fields, "dsr_amount")
	assert.Contains(t, fields, "dsr_days")

	errs = ValidateEarnings(EarningsInput{
		BaseRemuneration: decimal.RequireFromString("100.004"),
		BonusBaseAmount:  decimal.RequireFromString("500.10"),
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "base_remuneration", errs[0].Field)
	assert.Equal(t, "must have at most 2 decimal places", errs[0].Message)
}

func TestValidateAmount(t *testing.T) {
	assert.Empty(t, ValidateAmount("base", decimal.RequireFromString("0.01")))
	assert.Equal(t, "must be non-negative", ValidateAmount("base", decimal.RequireFromString("-0.001"))[0].Message)
	assert.Equal(t, "must have at most 2 decimal places", ValidateAmount("base", decimal.RequireFromString("0.001"))[0].Message)
}

func TestValidateDiscount(t *testing.T) {
	tests := []struct {
		name      string
		discount  Discount
		wantField string
	}{
		{"fixed ok", Discount{Kind: DiscountKindFixed, Amount: decPtr("0")}, ""},
		{"percentage bounds", Discount{Kind: DiscountKindPercentage, Percentage: decPtr("100")}, ""},
		{"fixed without amount", Discount{Kind: DiscountKindFixed, Percentage: decPtr("10")}, "d.amount"},
		{"negative amount", Discount{Kind: DiscountKindFixed, Amount: decPtr("-5")}, "d.amount"},
		{"amount below cents", Discount{Kind: DiscountKindFixed, Amount: decPtr("10.005")}, "d.amount"},
		{"amount with trailing zeros", Discount{Kind: DiscountKindFixed, Amount: decPtr("10.500")}, ""},
		{"fractional percentage", Discount{Kind: DiscountKindPercentage, Percentage: decPtr("7.125")}, ""},
		{"percentage without value", Discount{Kind: DiscountKindPercentage}, "d.percentage"},
		{"percentage over 100", Discount{Kind: DiscountKindPercentage, Percentage: decPtr("100.01")}, "d.percentage"},
		{"negative percentage", Discount{Kind: DiscountKindPercentage, Percentage: decPtr("-1")}, "d.percentage"},
		{"unknown kind", Discount{Kind: "RATE", Amount: decPtr("1")}, "d.kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateDiscount("d", tt.discount)
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestValidateDiscounts_IndexesFields(t *testing.T) {
	errs := ValidateDiscounts("general_discounts", []Discount{
		{Kind: DiscountKindFixed, Amount: decPtr("10")},
		{Kind: DiscountKindPercentage, Percentage: decPtr("120")},
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "general_discounts[1].percentage", errs[0].Field)
}

func TestAsInputError(t *testing.T) {
	assert.NoError(t, AsInputError(nil))

	err := AsInputError(validator.ValidationErrors{{Field: "base", Message: "must be non-negative"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "base", fieldErrs[0].Field)
	assert.Contains(t, err.Error(), "base: must be non-negative")
}

func TestErrNegativeNetPay_IsInvalidInput(t *testing.T) {
	assert.ErrorIs(t, ErrNegativeNetPay, ErrInvalidInput)
}

func TestRequestValidate(t *testing.T) {
	create := CreateDiscountRequest{Scope: "bonus", Description: "Bonus withholding", Kind: "PERCENTAGE", Percentage: decPtr("10")}
	assert.NoError(t, create.Validate())

	create = CreateDiscountRequest{Scope: "payroll", Description: " ", Kind: "FIXED"}
	err := create.Validate()
	require.Error(t, err)
	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Len(t, fieldErrs.ToMap(), 3)

	generate := GeneratePayrollRequest{PeriodMonth: 13, PeriodYear: 2019}
	assert.ErrorIs(t, generate.Validate(), ErrInvalidInput)
	generate = GeneratePayrollRequest{PeriodMonth: 12, PeriodYear: 2025}
	assert.NoError(t, generate.Validate())

	finalize := FinalizePayrollRequest{}
	assert.ErrorIs(t, finalize.Validate(), ErrInvalidInput)

	generate = GeneratePayrollRequest{PeriodMonth: 12, PeriodYear: 2025, EmployeeIDs: []string{"123e4567-e89b-12d3-a456-426614174000", "emp-42"}}
	err = generate.Validate()
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, map[string]string{"employee_ids[1]": "must be a valid UUID"}, fieldErrs.ToMap())

	finalize = FinalizePayrollRequest{RecordIDs: []string{"01939b2c-6f3a-7c4d-9e1f-2a3b4c5d6e7f", "r1"}}
	err = finalize.Validate()
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs.ToMap(), "record_ids[1]")
}

func TestPayrollPeriod(t *testing.T) {
	assert.True(t, PayrollPeriod{Year: 2025, Month: 12}.Valid())
	assert.False(t, PayrollPeriod{Year: 2025, Month: 13}.Valid())
	assert.False(t, PayrollPeriod{}.Valid())
	assert.Equal(t, "2025-03", PayrollPeriod{Year: 2025, Month: 3}.String())

	record := PayrollRecord{PeriodYear: 2024, PeriodMonth: 11}
	assert.Equal(t, PayrollPeriod{Year: 2024, Month: 11}, record.Period())
}
