package payroll

import (
	"fmt"

	"github.com/ankaa/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	minPercentage = decimal.Zero
	maxPercentage = decimal.NewFromInt(100)
)

// ValidateAmount checks a monetary value: non-negative and in whole cents.
func ValidateAmount(field string, value decimal.Decimal) validator.ValidationErrors {
	switch {
	case !validator.IsNonNegative(value):
		return validator.ValidationErrors{{Field: field, Message: "must be non-negative"}}
	case !validator.HasAtMostCents(value):
		return validator.ValidationErrors{{Field: field, Message: "must have at most 2 decimal places"}}
	}
	return nil
}

// ValidateEarnings checks every monetary field of in with ValidateAmount.
func ValidateEarnings(in EarningsInput) validator.ValidationErrors {
	var errs validator.ValidationErrors

	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"base_remuneration", in.BaseRemuneration},
		{"overtime_50_amount", in.Overtime50Amount},
		{"overtime_100_amount", in.Overtime100Amount},
		{"night_differential_amount", in.NightDifferentialAmount},
		{"dsr_amount", in.DSRAmount},
		{"bonus_base_amount", in.BonusBaseAmount},
	}
	for _, f := range fields {
		errs = append(errs, ValidateAmount(f.name, f.value)...)
	}
	if in.DSRDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "dsr_days", Message: "must be non-negative"})
	}

	return errs
}

// ValidateDiscount checks that the value matching d.Kind is set and in range.
// field prefixes every reported field name.
func ValidateDiscount(field string, d Discount) validator.ValidationErrors {
	var errs validator.ValidationErrors

	switch d.Kind {
	case DiscountKindFixed:
		if d.Amount == nil {
			errs = append(errs, validator.ValidationError{Field: field + ".amount", Message: "is required for FIXED discounts"})
		} else {
			errs = append(errs, ValidateAmount(field+".amount", *d.Amount)...)
		}
	case DiscountKindPercentage:
		if d.Percentage == nil {
			errs = append(errs, validator.ValidationError{Field: field + ".percentage", Message: "is required for PERCENTAGE discounts"})
		} else if !validator.IsInRange(*d.Percentage, minPercentage, maxPercentage) {
			errs = append(errs, validator.ValidationError{Field: field + ".percentage", Message: "must be between 0 and 100"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: field + ".kind", Message: "must be 'FIXED' or 'PERCENTAGE'"})
	}

	return errs
}

// ValidateDiscounts validates every discount of a list, naming them list[i].
func ValidateDiscounts(list string, discounts []Discount) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, d := range discounts {
		errs = append(errs, ValidateDiscount(fmt.Sprintf("%s[%d]", list, i), d)...)
	}
	return errs
}

// AsInputError wraps non-empty validation errors so they match ErrInvalidInput.
func AsInputError(errs validator.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return &InputError{Err: errs}
}
