package payroll

import (
	"fmt"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/validator"
)

// Summarize computes the payroll summary of one employee for one period.
//
// Bonus discounts cascade over the bonus alone. General discounts cascade over
// gross earnings plus the undiscounted bonus, which is also what is reported
// as total gross. Total net is total gross minus every applied discount of
// both ledgers.
//
// All input is validated before anything is computed. A summary whose net pay
// would be negative is rejected with ErrNegativeNetPay.
func Summarize(in payroll.EarningsInput, bonusDiscounts, generalDiscounts []payroll.Discount) (payroll.PayrollSummary, error) {
	var errs validator.ValidationErrors
	errs = append(errs, payroll.ValidateEarnings(in)...)
	errs = append(errs, payroll.ValidateDiscounts("bonus_discounts", bonusDiscounts)...)
	errs = append(errs, payroll.ValidateDiscounts("general_discounts", generalDiscounts)...)
	if err := payroll.AsInputError(errs); err != nil {
		return payroll.PayrollSummary{}, err
	}

	gross := AggregateGross(in)
	bonusNet, bonusLedger := applyCascade(in.BonusBaseAmount, bonusDiscounts)

	totalGross := gross.Add(in.BonusBaseAmount)
	_, generalLedger := applyCascade(totalGross, generalDiscounts)

	totalDiscounts := sumApplied(bonusLedger).Add(sumApplied(generalLedger))
	totalNet := totalGross.Sub(totalDiscounts)
	if totalNet.IsNegative() {
		return payroll.PayrollSummary{}, fmt.Errorf("%w (gross %s, discounts %s)", payroll.ErrNegativeNetPay, totalGross, totalDiscounts)
	}

	return payroll.PayrollSummary{
		Gross:          gross,
		BonusGross:     in.BonusBaseAmount,
		TotalGross:     totalGross,
		TotalBonusNet:  bonusNet,
		TotalDiscounts: totalDiscounts,
		TotalNet:       totalNet,
		BonusLedger:    bonusLedger,
		GeneralLedger:  generalLedger,
	}, nil
}
