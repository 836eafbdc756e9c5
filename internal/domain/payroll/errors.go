package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid payroll input")
	ErrPeriodOutOfRange = errors.New("payroll period out of range")
	ErrNegativeNetPay   = fmt.Errorf("%w: discounts exceed total gross", ErrInvalidInput)

	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordAlreadyPaid   = errors.New("payroll record already paid, cannot modify")
	ErrCannotDeletePaidRecord     = errors.New("cannot delete paid payroll record")
	ErrDiscountNotFound           = errors.New("payroll discount not found")
	ErrEarningsNotFound           = errors.New("employee earnings not found for period")
	ErrUnsupportedExportFormat    = errors.New("unsupported payslip format")
)

// InputError carries field-level validation failures and matches
// ErrInvalidInput with errors.Is.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return ErrInvalidInput.Error() + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}
