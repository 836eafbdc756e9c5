package payroll

import (
	"fmt"
	"time"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/validator"
)

// DefaultGraceDays is how many days into a month the previous month's
// payroll stays current.
const DefaultGraceDays = 5

// ResolveCurrentPeriod returns the payroll period that is open for editing on
// referenceDate: the previous month up to and including the 5th, the current
// month afterwards.
func ResolveCurrentPeriod(referenceDate time.Time) (payroll.PayrollPeriod, error) {
	return ResolvePeriodWithGrace(referenceDate, DefaultGraceDays)
}

// ResolvePeriodWithGrace is ResolveCurrentPeriod with a configurable grace window.
func ResolvePeriodWithGrace(referenceDate time.Time, graceDays int) (payroll.PayrollPeriod, error) {
	if referenceDate.IsZero() {
		return payroll.PayrollPeriod{}, fmt.Errorf("%w: reference date is not set", payroll.ErrPeriodOutOfRange)
	}
	if graceDays < 0 || graceDays > 27 {
		return payroll.PayrollPeriod{}, fmt.Errorf("%w: grace window of %d days", payroll.ErrPeriodOutOfRange, graceDays)
	}

	year, month, day := referenceDate.Date()
	period := payroll.PayrollPeriod{Year: year, Month: int(month)}

	if day <= graceDays {
		period.Month--
		if period.Month < 1 {
			period.Month = 12
			period.Year--
		}
	}

	if !period.Valid() {
		return payroll.PayrollPeriod{}, fmt.Errorf("%w: %s", payroll.ErrPeriodOutOfRange, period)
	}
	return period, nil
}

// ParseReferenceDate parses a YYYY-MM-DD date. An empty string means now.
func ParseReferenceDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	date, ok := validator.IsValidDate(value)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", payroll.ErrPeriodOutOfRange, value)
	}
	return date, nil
}
