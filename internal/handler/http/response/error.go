package response

import (
	"errors"
	"net/http"

	"github.com/ankaa/payroll-backend-go/internal/domain/auth"
	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrCompanyIDRequired):
		Forbidden(w, "Company access required")
	case errors.Is(err, auth.ErrMissingAccessClaims):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInsufficientRole):
		Forbidden(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNegativeNetPay):
		UnprocessableEntity(w, "NEGATIVE_NET_PAY", err.Error())
	case errors.Is(err, payroll.ErrInvalidInput):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPeriodOutOfRange):
		BadRequest(w, "Payroll period out of range", nil)
	case errors.Is(err, payroll.ErrUnsupportedExportFormat):
		BadRequest(w, "Unsupported payslip format, use 'pdf' or 'xlsx'", nil)
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrDiscountNotFound):
		NotFound(w, "Payroll discount not found")
	case errors.Is(err, payroll.ErrEarningsNotFound):
		NotFound(w, "Employee earnings not found for period")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record already paid")
	case errors.Is(err, payroll.ErrCannotDeletePaidRecord):
		Conflict(w, "Cannot delete paid payroll record")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
