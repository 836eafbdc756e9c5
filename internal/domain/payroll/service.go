package payroll

import "context"

type PayrollService interface {
	// Period
	CurrentPeriod(ctx context.Context, referenceDate string) (CurrentPeriodResponse, error)

	// Preview
	PreviewCascade(ctx context.Context, req PreviewCascadeRequest) (CascadeResponse, error)
	PreviewSummary(ctx context.Context, req PreviewSummaryRequest) (PayrollSummary, error)
	GetEmployeeSummary(ctx context.Context, employeeID string, period PayrollPeriod) (EmployeeSummaryResponse, error)

	// Discounts
	CreateDiscount(ctx context.Context, req CreateDiscountRequest) (DiscountResponse, error)
	ListDiscounts(ctx context.Context, scope *DiscountScope) ([]DiscountResponse, error)
	UpdateDiscount(ctx context.Context, req UpdateDiscountRequest) error
	DeleteDiscount(ctx context.Context, id string) error

	// Payroll Records
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)
	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	FinalizePayroll(ctx context.Context, req FinalizePayrollRequest) error
	DeletePayrollRecord(ctx context.Context, id string) error
	ExportPayslip(ctx context.Context, id string, format string) (Payslip, error)

	// Summary
	GetPeriodTotals(ctx context.Context, month, year int) (PeriodTotalsResponse, error)
}

// Payslip - Rendered payslip document.
type Payslip struct {
	FileName    string
	ContentType string
	Content     []byte
}
