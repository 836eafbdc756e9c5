package payroll

import "context"

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PayrollRepository interface {
	// Discounts
	CreateDiscount(ctx context.Context, discount CompanyDiscount) (CompanyDiscount, error)
	GetDiscountByID(ctx context.Context, id string, companyID string) (CompanyDiscount, error)
	ListDiscounts(ctx context.Context, companyID string, scope *DiscountScope, activeOnly bool) ([]CompanyDiscount, error)
	UpdateDiscount(ctx context.Context, companyID string, req UpdateDiscountRequest) error
	DeleteDiscount(ctx context.Context, id string, companyID string) error
	// LockDiscountSeeding holds a per-company lock until the surrounding
	// transaction ends.
	LockDiscountSeeding(ctx context.Context, companyID string) error

	// Payroll Records
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, companyID string, filter PayrollFilter) ([]PayrollRecord, int64, error)
	FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string, companyID string) error
	DeletePayrollRecord(ctx context.Context, id string, companyID string) error

	// Aggregations
	GetPeriodTotals(ctx context.Context, companyID string, month, year int) (PeriodTotalsResponse, error)
}

// EarningsRepository reads monthly earnings already resolved by the position
// and time tracking modules. It never exposes raw clock events.
type EarningsRepository interface {
	GetEmployeeEarnings(ctx context.Context, companyID, employeeID string, period PayrollPeriod) (EmployeeEarnings, error)
	ListEmployeeEarnings(ctx context.Context, companyID string, period PayrollPeriod, employeeIDs []string) ([]EmployeeEarnings, error)
}
