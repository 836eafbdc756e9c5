package payroll

import (
	"fmt"

	"github.com/ankaa/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

type CurrentPeriodResponse struct {
	ReferenceDate string `json:"reference_date"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Label         string `json:"label"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

// ========== PREVIEW DTOs ==========

type PreviewCascadeRequest struct {
	Base      decimal.Decimal `json:"base"`
	Discounts []Discount      `json:"discounts"`
}

type CascadeResponse struct {
	Base           decimal.Decimal       `json:"base"`
	FinalBalance   decimal.Decimal       `json:"final_balance"`
	TotalDiscounts decimal.Decimal       `json:"total_discounts"`
	Ledger         []DiscountLedgerEntry `json:"ledger"`
}

type PreviewSummaryRequest struct {
	Earnings         EarningsInput `json:"earnings"`
	BonusDiscounts   []Discount    `json:"bonus_discounts"`
	GeneralDiscounts []Discount    `json:"general_discounts"`
}

// Source values of EmployeeSummaryResponse.
const (
	SourceComputed  = "computed"
	SourcePersisted = "persisted"
)

type EmployeeSummaryResponse struct {
	Source      string         `json:"source"`
	RecordID    *string        `json:"record_id,omitempty"`
	EmployeeID  string         `json:"employee_id"`
	PeriodMonth int            `json:"period_month"`
	PeriodYear  int            `json:"period_year"`
	Earnings    EarningsInput  `json:"earnings"`
	Summary     PayrollSummary `json:"summary"`
}

// ========== DISCOUNT DTOs ==========

type CreateDiscountRequest struct {
	Scope            string           `json:"scope"` // "bonus" or "general"
	Description      string           `json:"description"`
	Kind             string           `json:"kind"` // "FIXED" or "PERCENTAGE"
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Percentage       *decimal.Decimal `json:"percentage,omitempty"`
	CalculationOrder int              `json:"calculation_order"`
}

func (r *CreateDiscountRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Scope, []string{string(DiscountScopeBonus), string(DiscountScopeGeneral)}) {
		errs = append(errs, validator.ValidationError{Field: "scope", Message: "must be 'bonus' or 'general'"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	errs = append(errs, ValidateDiscount("discount", Discount{
		Kind:       DiscountKind(r.Kind),
		Amount:     r.Amount,
		Percentage: r.Percentage,
	})...)

	return AsInputError(errs)
}

type UpdateDiscountRequest struct {
	ID               string
	Description      *string          `json:"description,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Percentage       *decimal.Decimal `json:"percentage,omitempty"`
	CalculationOrder *int             `json:"calculation_order,omitempty"`
	IsActive         *bool            `json:"is_active,omitempty"`
}

type DiscountResponse struct {
	ID               string           `json:"id"`
	Scope            string           `json:"scope"`
	Description      string           `json:"description"`
	Kind             string           `json:"kind"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Percentage       *decimal.Decimal `json:"percentage,omitempty"`
	CalculationOrder int              `json:"calculation_order"`
	IsActive         bool             `json:"is_active"`
}

// ========== PAYROLL RECORD DTOs ==========

type GeneratePayrollRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = every employee with earnings
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2020 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2020 or later"})
	}
	for i, id := range r.EmployeeIDs {
		if !validator.IsUUID(id) {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("employee_ids[%d]", i), Message: "must be a valid UUID"})
		}
	}

	return AsInputError(errs)
}

type SkippedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type GeneratePayrollResponse struct {
	PeriodMonth int                     `json:"period_month"`
	PeriodYear  int                     `json:"period_year"`
	Created     []PayrollRecordResponse `json:"created"`
	Skipped     []SkippedEmployee       `json:"skipped,omitempty"`
}

type FinalizePayrollRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *FinalizePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}
	for i, id := range r.RecordIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("record_ids[%d]", i), Message: "must be a valid record ID"})
		}
	}

	return AsInputError(errs)
}

type PayrollRecordResponse struct {
	ID           string         `json:"id"`
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	EmployeeCode string         `json:"employee_code"`
	PeriodMonth  int            `json:"period_month"`
	PeriodYear   int            `json:"period_year"`
	Earnings     EarningsInput  `json:"earnings"`
	Summary      PayrollSummary `json:"summary"`
	Status       string         `json:"status"`
	PaidAt       *string        `json:"paid_at,omitempty"`
	Notes        *string        `json:"notes,omitempty"`
}

type PayrollFilter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
	SortBy      string  `json:"sort_by"`
	SortOrder   string  `json:"sort_order"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PeriodTotalsResponse struct {
	PeriodMonth    int             `json:"period_month"`
	PeriodYear     int             `json:"period_year"`
	TotalEmployees int             `json:"total_employees"`
	TotalGross     decimal.Decimal `json:"total_gross"`
	TotalBonusNet  decimal.Decimal `json:"total_bonus_net"`
	TotalDiscounts decimal.Decimal `json:"total_discounts"`
	TotalNet       decimal.Decimal `json:"total_net"`
	DraftCount     int             `json:"draft_count"`
	PaidCount      int             `json:"paid_count"`
}
