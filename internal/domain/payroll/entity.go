package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind enum
type DiscountKind string

const (
	DiscountKindFixed      DiscountKind = "FIXED"
	DiscountKindPercentage DiscountKind = "PERCENTAGE"
)

// DiscountScope tells which cascade a configured discount belongs to.
type DiscountScope string

const (
	DiscountScopeBonus   DiscountScope = "bonus"
	DiscountScopeGeneral DiscountScope = "general"
)

// EarningsInput - Monthly earnings snapshot for one employee, already resolved
// from position and time tracking data. Hour and day counts are display only.
type EarningsInput struct {
	BaseRemuneration        decimal.Decimal `json:"base_remuneration"`
	Overtime50Amount        decimal.Decimal `json:"overtime_50_amount"`
	Overtime50Hours         decimal.Decimal `json:"overtime_50_hours"`
	Overtime100Amount       decimal.Decimal `json:"overtime_100_amount"`
	Overtime100Hours        decimal.Decimal `json:"overtime_100_hours"`
	NightDifferentialAmount decimal.Decimal `json:"night_differential_amount"`
	NightDifferentialHours  decimal.Decimal `json:"night_differential_hours"`
	DSRAmount               decimal.Decimal `json:"dsr_amount"`
	DSRDays                 int             `json:"dsr_days"`
	BonusBaseAmount         decimal.Decimal `json:"bonus_base_amount"`
}

// Discount - One line of a discount cascade.
type Discount struct {
	ID               string           `json:"id"`
	Description      string           `json:"description"`
	Kind             DiscountKind     `json:"kind"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Percentage       *decimal.Decimal `json:"percentage,omitempty"`
	CalculationOrder int              `json:"calculation_order"`
}

// DiscountLedgerEntry - Effect of one discount on the running balance.
type DiscountLedgerEntry struct {
	DiscountID    string          `json:"discount_id"`
	Description   string          `json:"description"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}

// PayrollPeriod identifies a monthly payroll cycle.
type PayrollPeriod struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Valid reports whether the period has a month between 1 and 12 and a positive year.
func (p PayrollPeriod) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

func (p PayrollPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// CycleStartDay and CycleEndDay bound the business cycle of a period: the
// 26th of the previous month through the 25th of the period month.
const (
	CycleStartDay = 26
	CycleEndDay   = 25
)

// DateRange returns the first and last calendar day covered by the period.
func (p PayrollPeriod) DateRange() (start, end time.Time) {
	end = time.Date(p.Year, time.Month(p.Month), CycleEndDay, 0, 0, 0, 0, time.UTC)
	start = time.Date(p.Year, time.Month(p.Month)-1, CycleStartDay, 0, 0, 0, 0, time.UTC)
	return start, end
}

// PayrollSummary - Result of a payroll computation.
// TotalNet always equals TotalGross minus TotalDiscounts.
type PayrollSummary struct {
	Gross          decimal.Decimal       `json:"gross"`
	BonusGross     decimal.Decimal       `json:"bonus_gross"`
	TotalGross     decimal.Decimal       `json:"total_gross"`
	TotalBonusNet  decimal.Decimal       `json:"total_bonus_net"`
	TotalDiscounts decimal.Decimal       `json:"total_discounts"`
	TotalNet       decimal.Decimal       `json:"total_net"`
	BonusLedger    []DiscountLedgerEntry `json:"bonus_ledger"`
	GeneralLedger  []DiscountLedgerEntry `json:"general_ledger"`
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
	PayrollStatusPaid  PayrollStatus = "paid"
)

// PayrollRecord - Persisted payroll result for one employee and period.
type PayrollRecord struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	Earnings    EarningsInput
	Summary     PayrollSummary
	Status      PayrollStatus
	PaidAt      *time.Time
	PaidBy      *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Period returns the payroll period of the record.
func (r PayrollRecord) Period() PayrollPeriod {
	return PayrollPeriod{Year: r.PeriodYear, Month: r.PeriodMonth}
}

// CompanyDiscount - Discount configured for a company.
type CompanyDiscount struct {
	ID               string
	CompanyID        string
	Scope            DiscountScope
	Description      string
	Kind             DiscountKind
	Amount           *decimal.Decimal
	Percentage       *decimal.Decimal
	CalculationOrder int
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ToDiscount strips the configuration fields off a company discount.
func (d CompanyDiscount) ToDiscount() Discount {
	return Discount{
		ID:               d.ID,
		Description:      d.Description,
		Kind:             d.Kind,
		Amount:           d.Amount,
		Percentage:       d.Percentage,
		CalculationOrder: d.CalculationOrder,
	}
}

// EmployeeEarnings - Earnings of one employee for a period, as provided by the
// position and time tracking collaborators.
type EmployeeEarnings struct {
	EmployeeID   string
	EmployeeName string
	EmployeeCode string
	Earnings     EarningsInput
}
