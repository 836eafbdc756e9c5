package payroll

// PayrollSource is where a summary comes from: a live computation over
// earnings and discounts, or a record that was already saved.
type PayrollSource interface {
	isPayrollSource()
}

// ComputedSource - Unsaved payroll, summarized on demand.
type ComputedSource struct {
	Period           PayrollPeriod
	EmployeeID       string
	Input            EarningsInput
	BonusDiscounts   []Discount
	GeneralDiscounts []Discount
}

// PersistedSource - Stored payroll, returned as saved.
type PersistedSource struct {
	RecordID string
	Record   PayrollRecord
}

func (ComputedSource) isPayrollSource()  {}
func (PersistedSource) isPayrollSource() {}
