package fixtures

import (
	"github.com/shopspring/decimal"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ==========================================
// DEFAULT DISCOUNTS
// ==========================================

// GetDefaultBonusDiscounts returns the withholding applied to bonuses of a
// new company.
func GetDefaultBonusDiscounts(companyID string) []payroll.CompanyDiscount {
	return []payroll.CompanyDiscount{
		{
			CompanyID:        companyID,
			Scope:            payroll.DiscountScopeBonus,
			Description:      "Bonus withholding",
			Kind:             payroll.DiscountKindPercentage,
			Percentage:       decPtr("10"),
			CalculationOrder: 1,
			IsActive:         true,
		},
	}
}

// GetDefaultGeneralDiscounts returns the discounts applied to the total gross
// of a new company. Statutory contributions come before the health plan.
func GetDefaultGeneralDiscounts(companyID string) []payroll.CompanyDiscount {
	return []payroll.CompanyDiscount{
		{
			CompanyID:        companyID,
			Scope:            payroll.DiscountScopeGeneral,
			Description:      "Social security",
			Kind:             payroll.DiscountKindPercentage,
			Percentage:       decPtr("14"),
			CalculationOrder: 1,
			IsActive:         true,
		},
		{
			CompanyID:        companyID,
			Scope:            payroll.DiscountScopeGeneral,
			Description:      "Income tax",
			Kind:             payroll.DiscountKindPercentage,
			Percentage:       decPtr("7.5"),
			CalculationOrder: 2,
			IsActive:         true,
		},
		{
			CompanyID:        companyID,
			Scope:            payroll.DiscountScopeGeneral,
			Description:      "Health plan",
			Kind:             payroll.DiscountKindFixed,
			Amount:           decPtr("150.00"),
			CalculationOrder: 3,
			IsActive:         true,
		},
	}
}

// GetDefaultDiscounts returns every default discount, bonus scope first.
func GetDefaultDiscounts(companyID string) []payroll.CompanyDiscount {
	return append(GetDefaultBonusDiscounts(companyID), GetDefaultGeneralDiscounts(companyID)...)
}
