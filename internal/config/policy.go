package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/fixtures"
)

const (
	defaultGraceDays        = 5
	defaultBatchConcurrency = 8
)

// PayrollPolicy holds company-independent payroll rules.
type PayrollPolicy struct {
	EditGraceDays    int                `yaml:"edit_grace_days"`
	BatchConcurrency int                `yaml:"batch_concurrency"`
	DefaultDiscounts []DiscountTemplate `yaml:"default_discounts"`
}

// DiscountTemplate is seeded as a company discount for companies that have
// none configured yet.
type DiscountTemplate struct {
	Scope            string           `yaml:"scope"`
	Description      string           `yaml:"description"`
	Kind             string           `yaml:"kind"`
	Amount           *decimal.Decimal `yaml:"amount"`
	Percentage       *decimal.Decimal `yaml:"percentage"`
	CalculationOrder int              `yaml:"calculation_order"`
}

// DefaultPolicy is used when no policy file exists. Its discounts are the
// built-in fixtures; a policy file replaces them as a whole.
func DefaultPolicy() PayrollPolicy {
	defaults := fixtures.GetDefaultDiscounts("")
	templates := make([]DiscountTemplate, 0, len(defaults))
	for _, d := range defaults {
		templates = append(templates, DiscountTemplate{
			Scope:            string(d.Scope),
			Description:      d.Description,
			Kind:             string(d.Kind),
			Amount:           d.Amount,
			Percentage:       d.Percentage,
			CalculationOrder: d.CalculationOrder,
		})
	}
	return PayrollPolicy{
		EditGraceDays:    defaultGraceDays,
		BatchConcurrency: defaultBatchConcurrency,
		DefaultDiscounts: templates,
	}
}

// LoadPolicy reads the YAML policy at path. A missing file yields DefaultPolicy.
func LoadPolicy(path string) (PayrollPolicy, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultPolicy(), nil
	}
	if err != nil {
		return PayrollPolicy{}, fmt.Errorf("failed to read payroll policy: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes a YAML policy, filling unset values with defaults.
func ParsePolicy(data []byte) (PayrollPolicy, error) {
	policy := DefaultPolicy()
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return PayrollPolicy{}, fmt.Errorf("failed to parse payroll policy: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return PayrollPolicy{}, err
	}
	return policy, nil
}

// Validate checks the grace window, concurrency and every discount template.
func (p PayrollPolicy) Validate() error {
	if p.EditGraceDays < 0 || p.EditGraceDays > 27 {
		return fmt.Errorf("edit_grace_days must be between 0 and 27, got %d", p.EditGraceDays)
	}
	if p.BatchConcurrency < 1 {
		return fmt.Errorf("batch_concurrency must be at least 1, got %d", p.BatchConcurrency)
	}
	for i, t := range p.DefaultDiscounts {
		scope := payroll.DiscountScope(t.Scope)
		if scope != payroll.DiscountScopeBonus && scope != payroll.DiscountScopeGeneral {
			return fmt.Errorf("default_discounts[%d].scope must be 'bonus' or 'general'", i)
		}
		if t.Description == "" {
			return fmt.Errorf("default_discounts[%d].description is required", i)
		}
		if err := payroll.AsInputError(payroll.ValidateDiscount(fmt.Sprintf("default_discounts[%d]", i), t.toDiscount())); err != nil {
			return err
		}
	}
	return nil
}

func (t DiscountTemplate) toDiscount() payroll.Discount {
	return payroll.Discount{
		Description:      t.Description,
		Kind:             payroll.DiscountKind(t.Kind),
		Amount:           t.Amount,
		Percentage:       t.Percentage,
		CalculationOrder: t.CalculationOrder,
	}
}

// CompanyDiscounts turns the templates into discounts for companyID.
func (p PayrollPolicy) CompanyDiscounts(companyID string) []payroll.CompanyDiscount {
	result := make([]payroll.CompanyDiscount, 0, len(p.DefaultDiscounts))
	for _, t := range p.DefaultDiscounts {
		result = append(result, payroll.CompanyDiscount{
			CompanyID:        companyID,
			Scope:            payroll.DiscountScope(t.Scope),
			Description:      t.Description,
			Kind:             payroll.DiscountKind(t.Kind),
			Amount:           t.Amount,
			Percentage:       t.Percentage,
			CalculationOrder: t.CalculationOrder,
			IsActive:         true,
		})
	}
	return result
}
