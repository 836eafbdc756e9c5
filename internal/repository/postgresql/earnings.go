package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type earningsRepository struct {
	db *database.DB
}

// NewEarningsRepository reads the monthly earnings snapshots written by the
// position and time tracking modules.
func NewEarningsRepository(db *database.DB) payroll.EarningsRepository {
	return &earningsRepository{db: db}
}

const earningsColumns = `pe.employee_id, pe.employee_name, pe.employee_code,
	pe.base_remuneration, pe.overtime_50_amount, pe.overtime_50_hours,
	pe.overtime_100_amount, pe.overtime_100_hours,
	pe.night_differential_amount, pe.night_differential_hours,
	pe.dsr_amount, pe.dsr_days, pe.bonus_base_amount`

func scanEmployeeEarnings(row rowScanner) (payroll.EmployeeEarnings, error) {
	var e payroll.EmployeeEarnings
	in := &e.Earnings
	err := row.Scan(
		&e.EmployeeID, &e.EmployeeName, &e.EmployeeCode,
		&in.BaseRemuneration, &in.Overtime50Amount, &in.Overtime50Hours,
		&in.Overtime100Amount, &in.Overtime100Hours,
		&in.NightDifferentialAmount, &in.NightDifferentialHours,
		&in.DSRAmount, &in.DSRDays, &in.BonusBaseAmount,
	)
	return e, err
}

func (r *earningsRepository) GetEmployeeEarnings(ctx context.Context, companyID, employeeID string, period payroll.PayrollPeriod) (payroll.EmployeeEarnings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + earningsColumns + `
		FROM payroll_earnings pe
		WHERE pe.company_id = $1 AND pe.employee_id = $2 AND pe.period_year = $3 AND pe.period_month = $4
	`

	e, err := scanEmployeeEarnings(q.QueryRow(ctx, query, companyID, employeeID, period.Year, period.Month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.EmployeeEarnings{}, payroll.ErrEarningsNotFound
		}
		return payroll.EmployeeEarnings{}, fmt.Errorf("failed to get employee earnings: %w", err)
	}

	return e, nil
}

// ListEmployeeEarnings returns the earnings of every employee of the company
// for the period, narrowed to employeeIDs when it is not empty.
func (r *earningsRepository) ListEmployeeEarnings(ctx context.Context, companyID string, period payroll.PayrollPeriod, employeeIDs []string) ([]payroll.EmployeeEarnings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + earningsColumns + `
		FROM payroll_earnings pe
		WHERE pe.company_id = $1 AND pe.period_year = $2 AND pe.period_month = $3
	`
	args := []interface{}{companyID, period.Year, period.Month}

	if len(employeeIDs) > 0 {
		query += " AND pe.employee_id = ANY($4)"
		args = append(args, employeeIDs)
	}
	query += " ORDER BY pe.employee_name, pe.employee_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee earnings: %w", err)
	}
	defer rows.Close()

	var earnings []payroll.EmployeeEarnings
	for rows.Next() {
		e, err := scanEmployeeEarnings(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee earnings: %w", err)
		}
		earnings = append(earnings, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employee earnings: %w", err)
	}

	return earnings, nil
}
