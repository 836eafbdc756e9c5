package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// ========== DISCOUNTS ==========

const discountColumns = `id, company_id, scope, description, kind, amount, percentage,
	calculation_order, is_active, created_at, updated_at`

func scanDiscount(row rowScanner) (payroll.CompanyDiscount, error) {
	var d payroll.CompanyDiscount
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.Scope, &d.Description, &d.Kind, &d.Amount, &d.Percentage,
		&d.CalculationOrder, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func (r *payrollRepository) CreateDiscount(ctx context.Context, discount payroll.CompanyDiscount) (payroll.CompanyDiscount, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.CompanyDiscount{}, fmt.Errorf("failed to generate discount id: %w", err)
	}

	query := `
		INSERT INTO payroll_discounts (id, company_id, scope, description, kind, amount, percentage, calculation_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + discountColumns

	created, err := scanDiscount(q.QueryRow(ctx, query,
		id.String(), discount.CompanyID, discount.Scope, discount.Description, discount.Kind,
		discount.Amount, discount.Percentage, discount.CalculationOrder, discount.IsActive,
	))
	if err != nil {
		return payroll.CompanyDiscount{}, fmt.Errorf("failed to create payroll discount: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetDiscountByID(ctx context.Context, id string, companyID string) (payroll.CompanyDiscount, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + discountColumns + ` FROM payroll_discounts WHERE id = $1 AND company_id = $2`

	d, err := scanDiscount(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.CompanyDiscount{}, payroll.ErrDiscountNotFound
		}
		return payroll.CompanyDiscount{}, fmt.Errorf("failed to get payroll discount: %w", err)
	}

	return d, nil
}

// ListDiscounts returns discounts in cascade order. Discounts sharing a
// calculation order come back in creation order.
func (r *payrollRepository) ListDiscounts(ctx context.Context, companyID string, scope *payroll.DiscountScope, activeOnly bool) ([]payroll.CompanyDiscount, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + discountColumns + ` FROM payroll_discounts WHERE company_id = $1`
	args := []interface{}{companyID}

	if scope != nil {
		query += " AND scope = $2"
		args = append(args, *scope)
	}
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY scope, calculation_order, created_at, id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll discounts: %w", err)
	}
	defer rows.Close()

	var discounts []payroll.CompanyDiscount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll discount: %w", err)
		}
		discounts = append(discounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list payroll discounts: %w", err)
	}

	return discounts, nil
}

func (r *payrollRepository) UpdateDiscount(ctx context.Context, companyID string, req payroll.UpdateDiscountRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, companyID}
	argIdx := 3

	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Amount != nil {
		setParts = append(setParts, fmt.Sprintf("amount = $%d", argIdx))
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.Percentage != nil {
		setParts = append(setParts, fmt.Sprintf("percentage = $%d", argIdx))
		args = append(args, *req.Percentage)
		argIdx++
	}
	if req.CalculationOrder != nil {
		setParts = append(setParts, fmt.Sprintf("calculation_order = $%d", argIdx))
		args = append(args, *req.CalculationOrder)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE payroll_discounts
		SET %s
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrDiscountNotFound
		}
		return fmt.Errorf("failed to update payroll discount: %w", err)
	}

	return nil
}

func (r *payrollRepository) DeleteDiscount(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_discounts WHERE id = $1 AND company_id = $2 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrDiscountNotFound
		}
		return fmt.Errorf("failed to delete payroll discount: %w", err)
	}

	return nil
}

// LockDiscountSeeding serializes default-discount seeding per company. It must
// run inside a transaction; the lock is released when that transaction ends.
func (r *payrollRepository) LockDiscountSeeding(ctx context.Context, companyID string) error {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return fmt.Errorf("failed to lock discount seeding: no transaction in context")
	}

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('payroll_discounts:' || $1::text))`, companyID); err != nil {
		return fmt.Errorf("failed to lock discount seeding: %w", err)
	}

	return nil
}

// ========== PAYROLL RECORDS ==========

const recordColumns = `pr.id, pr.company_id, pr.employee_id, pr.employee_name, pr.employee_code,
	pr.period_month, pr.period_year,
	pr.base_remuneration, pr.overtime_50_amount, pr.overtime_50_hours,
	pr.overtime_100_amount, pr.overtime_100_hours,
	pr.night_differential_amount, pr.night_differential_hours,
	pr.dsr_amount, pr.dsr_days, pr.bonus_base_amount,
	pr.gross, pr.total_gross, pr.total_bonus_net, pr.total_discounts, pr.total_net,
	pr.bonus_ledger, pr.general_ledger,
	pr.status, pr.paid_at, pr.paid_by, pr.notes, pr.created_at, pr.updated_at`

func scanPayrollRecord(row rowScanner) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var bonusLedger, generalLedger []byte
	in := &rec.Earnings
	sum := &rec.Summary

	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.EmployeeName, &rec.EmployeeCode,
		&rec.PeriodMonth, &rec.PeriodYear,
		&in.BaseRemuneration, &in.Overtime50Amount, &in.Overtime50Hours,
		&in.Overtime100Amount, &in.Overtime100Hours,
		&in.NightDifferentialAmount, &in.NightDifferentialHours,
		&in.DSRAmount, &in.DSRDays, &in.BonusBaseAmount,
		&sum.Gross, &sum.TotalGross, &sum.TotalBonusNet, &sum.TotalDiscounts, &sum.TotalNet,
		&bonusLedger, &generalLedger,
		&rec.Status, &rec.PaidAt, &rec.PaidBy, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	sum.BonusGross = in.BonusBaseAmount
	if err := json.Unmarshal(bonusLedger, &sum.BonusLedger); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode bonus ledger: %w", err)
	}
	if err := json.Unmarshal(generalLedger, &sum.GeneralLedger); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode general ledger: %w", err)
	}

	return rec, nil
}

func marshalLedger(ledger []payroll.DiscountLedgerEntry) ([]byte, error) {
	if ledger == nil {
		ledger = []payroll.DiscountLedgerEntry{}
	}
	return json.Marshal(ledger)
}

// CreatePayrollRecord inserts a record and returns ErrPayrollRecordAlreadyExists
// when the employee already has one for the period. The conflict does not
// abort an enclosing transaction.
func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to generate payroll record id: %w", err)
	}
	bonusLedger, err := marshalLedger(record.Summary.BonusLedger)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode bonus ledger: %w", err)
	}
	generalLedger, err := marshalLedger(record.Summary.GeneralLedger)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode general ledger: %w", err)
	}

	in := record.Earnings
	sum := record.Summary

	query := `
		INSERT INTO payroll_records AS pr (
			id, company_id, employee_id, employee_name, employee_code, period_month, period_year,
			base_remuneration, overtime_50_amount, overtime_50_hours,
			overtime_100_amount, overtime_100_hours,
			night_differential_amount, night_differential_hours,
			dsr_amount, dsr_days, bonus_base_amount,
			gross, total_gross, total_bonus_net, total_discounts, total_net,
			bonus_ledger, general_ledger, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		ON CONFLICT ON CONSTRAINT uk_payroll_record_employee_period DO NOTHING
		RETURNING ` + recordColumns

	created, err := scanPayrollRecord(q.QueryRow(ctx, query,
		id.String(), record.CompanyID, record.EmployeeID, record.EmployeeName, record.EmployeeCode,
		record.PeriodMonth, record.PeriodYear,
		in.BaseRemuneration, in.Overtime50Amount, in.Overtime50Hours,
		in.Overtime100Amount, in.Overtime100Hours,
		in.NightDifferentialAmount, in.NightDifferentialHours,
		in.DSRAmount, in.DSRDays, in.BonusBaseAmount,
		sum.Gross, sum.TotalGross, sum.TotalBonusNet, sum.TotalDiscounts, sum.TotalNet,
		bonusLedger, generalLedger, record.Status, record.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + ` FROM payroll_records pr WHERE pr.id = $1 AND pr.company_id = $2`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records pr
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3 AND pr.company_id = $4
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_records pr
		WHERE pr.company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	// Sort
	sortColumn := "pr.created_at"
	if filter.SortBy != "" {
		allowedColumns := map[string]string{
			"created_at":    "pr.created_at",
			"period":        "pr.period_year DESC, pr.period_month",
			"employee_name": "pr.employee_name",
			"total_net":     "pr.total_net",
		}
		if col, ok := allowedColumns[filter.SortBy]; ok {
			sortColumn = col
		}
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY %s %s, pr.id
		LIMIT $%d OFFSET $%d
	`, recordColumns, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}

	return records, totalCount, nil
}

// FinalizePayrollRecords marks draft records as paid. Already paid records
// are left untouched.
func (r *payrollRepository) FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'paid', paid_at = NOW(), paid_by = $1, updated_at = NOW()
		WHERE id = ANY($2) AND company_id = $3 AND status = 'draft'
	`

	tag, err := q.Exec(ctx, query, paidBy, ids, companyID)
	if err != nil {
		return fmt.Errorf("failed to finalize payroll records: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

func (r *payrollRepository) DeletePayrollRecord(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	// Check if record is already paid
	var status string
	err := q.QueryRow(ctx, `SELECT status FROM payroll_records WHERE id = $1 AND company_id = $2`, id, companyID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to check payroll record status: %w", err)
	}
	if status == string(payroll.PayrollStatusPaid) {
		return payroll.ErrCannotDeletePaidRecord
	}

	query := `DELETE FROM payroll_records WHERE id = $1 AND company_id = $2 AND status = 'draft' RETURNING id`

	var deletedID string
	err = q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	return nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetPeriodTotals(ctx context.Context, companyID string, month, year int) (payroll.PeriodTotalsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total_employees,
			COALESCE(SUM(total_gross), 0) as total_gross,
			COALESCE(SUM(total_bonus_net), 0) as total_bonus_net,
			COALESCE(SUM(total_discounts), 0) as total_discounts,
			COALESCE(SUM(total_net), 0) as total_net,
			COUNT(*) FILTER (WHERE status = 'draft') as draft_count,
			COUNT(*) FILTER (WHERE status = 'paid') as paid_count
		FROM payroll_records
		WHERE company_id = $1 AND period_month = $2 AND period_year = $3
	`

	var totals payroll.PeriodTotalsResponse
	err := q.QueryRow(ctx, query, companyID, month, year).Scan(
		&totals.TotalEmployees, &totals.TotalGross, &totals.TotalBonusNet,
		&totals.TotalDiscounts, &totals.TotalNet, &totals.DraftCount, &totals.PaidCount,
	)
	if err != nil {
		return payroll.PeriodTotalsResponse{}, fmt.Errorf("failed to get payroll period totals: %w", err)
	}

	totals.PeriodMonth = month
	totals.PeriodYear = year

	return totals, nil
}
