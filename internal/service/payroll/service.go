package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/database"
	"github.com/ankaa/payroll-backend-go/internal/pkg/metrics"
	"github.com/ankaa/payroll-backend-go/internal/pkg/payslip"
	"github.com/ankaa/payroll-backend-go/internal/pkg/validator"
	"github.com/ankaa/payroll-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	kindCascade = "cascade"
	kindSummary = "summary"

	defaultBatchConcurrency = 4
)

// Options tunes the payroll service. A zero BatchConcurrency or nil Now falls
// back to a default; GraceDays is used as given.
type Options struct {
	GraceDays        int
	BatchConcurrency int
	// DefaultDiscounts are seeded for a company with no discounts at all.
	// CompanyID is filled in per company.
	DefaultDiscounts []payroll.CompanyDiscount
	Metrics          *metrics.Metrics
	Now              func() time.Time
}

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	earningsRepo payroll.EarningsRepository
	opts         Options
	seeding      singleflight.Group
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	earningsRepo payroll.EarningsRepository,
	opts Options,
) payroll.PayrollService {
	if opts.BatchConcurrency < 1 {
		opts.BatchConcurrency = defaultBatchConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		earningsRepo: earningsRepo,
		opts:         opts,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// inTransaction runs fn on a single transaction. Without a database, as in
// tests with in-memory repositories, fn runs directly.
func (s *PayrollServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(postgresql.ContextWithTx(ctx, tx))
	})
}

func computationResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, payroll.ErrInvalidInput):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

// ========== PERIOD ==========

// CurrentPeriod resolves the period open on referenceDate (YYYY-MM-DD). An
// empty referenceDate means today.
func (s *PayrollServiceImpl) CurrentPeriod(ctx context.Context, referenceDate string) (payroll.CurrentPeriodResponse, error) {
	date, err := ParseReferenceDate(referenceDate, s.opts.Now())
	if err != nil {
		return payroll.CurrentPeriodResponse{}, err
	}

	period, err := ResolvePeriodWithGrace(date, s.opts.GraceDays)
	if err != nil {
		return payroll.CurrentPeriodResponse{}, err
	}

	start, end := period.DateRange()
	return payroll.CurrentPeriodResponse{
		ReferenceDate: date.Format("2006-01-02"),
		Year:          period.Year,
		Month:         period.Month,
		Label:         period.String(),
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
	}, nil
}

// ========== PREVIEW ==========

func (s *PayrollServiceImpl) PreviewCascade(ctx context.Context, req payroll.PreviewCascadeRequest) (payroll.CascadeResponse, error) {
	started := time.Now()
	balance, ledger, err := ApplyCascade(req.Base, req.Discounts)
	s.opts.Metrics.ObserveComputation(kindCascade, computationResult(err), started)
	if err != nil {
		return payroll.CascadeResponse{}, err
	}

	return payroll.CascadeResponse{
		Base:           req.Base,
		FinalBalance:   balance,
		TotalDiscounts: sumApplied(ledger),
		Ledger:         ledger,
	}, nil
}

func (s *PayrollServiceImpl) PreviewSummary(ctx context.Context, req payroll.PreviewSummaryRequest) (payroll.PayrollSummary, error) {
	return s.summarize(req.Earnings, req.BonusDiscounts, req.GeneralDiscounts)
}

func (s *PayrollServiceImpl) summarize(in payroll.EarningsInput, bonus, general []payroll.Discount) (payroll.PayrollSummary, error) {
	started := time.Now()
	summary, err := Summarize(in, bonus, general)
	s.opts.Metrics.ObserveComputation(kindSummary, computationResult(err), started)
	return summary, err
}

// GetEmployeeSummary returns the saved payroll of an employee when one exists
// for the period, and a live computation otherwise. A zero period means the
// period that is currently open.
func (s *PayrollServiceImpl) GetEmployeeSummary(ctx context.Context, employeeID string, period payroll.PayrollPeriod) (payroll.EmployeeSummaryResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.EmployeeSummaryResponse{}, err
	}

	if period == (payroll.PayrollPeriod{}) {
		period, err = ResolvePeriodWithGrace(s.opts.Now(), s.opts.GraceDays)
		if err != nil {
			return payroll.EmployeeSummaryResponse{}, err
		}
	}
	if !period.Valid() {
		return payroll.EmployeeSummaryResponse{}, fmt.Errorf("%w: %s", payroll.ErrPeriodOutOfRange, period)
	}

	source, err := s.resolveSource(ctx, companyID, employeeID, period)
	if err != nil {
		return payroll.EmployeeSummaryResponse{}, err
	}

	switch src := source.(type) {
	case payroll.PersistedSource:
		recordID := src.RecordID
		return payroll.EmployeeSummaryResponse{
			Source:      payroll.SourcePersisted,
			RecordID:    &recordID,
			EmployeeID:  src.Record.EmployeeID,
			PeriodMonth: src.Record.PeriodMonth,
			PeriodYear:  src.Record.PeriodYear,
			Earnings:    src.Record.Earnings,
			Summary:     src.Record.Summary,
		}, nil
	case payroll.ComputedSource:
		summary, err := s.summarize(src.Input, src.BonusDiscounts, src.GeneralDiscounts)
		if err != nil {
			return payroll.EmployeeSummaryResponse{}, err
		}
		return payroll.EmployeeSummaryResponse{
			Source:      payroll.SourceComputed,
			EmployeeID:  src.EmployeeID,
			PeriodMonth: src.Period.Month,
			PeriodYear:  src.Period.Year,
			Earnings:    src.Input,
			Summary:     summary,
		}, nil
	default:
		return payroll.EmployeeSummaryResponse{}, fmt.Errorf("unexpected payroll source %T", source)
	}
}

func (s *PayrollServiceImpl) resolveSource(ctx context.Context, companyID, employeeID string, period payroll.PayrollPeriod) (payroll.PayrollSource, error) {
	record, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, employeeID, period.Month, period.Year, companyID)
	if err == nil {
		return payroll.PersistedSource{RecordID: record.ID, Record: record}, nil
	}
	if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing payroll record: %w", err)
	}

	earnings, err := s.earningsRepo.GetEmployeeEarnings(ctx, companyID, employeeID, period)
	if err != nil {
		return nil, err
	}

	bonus, general, err := s.activeDiscounts(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return payroll.ComputedSource{
		Period:           period,
		EmployeeID:       employeeID,
		Input:            earnings.Earnings,
		BonusDiscounts:   bonus,
		GeneralDiscounts: general,
	}, nil
}

// ========== DISCOUNTS ==========

// ensureDiscounts lists every discount of the company, seeding the default
// discounts first when the company has none.
func (s *PayrollServiceImpl) ensureDiscounts(ctx context.Context, companyID string) ([]payroll.CompanyDiscount, error) {
	existing, err := s.payrollRepo.ListDiscounts(ctx, companyID, nil, false)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 || len(s.opts.DefaultDiscounts) == 0 {
		return existing, nil
	}

	// Callers in this process share one seeding run per company; the advisory
	// lock covers other processes.
	v, err, _ := s.seeding.Do(companyID, func() (interface{}, error) {
		return s.seedDiscounts(ctx, companyID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]payroll.CompanyDiscount), nil
}

func (s *PayrollServiceImpl) seedDiscounts(ctx context.Context, companyID string) ([]payroll.CompanyDiscount, error) {
	var discounts []payroll.CompanyDiscount
	err := s.inTransaction(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.LockDiscountSeeding(txCtx, companyID); err != nil {
			return err
		}

		// Another request may have seeded while we waited for the lock.
		current, err := s.payrollRepo.ListDiscounts(txCtx, companyID, nil, false)
		if err != nil {
			return err
		}
		if len(current) > 0 {
			discounts = current
			return nil
		}

		for _, tmpl := range s.opts.DefaultDiscounts {
			tmpl.CompanyID = companyID
			created, err := s.payrollRepo.CreateDiscount(txCtx, tmpl)
			if err != nil {
				return fmt.Errorf("failed to seed discount %q: %w", tmpl.Description, err)
			}
			discounts = append(discounts, created)
		}
		slog.Info("seeded default payroll discounts", "company_id", companyID, "count", len(discounts))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return discounts, nil
}

// activeDiscounts splits the active discounts of a company by scope.
func (s *PayrollServiceImpl) activeDiscounts(ctx context.Context, companyID string) (bonus, general []payroll.Discount, err error) {
	all, err := s.ensureDiscounts(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}

	for _, d := range all {
		if !d.IsActive {
			continue
		}
		switch d.Scope {
		case payroll.DiscountScopeBonus:
			bonus = append(bonus, d.ToDiscount())
		case payroll.DiscountScopeGeneral:
			general = append(general, d.ToDiscount())
		}
	}
	return bonus, general, nil
}

func (s *PayrollServiceImpl) CreateDiscount(ctx context.Context, req payroll.CreateDiscountRequest) (payroll.DiscountResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DiscountResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.DiscountResponse{}, err
	}

	discount := payroll.CompanyDiscount{
		CompanyID:        companyID,
		Scope:            payroll.DiscountScope(req.Scope),
		Description:      req.Description,
		Kind:             payroll.DiscountKind(req.Kind),
		CalculationOrder: req.CalculationOrder,
		IsActive:         true,
	}
	// Only the value matching the kind is stored.
	if discount.Kind == payroll.DiscountKindFixed {
		discount.Amount = req.Amount
	} else {
		discount.Percentage = req.Percentage
	}

	created, err := s.payrollRepo.CreateDiscount(ctx, discount)
	if err != nil {
		return payroll.DiscountResponse{}, err
	}

	return mapToDiscountResponse(created), nil
}

func (s *PayrollServiceImpl) ListDiscounts(ctx context.Context, scope *payroll.DiscountScope) ([]payroll.DiscountResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.ensureDiscounts(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.DiscountResponse, 0, len(all))
	for _, d := range all {
		if scope != nil && d.Scope != *scope {
			continue
		}
		result = append(result, mapToDiscountResponse(d))
	}
	return result, nil
}

func (s *PayrollServiceImpl) UpdateDiscount(ctx context.Context, req payroll.UpdateDiscountRequest) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	current, err := s.payrollRepo.GetDiscountByID(ctx, req.ID, companyID)
	if err != nil {
		return err
	}

	// Validate the discount as it will look after the update.
	merged := current.ToDiscount()
	if req.Amount != nil {
		merged.Amount = req.Amount
	}
	if req.Percentage != nil {
		merged.Percentage = req.Percentage
	}
	errs := payroll.ValidateDiscount("discount", merged)
	switch {
	case current.Kind == payroll.DiscountKindFixed && req.Percentage != nil:
		errs = append(errs, validator.ValidationError{Field: "percentage", Message: "not allowed on FIXED discounts"})
	case current.Kind == payroll.DiscountKindPercentage && req.Amount != nil:
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "not allowed on PERCENTAGE discounts"})
	}
	if req.Description != nil && validator.IsEmpty(*req.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "must not be empty"})
	}
	if err := payroll.AsInputError(errs); err != nil {
		return err
	}

	return s.payrollRepo.UpdateDiscount(ctx, companyID, req)
}

func (s *PayrollServiceImpl) DeleteDiscount(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeleteDiscount(ctx, id, companyID)
}

// ========== PAYROLL GENERATION ==========

// batchOutcome is what one worker of GeneratePayroll produced for one employee.
type batchOutcome struct {
	record  *payroll.PayrollRecord
	skipped *payroll.SkippedEmployee
}

func skip(employeeID, reason string) batchOutcome {
	return batchOutcome{skipped: &payroll.SkippedEmployee{EmployeeID: employeeID, Reason: reason}}
}

// GeneratePayroll computes and saves a draft record for every employee with
// earnings in the period. Employees that already have a record, or whose
// data cannot produce a valid summary, are reported as skipped.
func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	started := time.Now()
	period := payroll.PayrollPeriod{Year: req.PeriodYear, Month: req.PeriodMonth}

	bonus, general, err := s.activeDiscounts(ctx, companyID)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	earnings, err := s.earningsRepo.ListEmployeeEarnings(ctx, companyID, period, req.EmployeeIDs)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to get employee earnings: %w", err)
	}

	var skipped []payroll.SkippedEmployee
	if len(req.EmployeeIDs) > 0 {
		found := make(map[string]bool, len(earnings))
		for _, e := range earnings {
			found[e.EmployeeID] = true
		}
		for _, id := range req.EmployeeIDs {
			if !found[id] {
				skipped = append(skipped, payroll.SkippedEmployee{EmployeeID: id, Reason: payroll.ErrEarningsNotFound.Error()})
			}
		}
	}

	outcomes := make([]batchOutcome, len(earnings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BatchConcurrency)
	for i, emp := range earnings {
		i, emp := i, emp
		g.Go(func() error {
			outcome, err := s.computeRecord(gctx, companyID, period, emp, bonus, general)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	created := make([]payroll.PayrollRecordResponse, 0, len(outcomes))
	err = s.inTransaction(ctx, func(txCtx context.Context) error {
		for _, o := range outcomes {
			if o.skipped != nil {
				skipped = append(skipped, *o.skipped)
				continue
			}
			record, err := s.payrollRepo.CreatePayrollRecord(txCtx, *o.record)
			if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
				skipped = append(skipped, payroll.SkippedEmployee{EmployeeID: o.record.EmployeeID, Reason: err.Error()})
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to create payroll record for employee %s: %w", o.record.EmployeeID, err)
			}
			created = append(created, mapToRecordResponse(record))
		}
		return nil
	})
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	s.opts.Metrics.ObserveBatch(len(created), len(skipped), started)
	slog.Info("payroll batch generated",
		"company_id", companyID,
		"period", period.String(),
		"created", len(created),
		"skipped", len(skipped),
		"duration", time.Since(started),
	)

	return payroll.GeneratePayrollResponse{
		PeriodMonth: period.Month,
		PeriodYear:  period.Year,
		Created:     created,
		Skipped:     skipped,
	}, nil
}

func (s *PayrollServiceImpl) computeRecord(
	ctx context.Context,
	companyID string,
	period payroll.PayrollPeriod,
	emp payroll.EmployeeEarnings,
	bonus, general []payroll.Discount,
) (batchOutcome, error) {
	_, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, emp.EmployeeID, period.Month, period.Year, companyID)
	if err == nil {
		return skip(emp.EmployeeID, payroll.ErrPayrollRecordAlreadyExists.Error()), nil
	}
	if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return batchOutcome{}, fmt.Errorf("failed to check existing payroll record: %w", err)
	}

	summary, err := s.summarize(emp.Earnings, bonus, general)
	if errors.Is(err, payroll.ErrInvalidInput) {
		slog.Warn("skipping employee with invalid payroll input", "employee_id", emp.EmployeeID, "error", err)
		return skip(emp.EmployeeID, err.Error()), nil
	}
	if err != nil {
		return batchOutcome{}, err
	}

	name, code := emp.EmployeeName, emp.EmployeeCode
	return batchOutcome{record: &payroll.PayrollRecord{
		CompanyID:    companyID,
		EmployeeID:   emp.EmployeeID,
		PeriodMonth:  period.Month,
		PeriodYear:   period.Year,
		Earnings:     emp.Earnings,
		Summary:      summary,
		Status:       payroll.PayrollStatusDraft,
		EmployeeName: &name,
		EmployeeCode: &code,
	}}, nil
}

// ========== PAYROLL RECORDS ==========

func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	records, totalCount, err := s.payrollRepo.ListPayrollRecords(ctx, companyID, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	return payroll.ListPayrollRecordResponse{
		Data:       mapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) FinalizePayroll(ctx context.Context, req payroll.FinalizePayrollRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.FinalizePayrollRecords(ctx, req.RecordIDs, userID, companyID)
}

func (s *PayrollServiceImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeletePayrollRecord(ctx, id, companyID)
}

func (s *PayrollServiceImpl) ExportPayslip(ctx context.Context, id string, format string) (payroll.Payslip, error) {
	format = strings.ToLower(format)
	if format != payslip.FormatPDF && format != payslip.FormatXLSX {
		return payroll.Payslip{}, fmt.Errorf("%w: %q", payroll.ErrUnsupportedExportFormat, format)
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.Payslip{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	slip, err := payslip.Render(record, format)
	if err != nil {
		s.opts.Metrics.ObserveExport(format, metrics.ResultError)
		return payroll.Payslip{}, err
	}
	s.opts.Metrics.ObserveExport(format, metrics.ResultSuccess)

	return slip, nil
}

// ========== SUMMARY ==========

func (s *PayrollServiceImpl) GetPeriodTotals(ctx context.Context, month, year int) (payroll.PeriodTotalsResponse, error) {
	period := payroll.PayrollPeriod{Year: year, Month: month}
	if !period.Valid() {
		return payroll.PeriodTotalsResponse{}, fmt.Errorf("%w: %s", payroll.ErrPeriodOutOfRange, period)
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodTotalsResponse{}, err
	}

	return s.payrollRepo.GetPeriodTotals(ctx, companyID, month, year)
}

// ========== HELPERS ==========

func mapToDiscountResponse(d payroll.CompanyDiscount) payroll.DiscountResponse {
	return payroll.DiscountResponse{
		ID:               d.ID,
		Scope:            string(d.Scope),
		Description:      d.Description,
		Kind:             string(d.Kind),
		Amount:           d.Amount,
		Percentage:       d.Percentage,
		CalculationOrder: d.CalculationOrder,
		IsActive:         d.IsActive,
	}
}

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	var paidAtStr *string
	if r.PaidAt != nil {
		str := r.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	return payroll.PayrollRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: employeeName,
		EmployeeCode: employeeCode,
		PeriodMonth:  r.PeriodMonth,
		PeriodYear:   r.PeriodYear,
		Earnings:     r.Earnings,
		Summary:      r.Summary,
		Status:       string(r.Status),
		PaidAt:       paidAtStr,
		Notes:        r.Notes,
	}
}

func mapToRecordResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
