package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/handler/http/response"
	"github.com/ankaa/payroll-backend-go/internal/pkg/validator"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	testRecordID      = "01939b2c-6f3a-7c4d-9e1f-2a3b4c5d6e7f"
	testEmployeeID    = "5f0c3a2e-8d41-4b6a-9c1e-000000000001"
	missingEmployeeID = "5f0c3a2e-8d41-4b6a-9c1e-0000000000ff"
)

// stubPayrollService overrides the methods a test exercises. Calling any
// other method panics on the nil embedded interface.
type stubPayrollService struct {
	payroll.PayrollService

	currentPeriodFn      func(ctx context.Context, referenceDate string) (payroll.CurrentPeriodResponse, error)
	previewCascadeFn     func(ctx context.Context, req payroll.PreviewCascadeRequest) (payroll.CascadeResponse, error)
	getEmployeeSummaryFn func(ctx context.Context, employeeID string, period payroll.PayrollPeriod) (payroll.EmployeeSummaryResponse, error)
	listRecordsFn        func(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error)
	exportPayslipFn      func(ctx context.Context, id string, format string) (payroll.Payslip, error)
	generateFn           func(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error)
}

func (s *stubPayrollService) CurrentPeriod(ctx context.Context, referenceDate string) (payroll.CurrentPeriodResponse, error) {
	return s.currentPeriodFn(ctx, referenceDate)
}

func (s *stubPayrollService) PreviewCascade(ctx context.Context, req payroll.PreviewCascadeRequest) (payroll.CascadeResponse, error) {
	return s.previewCascadeFn(ctx, req)
}

func (s *stubPayrollService) GetEmployeeSummary(ctx context.Context, employeeID string, period payroll.PayrollPeriod) (payroll.EmployeeSummaryResponse, error) {
	return s.getEmployeeSummaryFn(ctx, employeeID, period)
}

func (s *stubPayrollService) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	return s.listRecordsFn(ctx, filter)
}

func (s *stubPayrollService) ExportPayslip(ctx context.Context, id string, format string) (payroll.Payslip, error) {
	return s.exportPayslipFn(ctx, id, format)
}

func (s *stubPayrollService) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	return s.generateFn(ctx, req)
}

type stubHealth struct{ err error }

func (s stubHealth) Health(context.Context) error { return s.err }

func newTestServer(t *testing.T, svc payroll.PayrollService, opts RouterOptions) (http.Handler, *jwtauth.JWTAuth) {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte(handlerTestSecret), nil)
	return NewRouter(tokenAuth, NewPayrollHandler(svc), opts), tokenAuth
}

func bearer(t *testing.T, tokenAuth *jwtauth.JWTAuth, role string) string {
	t.Helper()
	_, token, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": "company-1",
		"role":       role,
		"type":       "access",
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, h http.Handler, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCurrentPeriodHandler(t *testing.T) {
	var gotDate string
	svc := &stubPayrollService{
		currentPeriodFn: func(_ context.Context, referenceDate string) (payroll.CurrentPeriodResponse, error) {
			gotDate = referenceDate
			return payroll.CurrentPeriodResponse{Year: 2025, Month: 1, Label: "2025-01"}, nil
		},
	}
	h, tokenAuth := newTestServer(t, svc, RouterOptions{})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/payroll/period/current?date=2025-02-05", bearer(t, tokenAuth, "employee"), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-02-05", gotDate)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "2025-01", resp.Data.(map[string]interface{})["label"])
}

func TestCurrentPeriodHandler_Unauthenticated(t *testing.T) {
	h, _ := newTestServer(t, &stubPayrollService{}, RouterOptions{})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/payroll/period/current", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPreviewCascadeHandler(t *testing.T) {
	svc := &stubPayrollService{
		previewCascadeFn: func(_ context.Context, req payroll.PreviewCascadeRequest) (payroll.CascadeResponse, error) {
			if req.Base.IsNegative() {
				return payroll.CascadeResponse{}, payroll.AsInputError(validator.ValidationErrors{{Field: "base", Message: "must be non-negative"}})
			}
			return payroll.CascadeResponse{Base: req.Base, FinalBalance: req.Base}, nil
		},
	}
	h, tokenAuth := newTestServer(t, svc, RouterOptions{})
	auth := bearer(t, tokenAuth, "employee")

	rec := doRequest(t, h, http.MethodPost, "/api/v1/payroll/preview/cascade", auth, map[string]interface{}{"base": "100.00"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/payroll/preview/cascade", auth, map[string]interface{}{"base": "-1"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "must be non-negative", resp.Error.Details["base"])
}

func TestPreviewCascadeHandler_InvalidBody(t *testing.T) {
	h, tokenAuth := newTestServer(t, &stubPayrollService{}, RouterOptions{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/preview/cascade", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, tokenAuth, "owner"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEmployeeSummaryHandler(t *testing.T) {
	var gotPeriod payroll.PayrollPeriod
	calls := 0
	svc := &stubPayrollService{
		getEmployeeSummaryFn: func(_ context.Context, employeeID string, period payroll.PayrollPeriod) (payroll.EmployeeSummaryResponse, error) {
			calls++
			gotPeriod = period
			if employeeID == missingEmployeeID {
				return payroll.EmployeeSummaryResponse{}, payroll.ErrEarningsNotFound
			}
			return payroll.EmployeeSummaryResponse{Source: payroll.SourceComputed, EmployeeID: employeeID}, nil
		},
	}
	h, tokenAuth := newTestServer(t, svc, RouterOptions{})
	auth := bearer(t, tokenAuth, "manager")

	rec := doRequest(t, h, http.MethodGet, "/api/v1/payroll/employees/"+testEmployeeID+"/summary?month=3&year=2025", auth, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payroll.PayrollPeriod{Year: 2025, Month: 3}, gotPeriod)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/payroll/employees/"+testEmployeeID+"/summary", auth, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payroll.PayrollPeriod{}, gotPeriod)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/payroll/employees/"+testEmployeeID+"/summary?month=x&year=2025", auth, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/payroll/employees/"+missingEmployeeID+"/summary", auth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	before := calls
	rec = doRequest(t, h, http.MethodGet, "/api/v1/payroll/employees/emp-42/summary", auth, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Employee ID", decodeResponse(t, rec).Error.Message)
	assert.Equal(t, before, calls)

	// Employees cannot read other employees' payroll
	rec = doRequest(t, h, http.MethodGet, "/api/v1/payroll/employees/"+testEmployeeID+"/summary", bearer(t, tokenAuth, "employee"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListPayrollRecordsHandler(t *testing.T) {
	var gotFilter payroll.PayrollFilter
	svc := &stubPayrollService{
		listRecordsFn: func(_ context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
			gotFilter = filter
			return payroll.ListPayrollRecordResponse{
				Data:       []payroll.PayrollRecordResponse{{ID: "r1", Summary: payroll.PayrollSummary{TotalNet: decimal.NewFromInt(3500)}}},
				TotalCount: 41,
				Page:       filter.Page,
				Limit:      filter.Limit,
			}, nil
		},
	}
	h, tokenAuth := newTestServer(t, svc, RouterOptions{})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/payroll/records?page=2&limit=20&period_month=3&status=draft&sort_by=total_net", bearer(t, tokenAuth, "manager"), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFilter.PeriodMonth)
	assert.Equal(t, 3, *gotFilter.PeriodMonth)
	assert.Equal(t, "draft", *gotFilter.Status)
	assert.Equal(t, "total_net", gotFilter.SortBy)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, int64(41), resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/payroll/records?employee_id="+testEmployeeID, bearer(t, tokenAuth, "manager"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFilter.EmployeeID)
	assert.Equal(t, testEmployeeID, *gotFilter.EmployeeID)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/payroll/records?employee_id=emp-42", bearer(t, tokenAuth, "manager"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportPayslipHandler(t *testing.T) {
	svc := &stubPayrollService{
		exportPayslipFn: func(_ context.Context, id string, format string) (payroll.Payslip, error) {
			if format != "pdf" {
				return payroll.Payslip{}, payroll.ErrUnsupportedExportFormat
			}
			return payroll.Payslip{FileName: "payslip-E1-2025-03.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.3")}, nil
		},
	}
	h, tokenAuth := newTestServer(t, svc, RouterOptions{})
	auth := bearer(t, tokenAuth, "owner")

	rec := doRequest(t, h, http.MethodGet, "/api/v1/payroll/records/"+testRecordID+"/payslip", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="payslip-E1-2025-03.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", rec.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/api/v1/payroll/records/"+testRecordID+"/payslip?format=csv", auth, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/payroll/records/not-a-uuid/payslip", auth, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePayrollHandler_RequiresPermission(t *testing.T) {
	called := false
	svc := &stubPayrollService{
		generateFn: func(_ context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
			called = true
			return payroll.GeneratePayrollResponse{PeriodMonth: req.PeriodMonth, PeriodYear: req.PeriodYear}, nil
		},
	}
	h, tokenAuth := newTestServer(t, svc, RouterOptions{})
	body := map[string]interface{}{"period_month": 3, "period_year": 2025}

	rec := doRequest(t, h, http.MethodPost, "/api/v1/payroll/generate", bearer(t, tokenAuth, "employee"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/payroll/generate", bearer(t, tokenAuth, "manager"), body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, called)
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "payroll_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	h, _ := newTestServer(t, &stubPayrollService{}, RouterOptions{
		MetricsPath:    "/metrics",
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Health:         stubHealth{},
	})

	rec := doRequest(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "payroll_test_total 1")

	down, _ := newTestServer(t, &stubPayrollService{}, RouterOptions{Health: stubHealth{err: errors.New("db down")}})
	rec = doRequest(t, down, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
