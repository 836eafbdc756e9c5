package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ankaa/payroll-backend-go/internal/domain/auth"
	"github.com/ankaa/payroll-backend-go/internal/handler/http/middleware"
	"github.com/ankaa/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// HealthChecker reports whether a dependency can serve requests.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	// MetricsPath and MetricsHandler are mounted outside authentication when
	// the handler is set.
	MetricsPath    string
	MetricsHandler http.Handler
	Health         HealthChecker
}

func NewRouter(tokenAuth *jwtauth.JWTAuth, payrollHandler PayrollHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Health != nil {
			if err := opts.Health.Health(r.Context()); err != nil {
				slog.ErrorContext(r.Context(), "health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable\n"))
				return
			}
		}
		_, _ = w.Write([]byte("ok\n"))
	})

	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, opts.MetricsPath, opts.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))
			r.Use(middleware.RequireCompany)
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/period/current", payrollHandler.CurrentPeriod)

				r.Route("/preview", func(r chi.Router) {
					r.Use(middleware.RequirePermission(auth.PermissionPayrollPreview))
					r.Post("/cascade", payrollHandler.PreviewCascade)
					r.Post("/summary", payrollHandler.PreviewSummary)
				})

				r.With(middleware.RequirePermission(auth.PermissionPayrollView)).
					Get("/employees/{employeeId}/summary", payrollHandler.GetEmployeeSummary)

				r.Route("/discounts", func(r chi.Router) {
					r.With(middleware.RequirePermission(auth.PermissionPayrollView)).Get("/", payrollHandler.ListDiscounts)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(auth.PermissionDiscountManage))
						r.Post("/", payrollHandler.CreateDiscount)
						r.Put("/{id}", payrollHandler.UpdateDiscount)
						r.Delete("/{id}", payrollHandler.DeleteDiscount)
					})
				})

				r.Route("/records", func(r chi.Router) {
					r.Use(middleware.RequirePermission(auth.PermissionPayrollView))
					r.Get("/", payrollHandler.ListPayrollRecords)
					r.Get("/{id}", payrollHandler.GetPayrollRecord)
					r.Get("/{id}/payslip", payrollHandler.ExportPayslip)
					r.With(middleware.RequirePermission(auth.PermissionPayrollGenerate)).Delete("/{id}", payrollHandler.DeletePayrollRecord)
					r.With(middleware.RequirePermission(auth.PermissionPayrollFinalize)).Post("/finalize", payrollHandler.FinalizePayroll)
				})

				r.With(middleware.RequirePermission(auth.PermissionPayrollGenerate)).Post("/generate", payrollHandler.GeneratePayroll)
				r.With(middleware.RequirePermission(auth.PermissionPayrollView)).Get("/summary", payrollHandler.GetPeriodTotals)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
