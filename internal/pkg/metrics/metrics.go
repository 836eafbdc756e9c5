package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "payroll_"

	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"

	ResultCreated = "created"
	ResultSkipped = "skipped"
)

// Metrics bundles payroll metrics.
type Metrics struct {
	ComputationsTotal   *prometheus.CounterVec
	ComputationDuration *prometheus.HistogramVec
	BatchRecordsTotal   *prometheus.CounterVec
	BatchDuration       prometheus.Histogram
	PayslipExportsTotal *prometheus.CounterVec
}

// New constructs metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ComputationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "computations_total",
				Help: "Total payroll computations by kind and result",
			},
			[]string{"kind", "result"},
		),
		ComputationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "computation_duration_seconds",
				Help:    "Payroll computation latency in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"kind"},
		),
		BatchRecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "batch_records_total",
				Help: "Employees processed by batch generation, by result",
			},
			[]string{"result"},
		),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "batch_duration_seconds",
			Help:    "Batch generation duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		PayslipExportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "payslip_exports_total",
				Help: "Payslip exports by format and result",
			},
			[]string{"format", "result"},
		),
	}
	reg.MustRegister(
		m.ComputationsTotal,
		m.ComputationDuration,
		m.BatchRecordsTotal,
		m.BatchDuration,
		m.PayslipExportsTotal,
	)
	return m
}

// ObserveComputation records one computation of the given kind.
func (m *Metrics) ObserveComputation(kind, result string, started time.Time) {
	if m == nil {
		return
	}
	m.ComputationsTotal.WithLabelValues(kind, result).Inc()
	m.ComputationDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

// ObserveBatch records the outcome of one batch generation run.
func (m *Metrics) ObserveBatch(created, skipped int, started time.Time) {
	if m == nil {
		return
	}
	m.BatchRecordsTotal.WithLabelValues(ResultCreated).Add(float64(created))
	m.BatchRecordsTotal.WithLabelValues(ResultSkipped).Add(float64(skipped))
	m.BatchDuration.Observe(time.Since(started).Seconds())
}

// ObserveExport records one payslip export.
func (m *Metrics) ObserveExport(format, result string) {
	if m == nil {
		return
	}
	m.PayslipExportsTotal.WithLabelValues(format, result).Inc()
}
