package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	RegisterRequestsTotal  metric.Int64Counter
	LoginRequestsTotal     metric.Int64Counter
	TaskOperationsTotal    metric.Int64Counter
	DbQueryDurationSeconds metric.Float64Histogram
	DbQueryErrorsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments from the global MeterProvider. Call
// it after the provider is installed; later calls are no-ops.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-task-tracker")
		var err error
		m := &AppMetrics{}

		m.RegisterRequestsTotal, err = meter.Int64Counter(
			"auth_register_total",
			metric.WithDescription("Total number of registration attempts by result"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_register_total: %v", err)
		}

		m.LoginRequestsTotal, err = meter.Int64Counter(
			"auth_login_total",
			metric.WithDescription("Total number of login attempts by result"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_login_total: %v", err)
		}

		m.TaskOperationsTotal, err = meter.Int64Counter(
			"task_operations_total",
			metric.WithDescription("Total number of task operations by operation and result"),
			metric.WithUnit("{operation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create task_operations_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the instruments, creating them against whatever provider is
// installed if InitAppMetrics has not run yet (tests, tools).
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

func result(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("result", "error")
	}
	return attribute.String("result", "success")
}

func (m *AppMetrics) RecordRegister(ctx context.Context, err error) {
	m.RegisterRequestsTotal.Add(ctx, 1, metric.WithAttributes(result(err)))
}

func (m *AppMetrics) RecordLogin(ctx context.Context, err error) {
	m.LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(result(err)))
}

func (m *AppMetrics) RecordTaskOperation(ctx context.Context, operation string, err error) {
	m.TaskOperationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation), result(err)))
}

// ObserveQuery records the latency of a single repository call.
func (m *AppMetrics) ObserveQuery(ctx context.Context, operation string, start time.Time, err error) {
	op := metric.WithAttributes(attribute.String("operation", operation))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), op)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, op)
	}
}
