package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated   *prometheus.CounterVec
	TransactionsCancelled prometheus.Counter
	TransactionsAdjusted  prometheus.Counter
	TransactionErrors     *prometheus.CounterVec
	CommandDuration       *prometheus.HistogramVec

	// Installment metrics
	InstallmentPlansCreated prometheus.Counter
	InstallmentsPerPlan     prometheus.Histogram

	// Transfer metrics
	TransfersCreated prometheus.Counter
	InvoicesPaid     prometheus.Counter
	TransferAmount   prometheus.Histogram

	// Account metrics
	AccountsCreated *prometheus.CounterVec

	// Recurrence metrics
	RecurrencesGenerated prometheus.Counter
	RecurrenceRuns       prometheus.Counter

	// Idempotency metrics
	DuplicateOperations prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_transactions_created_total",
				Help: "Total number of transactions created",
			},
			[]string{"type", "status"},
		),
		TransactionsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_transactions_cancelled_total",
			Help: "Total number of transactions cancelled",
		}),
		TransactionsAdjusted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_transactions_adjusted_total",
			Help: "Total number of adjustment transactions created",
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_transaction_errors_total",
				Help: "Total number of transaction command errors by type",
			},
			[]string{"error_type"},
		),
		CommandDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finledger_command_duration_seconds",
				Help:    "Duration of ledger commands",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),

		InstallmentPlansCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_installment_plans_created_total",
			Help: "Total number of installment plans created",
		}),
		InstallmentsPerPlan: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finledger_installments_per_plan",
			Help:    "Number of installments per plan",
			Buckets: []float64{2, 3, 6, 10, 12, 18, 24},
		}),

		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		InvoicesPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_invoices_paid_total",
			Help: "Total number of credit card invoice payments",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finledger_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{10, 100, 500, 1000, 5000, 10000, 100000},
		}),

		AccountsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_accounts_created_total",
				Help: "Total number of accounts created",
			},
			[]string{"type"},
		),

		RecurrencesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_recurrences_generated_total",
			Help: "Total number of transactions generated from recurrence templates",
		}),
		RecurrenceRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_recurrence_runs_total",
			Help: "Total number of recurrence generation runs",
		}),

		DuplicateOperations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_duplicate_operations_total",
			Help: "Total number of commands rejected as duplicates",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
