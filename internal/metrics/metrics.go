package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentpe_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rentpe_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	WalletTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentpe_wallet_transactions_total",
			Help: "Total number of wallet ledger entries",
		},
		[]string{"type", "reference_type"},
	)

	InvoicePaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentpe_invoice_payments_total",
			Help: "Total number of invoice payments recorded",
		},
		[]string{"method", "status"},
	)

	CouponValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentpe_coupon_validations_total",
			Help: "Total number of coupon validation requests",
		},
		[]string{"result"},
	)

	ReferralBonusesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentpe_referral_bonuses_total",
			Help: "Total number of referral bonus pairs issued",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentpe_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordWalletTransaction(txnType, referenceType string) {
	WalletTransactionsTotal.WithLabelValues(txnType, referenceType).Inc()
}

func RecordInvoicePayment(method, status string) {
	InvoicePaymentsTotal.WithLabelValues(method, status).Inc()
}

func RecordCouponValidation(result string) {
	CouponValidationsTotal.WithLabelValues(result).Inc()
}

func RecordReferralBonus() {
	ReferralBonusesTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
