package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cfc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cfc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	signups = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cfc",
			Subsystem: "identity",
			Name:      "signups_total",
			Help:      "Users registered.",
		},
	)

	subscriptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cfc",
			Subsystem: "subscription",
			Name:      "payments_total",
			Help:      "Subscription payments by method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	referralCredits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cfc",
			Subsystem: "ledger",
			Name:      "referral_credits_total",
			Help:      "Referral bonus postings by level and outcome.",
		},
		[]string{"level", "outcome"},
	)

	withdrawals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cfc",
			Subsystem: "wallet",
			Name:      "withdrawals_total",
			Help:      "Withdrawal lifecycle events.",
		},
		[]string{"status"},
	)

	expiredSubscriptions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cfc",
			Subsystem: "subscription",
			Name:      "expired_total",
			Help:      "Subscriptions moved to expired by the scheduler.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		signups,
		subscriptions,
		referralCredits,
		withdrawals,
		expiredSubscriptions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler records request counts and latency for everything but /metrics.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

func RecordSignup() {
	signups.Inc()
}

func RecordSubscriptionPayment(method string, success bool) {
	subscriptions.WithLabelValues(method, outcome(success)).Inc()
}

func RecordReferralCredit(level string, credited bool) {
	result := "credited"
	if !credited {
		result = "skipped"
	}
	referralCredits.WithLabelValues(level, result).Inc()
}

func RecordReferralCreditFailure(level string) {
	referralCredits.WithLabelValues(level, "failed").Inc()
}

func RecordWithdrawal(status string) {
	withdrawals.WithLabelValues(status).Inc()
}

func RecordExpiredSubscriptions(count int64) {
	if count > 0 {
		expiredSubscriptions.Add(float64(count))
	}
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// canonicalPath keeps label cardinality bounded to the first two segments.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return "/" + strings.Join(parts, "/")
}
