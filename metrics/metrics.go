package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "zakat_"

	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
	ResultCached  = "cached"
)

var (
	registerOnce sync.Once

	calculationsTotal  *prometheus.CounterVec
	calculationLatency *prometheus.HistogramVec

	nisabLookups *prometheus.CounterVec

	donationsTotal  *prometheus.CounterVec
	donationsAmount *prometheus.CounterVec

	doaActions *prometheus.CounterVec

	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	rateLimitedHits prometheus.Counter
)

// Init registers the service collectors with the default registry. Calls
// after the first are no-ops.
func Init() {
	registerOnce.Do(func() {
		calculationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculations_total",
				Help: "Total zakat calculations by type and result",
			},
			[]string{"type", "result"},
		)
		calculationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "calculation_latency_seconds",
				Help:    "Zakat calculation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		)
		nisabLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "nisab_lookups_total",
				Help: "Nisab reference lookups by source",
			},
			[]string{"source"},
		)
		donationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "donations_total",
				Help: "Recorded zakat payments by type",
			},
			[]string{"type"},
		)
		donationsAmount = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "donations_amount_total",
				Help: "Sum of recorded zakat payments by type",
			},
			[]string{"type"},
		)
		doaActions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "doa_actions_total",
				Help: "Doa feed actions by kind",
			},
			[]string{"action"},
		)
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
		rateLimitedHits = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		)
		prometheus.MustRegister(
			calculationsTotal,
			calculationLatency,
			nisabLookups,
			donationsTotal,
			donationsAmount,
			doaActions,
			httpRequests,
			httpLatency,
			rateLimitedHits,
		)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveCalculation records a calculation result and its duration.
func ObserveCalculation(kind, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if calculationsTotal != nil {
		calculationsTotal.WithLabelValues(kind, result).Inc()
	}
	if calculationLatency != nil {
		calculationLatency.WithLabelValues(kind).Observe(duration.Seconds())
	}
}

func IncNisabLookup(source string) {
	if nisabLookups != nil {
		nisabLookups.WithLabelValues(source).Inc()
	}
}

// AddDonation counts a recorded payment. amount is in whole currency units.
func AddDonation(kind string, amount float64) {
	if donationsTotal != nil {
		donationsTotal.WithLabelValues(kind).Inc()
	}
	if donationsAmount != nil && amount > 0 {
		donationsAmount.WithLabelValues(kind).Add(amount)
	}
}

func IncDoaAction(action string) {
	if doaActions != nil {
		doaActions.WithLabelValues(action).Inc()
	}
}

func ObserveHTTP(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

func IncRateLimited() {
	if rateLimitedHits != nil {
		rateLimitedHits.Inc()
	}
}
