package metrics

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/portfolio/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	OTPIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "otp_issued_total",
		Help:      "OTP issuance requests, by outcome.",
	}, []string{"outcome"})

	OTPVerifiedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "otp_verified_total",
		Help:      "OTP verification attempts, by outcome.",
	}, []string{"outcome"})

	GateDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "gate_decisions_total",
		Help:      "Access gate decisions, by classification and decision.",
	}, []string{"class", "decision"})

	// Email metrics

	EmailDeliveriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "email_deliveries_total",
		Help:      "Out-of-band email deliveries, by kind and outcome.",
	}, []string{"kind", "outcome"})

	EmailQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "portfolio",
		Name:      "email_queue_depth",
		Help:      "Messages waiting in the delivery queue.",
	})

	// Housekeeping

	ChallengesPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "otp_challenges_purged_total",
		Help:      "Consumed or expired OTP challenges removed by the housekeeper.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portfolio",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		OTPIssuedTotal,
		OTPVerifiedTotal,
		GateDecisionsTotal,
		EmailDeliveriesTotal,
		EmailQueueDepth,
		ChallengesPurgedTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer exposes /metrics plus liveness and readiness probes on a separate port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/livez", probe(checker.Liveness))
	mux.HandleFunc("/readyz", probe(checker.Readiness))
	return &http.Server{Addr: addr, Handler: mux}
}

func probe(check func(context.Context) health.HealthResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := check(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(result)
	}
}
