package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeDenied  = "denied"
	OutcomeStale   = "stale"
)

// Metrics holds all Prometheus metrics for the gateway.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	OTPRequests          *prometheus.CounterVec
	OTPVerifications     *prometheus.CounterVec
	DonationSubmissions  *prometheus.CounterVec
	DonationSessions     prometheus.Counter
	HTTPRequestDuration  *prometheus.HistogramVec
	AdminLogins          *prometheus.CounterVec
	UpstreamCallDuration *prometheus.HistogramVec
	RateLimitRejections  *prometheus.CounterVec
	RateLimitDegraded    prometheus.Gauge
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mealshare_otp_requests_total",
			Help: "OTP issuance requests forwarded to the API, by outcome",
		}, []string{"outcome"}),
		OTPVerifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mealshare_otp_verifications_total",
			Help: "OTP verification attempts, by outcome",
		}, []string{"outcome"}),
		DonationSubmissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mealshare_donation_submissions_total",
			Help: "Donation submissions forwarded to the API, by outcome",
		}, []string{"outcome"}),
		DonationSessions: f.NewCounter(prometheus.CounterOpts{
			Name: "mealshare_donation_sessions_created_total",
			Help: "Donation form sessions created",
		}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mealshare_http_request_duration_seconds",
			Help:    "Latency of gateway HTTP requests, by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		AdminLogins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mealshare_admin_logins_total",
			Help: "Admin passkey logins, by outcome",
		}, []string{"outcome"}),
		UpstreamCallDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mealshare_upstream_call_duration_seconds",
			Help:    "Latency of calls to the content/donor API, by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		RateLimitRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mealshare_ratelimit_rejections_total",
			Help: "Requests rejected by the per-client rate limiter, by class",
		}, []string{"class"}),
		RateLimitDegraded: f.NewGauge(prometheus.GaugeOpts{
			Name: "mealshare_ratelimit_degraded",
			Help: "1 while the rate limiter runs on its in-memory fallback",
		}),
	}
}

func (m *Metrics) IncrementOTPRequests(outcome string) {
	if m == nil {
		return
	}
	m.OTPRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementOTPVerifications(outcome string) {
	if m == nil {
		return
	}
	m.OTPVerifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementSubmissions(outcome string) {
	if m == nil {
		return
	}
	m.DonationSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementSessionsCreated() {
	if m == nil {
		return
	}
	m.DonationSessions.Inc()
}

func (m *Metrics) IncrementAdminLogins(outcome string) {
	if m == nil {
		return
	}
	m.AdminLogins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRequestDuration(route string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(route).Observe(seconds)
}

func (m *Metrics) ObserveUpstreamCall(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamCallDuration.WithLabelValues(operation).Observe(seconds)
}

func (m *Metrics) IncrementRateLimitRejections(class string) {
	if m == nil {
		return
	}
	m.RateLimitRejections.WithLabelValues(class).Inc()
}

func (m *Metrics) SetRateLimitDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.RateLimitDegraded.Set(1)
		return
	}
	m.RateLimitDegraded.Set(0)
}
