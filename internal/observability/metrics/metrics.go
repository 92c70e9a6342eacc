package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the consultation intake and
// notification flows.
type IntakeMetrics struct {
	submissionsTotal *prometheus.CounterVec
	emailsTotal      *prometheus.CounterVec
	intakeLatency    *prometheus.HistogramVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total consultation form submissions",
		}, []string{"status"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total notification email attempts",
		}, []string{"provider", "status"}),
		intakeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crm",
			Subsystem: "intake",
			Name:      "latency_seconds",
			Help:      "Latency of submission intake handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.emailsTotal, m.intakeLatency)
	return m
}

func (m *IntakeMetrics) ObserveSubmission(status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status).Inc()
}

func (m *IntakeMetrics) ObserveEmail(provider, status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(provider, status).Inc()
}

func (m *IntakeMetrics) ObserveIntakeLatency(status string, seconds float64) {
	if m == nil {
		return
	}
	m.intakeLatency.WithLabelValues(status).Observe(seconds)
}
