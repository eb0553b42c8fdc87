package intake

import (
	"github.com/langpal/langpal-api/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

type submissionMetrics struct {
	submissions *prometheus.CounterVec
}

func newSubmissionMetrics(reg prometheus.Registerer) *submissionMetrics {
	m := &submissionMetrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "langpal_submissions_total",
				Help: "Form submissions by category and result.",
			},
			[]string{"category", "result"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.submissions)
	}
	return m
}

func (m *submissionMetrics) observe(category models.Category, err error) {
	result := "stored"
	if err != nil {
		result = "failed"
	}
	m.submissions.WithLabelValues(string(category), result).Inc()
}
