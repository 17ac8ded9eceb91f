package application

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics records command throughput and latency for the engine.
type Metrics struct {
	commands      *prom.CounterVec
	applyDuration prom.Histogram
}

// NewMetrics constructs and registers the engine metrics.
func NewMetrics(reg prom.Registerer) *Metrics {
	m := &Metrics{
		commands: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "parish",
			Name:      "commands_total",
			Help:      "Commands applied by kind and outcome",
		}, []string{"command", "outcome"}),
		applyDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "parish",
			Name:      "command_apply_duration_seconds",
			Help:      "Time spent applying and persisting one command",
			Buckets:   prom.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.commands, m.applyDuration)
	}
	return m
}

func (m *Metrics) observe(kind Kind, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "applied"
	if err != nil {
		outcome = ErrorKind(err)
	}
	m.commands.WithLabelValues(string(kind), outcome).Inc()
	m.applyDuration.Observe(elapsed.Seconds())
}
