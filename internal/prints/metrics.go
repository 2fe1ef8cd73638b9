package prints

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 読み込み結果のラベル値。
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// Metrics は出版物詳細の読み込みに関するPrometheusメトリクス。
type Metrics struct {
	loads    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics はメトリクスを生成してregに登録する。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "libman",
			Subsystem: "print_detail",
			Name:      "loads_total",
			Help:      "Number of print detail loads by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "libman",
			Subsystem: "print_detail",
			Name:      "load_duration_seconds",
			Help:      "Time spent loading a print detail, including opening and closing the database.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.loads, m.duration)
	return m
}

func (m *Metrics) observe(start time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		m.loads.WithLabelValues(outcomeOK).Inc()
	case errors.Is(err, ErrPrintNotFound):
		m.loads.WithLabelValues(outcomeNotFound).Inc()
	default:
		m.loads.WithLabelValues(outcomeError).Inc()
	}
}
