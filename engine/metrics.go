package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rushteam/artrec/pipeline"
)

// Metrics 是推荐引擎的 Prometheus 指标。
//
//	artrec_track_events_total{action, outcome}     行为上报
//	artrec_recommend_requests_total{path, outcome} 推荐请求（path: cache / personalized / fallback）
//	artrec_cache_write_failures_total              缓存写入失败（已吞掉）
//	artrec_node_duration_seconds{node}             Pipeline 各 Node 耗时
type Metrics struct {
	TrackEvents        *prometheus.CounterVec
	RecommendRequests  *prometheus.CounterVec
	CacheWriteFailures prometheus.Counter
	NodeDuration       *prometheus.HistogramVec
}

// NewMetrics 在 reg 上注册指标；reg 为 nil 时不注册（仅内存计数）。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TrackEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artrec_track_events_total",
				Help: "Total number of tracked behavior events",
			},
			[]string{"action", "outcome"},
		),
		RecommendRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artrec_recommend_requests_total",
				Help: "Total number of recommendation requests",
			},
			[]string{"path", "outcome"},
		),
		CacheWriteFailures: f.NewCounter(
			prometheus.CounterOpts{
				Name: "artrec_cache_write_failures_total",
				Help: "Total number of swallowed recommendation cache write failures",
			},
		),
		NodeDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "artrec_node_duration_seconds",
				Help:    "Duration of pipeline nodes in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"node"},
		),
	}
}

// Hook 返回记录 Node 耗时的 pipeline.Hook。
func (m *Metrics) Hook() pipeline.Hook {
	return func(node pipeline.Node, _, _ int, elapsed time.Duration, _ error) {
		m.NodeDuration.WithLabelValues(node.Name()).Observe(elapsed.Seconds())
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
