package flow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes Prometheus instrumentation for the scheduler: queue
// depth, in-flight steps, step latency, and join-wait counts, namespaced
// "flowgraph_".
type Metrics struct {
	queueDepth   prometheus.Gauge
	activeSteps  prometheus.Gauge
	stepLatency  *prometheus.HistogramVec
	joinWaits    *prometheus.CounterVec
	stepsRun     *prometheus.CounterVec
}

// NewMetrics registers flowgraph's metrics with registry. Passing nil
// creates a private registry so Runners built without WithMetrics never
// touch the global Prometheus registerer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)
	if registry == nil {
		factory = promauto.With(prometheus.NewRegistry())
	}

	return &Metrics{
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "flowgraph_queue_depth",
			Help: "Number of steps pending in the current flow run, waiting to launch or blocked on a join.",
		}),
		activeSteps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "flowgraph_active_steps",
			Help: "Number of steps currently executing concurrently.",
		}),
		stepLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowgraph_step_latency_ms",
			Help:    "Step execution duration in milliseconds.",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		}, []string{"step_type", "status"}),
		joinWaits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowgraph_join_waits_total",
			Help: "Scheduler passes in which a pending step's join predicate was not yet satisfied.",
		}, []string{"join_mode"}),
		stepsRun: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowgraph_steps_total",
			Help: "Steps launched, labeled by step type and terminal status.",
		}, []string{"step_type", "status"}),
	}
}

func (m *Metrics) setQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

func (m *Metrics) setActiveSteps(n int) {
	if m == nil {
		return
	}
	m.activeSteps.Set(float64(n))
}

func (m *Metrics) observeStep(stepType StepKind, status StepRunStatus, durationMS float64) {
	if m == nil {
		return
	}
	m.stepLatency.WithLabelValues(string(stepType), string(status)).Observe(durationMS)
	m.stepsRun.WithLabelValues(string(stepType), string(status)).Inc()
}

func (m *Metrics) recordJoinWait(mode JoinMode) {
	if m == nil {
		return
	}
	m.joinWaits.WithLabelValues(string(mode)).Inc()
}
