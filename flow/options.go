package flow

import "github.com/flowgraph-go/flowgraph/flow/emit"

// runnerConfig collects everything an Option can set before NewRunner
// assembles the Runner.
type runnerConfig struct {
	emitter emit.Emitter
	metrics *Metrics
}

// Option configures a Runner at construction time.
type Option func(*runnerConfig)

// WithEmitter attaches an observability sink. The default is
// emit.NullEmitter{} — no overhead unless a caller opts in.
func WithEmitter(e emit.Emitter) Option {
	return func(c *runnerConfig) { c.emitter = e }
}

// WithMetrics attaches a Metrics collector. The default records into a
// private registry so callers who don't ask for metrics never touch the
// global Prometheus registry.
func WithMetrics(m *Metrics) Option {
	return func(c *runnerConfig) { c.metrics = m }
}

func defaultRunnerConfig() *runnerConfig {
	return &runnerConfig{
		emitter: emit.NullEmitter{},
		metrics: NewMetrics(nil),
	}
}
