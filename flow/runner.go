package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/flowgraph-go/flowgraph/flow/emit"
)

// Runner is the concurrent DAG scheduler: it maintains a pending set, a
// table of in-flight steps, one join tracker per converging step, and an
// append-only result log, looping until both pending and running are
// empty.
type Runner struct {
	flow *Flow
	cfg  *runnerConfig
}

// NewRunner builds a Runner bound to flow.
func NewRunner(f *Flow, opts ...Option) *Runner {
	cfg := defaultRunnerConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Runner{flow: f, cfg: cfg}
}

// stepCompletion is what a launched step goroutine reports back to the
// driver loop — the only way step tasks communicate with driver state,
// per the design note that only the driver mutates pending/running/trackers.
type stepCompletion struct {
	stepID   string
	result   StepRunResult
	duration time.Duration
}

// Run executes the flow starting from triggerStepID, which must already be
// present in state with whatever inputs the embedder injected — the runner
// never synthesizes trigger outputs. It returns a channel of Events; the
// caller should drain it until it closes, which happens exactly once
// FlowCompleted has been sent.
//
// The channel is bounded (capacity 256): a slow consumer applies
// backpressure to the driver loop rather than letting events pile up
// unbounded in memory.
func (r *Runner) Run(ctx context.Context, triggerStepID string, state *State) <-chan Event {
	events := make(chan Event, 256)
	go r.drive(ctx, triggerStepID, state, events)
	return events
}

func (r *Runner) drive(ctx context.Context, triggerStepID string, state *State, events chan<- Event) {
	defer close(events)

	runID := uuidString()
	if state == nil {
		state = NewState()
	}

	pending := map[string]struct{}{triggerStepID: {}}
	running := map[string]struct{}{}
	joinTrackers := map[string]*JoinTracker{}
	var results []StepRunResult

	done := make(chan stepCompletion)

	// On cancellation the loop exits with steps still in flight; their
	// completion sends must not block forever.
	defer func() {
		if n := len(running); n > 0 {
			go func() {
				for i := 0; i < n; i++ {
					<-done
				}
			}()
		}
	}()

	seq := 0
	send := func(ev Event) {
		ev.RunID = runID
		ev.Timestamp = time.Now().UTC()
		events <- ev
		r.cfg.emitter.Emit(toEmitEvent(ev, seq))
		seq++
	}

	send(Event{Kind: EventFlowStarted, FlowName: r.flow.Name})

	for len(pending) > 0 || len(running) > 0 {
		if ctx.Err() != nil {
			break
		}

		var launchable []string
		for stepID := range pending {
			step, ok := r.flow.GetStep(stepID)
			if !ok {
				delete(pending, stepID)
				continue
			}
			incoming := r.flow.EdgesTo(stepID)
			if len(incoming) > 0 && step.JoinMode() != JoinNoWait {
				tracker := joinTrackerFor(joinTrackers, stepID)
				if !tracker.Ready(step.JoinMode(), incomingSources(incoming)) {
					r.cfg.metrics.recordJoinWait(step.JoinMode())
					continue
				}
			}
			launchable = append(launchable, stepID)
		}

		for _, stepID := range launchable {
			delete(pending, stepID)
			step, _ := r.flow.GetStep(stepID)

			send(Event{Kind: EventStepStarted, StepID: stepID, StepType: step.Kind()})

			resolved, err := ResolveConfig(step.Config(), state)
			if err != nil {
				result := StepRunResult{
					StepID: stepID,
					Status: StepError,
					Error: &StepErrorDetail{
						Message: fmt.Sprintf("config resolution failed: %v", err),
						Code:    ErrCodeConfigResolve,
					},
				}
				results = append(results, result)
				r.cfg.metrics.observeStep(step.Kind(), result.Status, 0)
				send(Event{
					Kind:       EventStepCompleted,
					StepID:     stepID,
					StepType:   step.Kind(),
					Result:     result,
					DurationMS: 0,
					StateSnapshot: state.Snapshot(),
				})
				continue
			}

			start := time.Now()
			running[stepID] = struct{}{}
			r.cfg.metrics.setActiveSteps(len(running))

			go func(step Step, cfg Config, start time.Time) {
				result := runStep(ctx, step, state, cfg)
				done <- stepCompletion{
					stepID:   step.ID(),
					result:   result,
					duration: time.Since(start),
				}
			}(step, resolved, start)
		}

		r.cfg.metrics.setQueueDepth(len(pending))

		// Quiescent: nothing in flight, and anything still pending is
		// blocked on a join that can no longer be satisfied.
		if len(running) == 0 {
			break
		}

		completions := []stepCompletion{<-done}
		drain := true
		for drain {
			select {
			case c := <-done:
				completions = append(completions, c)
			default:
				drain = false
			}
		}

		for _, completion := range completions {
			delete(running, completion.stepID)
			results = append(results, completion.result)
			step, _ := r.flow.GetStep(completion.stepID)
			durationMS := float64(completion.duration) / float64(time.Millisecond)
			r.cfg.metrics.observeStep(step.Kind(), completion.result.Status, durationMS)

			send(Event{
				Kind:          EventStepCompleted,
				StepID:        completion.stepID,
				StepType:      step.Kind(),
				Result:        completion.result,
				DurationMS:    durationMS,
				StateSnapshot: state.Snapshot(),
			})

			if completion.result.ContinueWithoutWaiting {
				continue
			}

			for _, port := range completion.result.FiredPorts {
				for _, edge := range r.flow.EdgesFrom(completion.stepID, port) {
					tracker := joinTrackerFor(joinTrackers, edge.ToStepID)
					tracker.Record(completion.result, completion.stepID)
					pending[edge.ToStepID] = struct{}{}
				}
			}
		}
		r.cfg.metrics.setActiveSteps(len(running))
	}

	status := FlowSucceeded
	for _, result := range results {
		if result.Status != StepSuccess {
			status = FlowFailed
			break
		}
	}

	send(Event{Kind: EventFlowCompleted, FlowName: r.flow.Name, RunStatus: status})
}

// runStep invokes step.Run, converting a panic escaping it into an
// EXECUTION_ERROR result so a broken step body cannot kill the driver.
func runStep(ctx context.Context, step Step, state *State, cfg Config) (result StepRunResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = FailureResult(step.ID(), step.Ports(),
				fmt.Sprintf("step execution failed: %v", rec),
				ErrCodeExecutionError,
				map[string]any{"exception_type": fmt.Sprintf("%T", rec)})
		}
	}()
	return step.Run(ctx, state, cfg)
}

func joinTrackerFor(trackers map[string]*JoinTracker, stepID string) *JoinTracker {
	t, ok := trackers[stepID]
	if !ok {
		t = NewJoinTracker()
		trackers[stepID] = t
	}
	return t
}

func incomingSources(edges []Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.FromStepID
	}
	return out
}

func toEmitEvent(ev Event, seq int) emit.Event {
	meta := map[string]interface{}{}
	switch ev.Kind {
	case EventFlowStarted:
		meta["flow_name"] = ev.FlowName
	case EventStepStarted:
		meta["step_type"] = string(ev.StepType)
	case EventStepCompleted:
		meta["step_type"] = string(ev.StepType)
		meta["status"] = string(ev.Result.Status)
		meta["duration_ms"] = ev.DurationMS
		meta["fired_ports"] = ev.Result.FiredPorts
		if ev.Result.Error != nil {
			meta["error_code"] = ev.Result.Error.Code
			meta["error_message"] = ev.Result.Error.Message
		}
	case EventFlowCompleted:
		meta["flow_name"] = ev.FlowName
		meta["flow_status"] = string(ev.RunStatus)
	}

	return emit.Event{
		RunID:   ev.RunID,
		StepSeq: seq,
		NodeID:  ev.StepID,
		Msg:     string(ev.Kind),
		Meta:    meta,
	}
}
