package emit

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// LogEmitter writes structured, leveled log lines for every event via
// zerolog rather than hand-formatted text or JSON. StepCompleted events
// with an error status log at warn level; everything else logs at info.
type LogEmitter struct {
	logger zerolog.Logger
}

// NewLogEmitter builds a LogEmitter writing to w. Pass io.Discard in tests
// that don't care about log output.
func NewLogEmitter(w io.Writer) *LogEmitter {
	if w == nil {
		w = io.Discard
	}
	return &LogEmitter{logger: zerolog.New(w).With().Timestamp().Logger()}
}

func (l *LogEmitter) Emit(event Event) {
	level := zerolog.InfoLevel
	if status, _ := event.Meta["status"].(string); status == "error" {
		level = zerolog.WarnLevel
	}

	ev := l.logger.WithLevel(level).
		Str("run_id", event.RunID).
		Str("msg_kind", event.Msg)
	if event.NodeID != "" {
		ev = ev.Str("step_id", event.NodeID)
	}
	for k, v := range event.Meta {
		ev = ev.Interface(k, v)
	}
	ev.Send()
}

func (l *LogEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, e := range events {
		l.Emit(e)
	}
	return nil
}

func (l *LogEmitter) Flush(context.Context) error {
	return nil
}
