// Package sqltrace logs the statements the store adapters run against the
// format cache tables
package sqltrace

import (
	"context"
	"strings"
	"time"

	"datefmt/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is one finished statement
type QueryEvent struct {
	Backend   string
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer is told about every statement an Emitter times
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

type logTracer struct{ log logger.Logger }

// Tracer logs statements for backend at info, or warn when slow. SQL logging
// is opted into per backend, so the root level does not filter it
func Tracer(root logger.Logger, backend string) QueryTracer {
	return logTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", backend).Logger()}
}

func (t logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	lvl := zerolog.InfoLevel
	if ev.Slow {
		lvl = zerolog.WarnLevel
	}
	t.log.WithLevel(lvl).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg(ev.Backend + " query")
}

// Emitter times statements for one backend. SlowMs < 0 never marks a
// statement slow; a nil Tracer drops every event
type Emitter struct {
	Backend string
	Tracer  QueryTracer
	SlowMs  int
}

// Emit reports a statement that began at start and ended with err
func (e Emitter) Emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if e.Tracer == nil {
		return
	}
	took := time.Since(start)
	e.Tracer.OnQuery(ctx, QueryEvent{
		Backend:   e.Backend,
		SQL:       sql,
		Args:      args,
		ElapsedUS: took.Microseconds(),
		Err:       err,
		Slow:      e.SlowMs >= 0 && took >= time.Duration(e.SlowMs)*time.Millisecond,
	})
}

// compact folds each run of blanks, tabs and newlines into one space
func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	blank := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			if !blank {
				b.WriteByte(' ')
			}
			blank = true
		default:
			b.WriteRune(r)
			blank = false
		}
	}
	return b.String()
}
