package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	serrors "github.com/randalmurphal/singleton/pkg/singleton/errors"
)

// Instruments bundles the logger, metrics recorder, and span manager of one
// store. The zero value is usable and records nothing.
type Instruments struct {
	Kind    string
	StoreID string
	Logger  *slog.Logger
	Metrics MetricsRecorder
	Spans   SpanManager
}

// NewInstruments returns no-op instruments for a store.
func NewInstruments(kind, storeID string) Instruments {
	return Instruments{
		Kind:    kind,
		StoreID: storeID,
		Metrics: NoopMetrics{},
		Spans:   NoopSpanManager{},
	}
}

// Bind enriches the logger with the store's kind and id. Call it once after
// options have been applied.
func (in *Instruments) Bind() {
	in.Logger = EnrichLogger(in.Logger, in.Kind, in.StoreID)
	if in.Metrics == nil {
		in.Metrics = NoopMetrics{}
	}
	if in.Spans == nil {
		in.Spans = NoopSpanManager{}
	}
}

// MetricsEnabled reports whether lookups are worth recording. Stores check
// it before computing a type name on the read fast path.
func (in *Instruments) MetricsEnabled() bool {
	if in.Metrics == nil {
		return false
	}
	_, noop := in.Metrics.(NoopMetrics)
	return !noop
}

// Lookup records one lookup.
func (in *Instruments) Lookup(typeName string, hit bool) {
	in.Metrics.RecordLookup(context.Background(), in.Kind, typeName, hit)
}

// InitRun tracks one initializer run from span start to outcome.
// Exactly one of the terminal methods (Failed, Aborted, Reentrant,
// Committed, Discarded) must be called.
type InitRun struct {
	in       *Instruments
	ctx      context.Context
	span     trace.Span
	typeName string
	elapsed  func() time.Duration
}

// StartInit opens a span for initializing typeName.
func (in *Instruments) StartInit(typeName string) *InitRun {
	ctx, span := in.Spans.StartInitSpan(context.Background(), in.Kind, in.StoreID, typeName)
	return &InitRun{
		in:       in,
		ctx:      ctx,
		span:     span,
		typeName: typeName,
		elapsed:  TimedOperation(),
	}
}

// returned records an initializer that returned, with or without error.
func (r *InitRun) returned(err error) {
	d := r.elapsed()
	r.in.Metrics.RecordInit(r.ctx, r.in.Kind, r.typeName, d, err)
	if err != nil {
		LogInitError(r.in.Logger, r.typeName, err)
		return
	}
	LogInitComplete(r.in.Logger, r.typeName, Milliseconds(d))
}

// Failed ends the run after the initializer returned err.
func (r *InitRun) Failed(err error) {
	r.in.Spans.EndSpanWithError(r.span, err)
}

// Aborted ends the run after the initializer panicked or exited its goroutine.
func (r *InitRun) Aborted() {
	r.in.Metrics.RecordInit(r.ctx, r.in.Kind, r.typeName, r.elapsed(), serrors.ErrInitAborted)
	LogInitAborted(r.in.Logger, r.typeName)
	r.in.Spans.EndSpanWithError(r.span, serrors.ErrInitAborted)
}

// Reentrant ends the run after detecting reentrant construction.
func (r *InitRun) Reentrant(err error) {
	LogReentrant(r.in.Logger, r.typeName)
	r.in.Spans.EndSpanWithError(r.span, err)
}

// Committed ends the run after the value was stored.
func (r *InitRun) Committed() {
	r.in.Spans.EndSpanWithError(r.span, nil)
}

// Discarded ends the run after the value lost the insertion race.
func (r *InitRun) Discarded() {
	r.in.Metrics.RecordDiscard(r.ctx, r.in.Kind, r.typeName)
	r.in.Spans.AddSpanEvent(r.ctx, "singleton.discarded")
	LogInitDiscarded(r.in.Logger, r.typeName)
	r.in.Spans.EndSpanWithError(r.span, nil)
}

// CallInit runs init under r. If init panics, the run is marked aborted and
// the panic continues to the caller with its original value and stack.
func CallInit[T any](r *InitRun, init func() (T, error)) (T, error) {
	returned := false
	defer func() {
		if !returned {
			r.Aborted()
		}
	}()
	v, err := init()
	returned = true
	r.returned(err)
	return v, err
}
