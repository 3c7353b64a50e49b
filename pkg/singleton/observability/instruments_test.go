package observability

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"

	serrors "github.com/randalmurphal/singleton/pkg/singleton/errors"
)

type initCall struct {
	typeName string
	err      error
}

type fakeMetrics struct {
	mu       sync.Mutex
	lookups  []bool
	inits    []initCall
	discards []string
}

func (m *fakeMetrics) RecordLookup(_ context.Context, _, _ string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups = append(m.lookups, hit)
}

func (m *fakeMetrics) RecordInit(_ context.Context, _, typeName string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inits = append(m.inits, initCall{typeName: typeName, err: err})
}

func (m *fakeMetrics) RecordDiscard(_ context.Context, _, typeName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discards = append(m.discards, typeName)
}

func newTestInstruments(t *testing.T) (Instruments, *fakeMetrics, *testHandler) {
	t.Helper()
	h := newTestHandler()
	m := &fakeMetrics{}
	in := NewInstruments("shared", "store-1")
	in.Logger = slog.New(h)
	in.Metrics = m
	in.Spans = NewSpanManager()
	in.Bind()
	return in, m, h
}

func TestInstrumentsZeroValue(t *testing.T) {
	var in Instruments
	in.Bind()

	assert.False(t, in.MetricsEnabled())
	assert.Nil(t, in.Logger)

	run := in.StartInit("int")
	v, err := CallInit(run, func() (int, error) { return 4, nil })
	require.NoError(t, err)
	run.Committed()
	assert.Equal(t, 4, v)
}

func TestInstrumentsMetricsEnabled(t *testing.T) {
	in := NewInstruments("shared", "s")
	assert.False(t, in.MetricsEnabled())

	in.Metrics = &fakeMetrics{}
	assert.True(t, in.MetricsEnabled())
}

func TestInstrumentsBindEnrichesLogger(t *testing.T) {
	in, _, h := newTestInstruments(t)

	in.Logger.Info("probe")
	rec := h.getLastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, "shared", rec["store_kind"])
	assert.Equal(t, "store-1", rec["store_id"])
}

func TestInstrumentsLookup(t *testing.T) {
	in, m, _ := newTestInstruments(t)

	in.Lookup("int", false)
	in.Lookup("int", true)

	assert.Equal(t, []bool{false, true}, m.lookups)
}

func TestCallInitCommitted(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	in, m, h := newTestInstruments(t)
	run := in.StartInit("main.Pool")
	v, err := CallInit(run, func() (string, error) { return "ready", nil })
	require.NoError(t, err)
	run.Committed()

	assert.Equal(t, "ready", v)
	require.Len(t, m.inits, 1)
	assert.NoError(t, m.inits[0].err)
	assert.Equal(t, "singleton initialized", h.getLastRecord()["msg"])

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
}

func TestCallInitFailed(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	in, m, h := newTestInstruments(t)
	errDial := errors.New("dial failed")

	run := in.StartInit("main.Pool")
	_, err := CallInit(run, func() (string, error) { return "", errDial })
	require.ErrorIs(t, err, errDial)
	run.Failed(err)

	require.Len(t, m.inits, 1)
	assert.ErrorIs(t, m.inits[0].err, errDial)

	rec := h.getLastRecord()
	assert.Equal(t, "singleton init failed", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "dial failed", spans[0].Status.Description)
}

func TestCallInitPanicAborts(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	in, m, h := newTestInstruments(t)
	run := in.StartInit("main.Pool")

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = CallInit(run, func() (int, error) { panic("boom") })
	})

	require.Len(t, m.inits, 1)
	assert.ErrorIs(t, m.inits[0].err, serrors.ErrInitAborted)
	assert.Equal(t, "singleton init aborted", h.getLastRecord()["msg"])

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestInitRunDiscarded(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	in, m, h := newTestInstruments(t)
	run := in.StartInit("main.Pool")
	_, err := CallInit(run, func() (int, error) { return 1, nil })
	require.NoError(t, err)
	run.Discarded()

	assert.Equal(t, []string{"main.Pool"}, m.discards)
	assert.Contains(t, h.getLastRecord()["msg"], "discarded")

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "singleton.discarded", spans[0].Events[0].Name)
}

func TestInitRunReentrant(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	in, _, h := newTestInstruments(t)
	run := in.StartInit("main.Pool")
	run.Reentrant(&serrors.ReentrantInitError{Type: "main.Pool", Store: in.StoreID})

	rec := h.getLastRecord()
	assert.Equal(t, "singleton reentrant init", rec["msg"])
	assert.Equal(t, "ERROR", rec["level"])

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}
