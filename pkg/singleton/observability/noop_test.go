package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordLookup(ctx, "shared", "int", true)
		m.RecordInit(ctx, "shared", "int", time.Millisecond, nil)
		m.RecordInit(ctx, "shared", "int", time.Millisecond, errors.New("test"))
		m.RecordDiscard(ctx, "shared", "int")
	})

	t.Run("empty arguments", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordLookup(ctx, "", "", false)
			m.RecordInit(ctx, "", "", 0, nil)
			m.RecordDiscard(ctx, "", "")
		})
	})
}

type testKey struct{}

func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), testKey{}, "v")
		newCtx, span := m.StartInitSpan(ctx, "shared", "s", "int")
		assert.Equal(t, ctx, newCtx)
		assert.NotNil(t, span)
		assert.False(t, span.IsRecording())
	})

	t.Run("end and events do not panic", func(t *testing.T) {
		_, span := m.StartInitSpan(context.Background(), "shared", "s", "int")
		assert.NotPanics(t, func() {
			m.AddSpanEvent(context.Background(), "evt", attribute.Int("n", 1))
			m.EndSpanWithError(span, errors.New("x"))
			m.EndSpanWithError(nil, nil)
		})
	})
}
