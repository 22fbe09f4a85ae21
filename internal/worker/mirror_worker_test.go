package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivelog/internal/amqp"
	"drivelog/internal/core"
	"drivelog/internal/sheets/memory"
)

type failingWriter struct{}

func (failingWriter) Persist(context.Context, core.Table) error { return errors.New("quota exceeded") }

type fakeConsumer struct {
	msgs []*amqp.RecordRegisteredMessage
}

func (c *fakeConsumer) ConsumeRecordRegistered(ctx context.Context, handler func(context.Context, *amqp.RecordRegisteredMessage) error) error {
	for _, m := range c.msgs {
		if err := handler(ctx, m); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func seeded(n int) *memory.Store {
	recs := make([]core.DailyRecord, n)
	for i := range recs {
		recs[i] = core.DayOff(core.NewDate(2024, 1, i+1))
	}
	return memory.New(recs...)
}

func TestMirrorCopiesWholeTable(t *testing.T) {
	ctx := context.Background()
	src, dst := seeded(3), memory.New(core.DayOff(core.NewDate(2020, 1, 1)))
	w := NewMirrorWorker(src, dst)

	require.NoError(t, w.Mirror(ctx))
	got, _ := dst.Load(ctx)
	want, _ := src.Load(ctx)
	assert.Equal(t, want, got)

	n, at := w.Status()
	assert.Equal(t, 3, n)
	assert.False(t, at.IsZero())
}

func TestMirrorPropagatesTargetError(t *testing.T) {
	w := NewMirrorWorker(seeded(1), failingWriter{})
	err := w.Mirror(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestHandleRecordRegisteredSkipsCoveredEvents(t *testing.T) {
	ctx := context.Background()
	src, dst := seeded(2), memory.New()
	w := NewMirrorWorker(src, dst)

	require.NoError(t, w.HandleRecordRegistered(ctx, &amqp.RecordRegisteredMessage{Date: "2024-01-02", TableSize: 2}))
	assert.Equal(t, 1, dst.Persists())

	require.NoError(t, w.HandleRecordRegistered(ctx, &amqp.RecordRegisteredMessage{Date: "2024-01-02", TableSize: 2}))
	assert.Equal(t, 1, dst.Persists(), "event already covered")

	require.NoError(t, w.HandleRecordRegistered(ctx, &amqp.RecordRegisteredMessage{Date: "2024-01-03", TableSize: 3}))
	assert.Equal(t, 2, dst.Persists())
}

func TestRunStopsOnCancel(t *testing.T) {
	src, dst := seeded(1), memory.New()
	w := NewMirrorWorker(src, dst)
	consumer := &fakeConsumer{msgs: []*amqp.RecordRegisteredMessage{{Date: "2024-01-05", TableSize: 5}}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, consumer, 10*time.Millisecond) }()

	require.Eventually(t, func() bool { return dst.Persists() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
