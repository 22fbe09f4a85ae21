package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"drivelog/internal/amqp"
	"drivelog/internal/sheets"
)

// Consumer delivers record registered events.
type Consumer interface {
	ConsumeRecordRegistered(ctx context.Context, handler func(context.Context, *amqp.RecordRegisteredMessage) error) error
}

// MirrorWorker copies the journal from its primary store to a secondary one,
// typically a spreadsheet tab. The copy is always a full rewrite, so a missed
// event is repaired by the next one or by the periodic pass.
type MirrorWorker struct {
	source sheets.TableReader
	target sheets.TableWriter

	mu       sync.Mutex
	mirrored int
	lastRun  time.Time
}

func NewMirrorWorker(source sheets.TableReader, target sheets.TableWriter) *MirrorWorker {
	return &MirrorWorker{source: source, target: target}
}

// Mirror copies the current table to the target.
func (w *MirrorWorker) Mirror(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, err := w.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	if err := w.target.Persist(ctx, t); err != nil {
		return fmt.Errorf("persist mirror: %w", err)
	}
	w.mirrored = len(t)
	w.lastRun = time.Now()

	slog.InfoContext(ctx, "Journal mirrored", "records", len(t))
	return nil
}

// HandleRecordRegistered mirrors unless the event is already covered by an
// earlier pass.
func (w *MirrorWorker) HandleRecordRegistered(ctx context.Context, msg *amqp.RecordRegisteredMessage) error {
	w.mu.Lock()
	covered := msg.TableSize > 0 && msg.TableSize <= w.mirrored
	w.mu.Unlock()
	if covered {
		slog.DebugContext(ctx, "Record already mirrored", "date", msg.Date, "table_size", msg.TableSize)
		return nil
	}
	return w.Mirror(ctx)
}

// Status reports the size of the last mirrored table and when it was written.
func (w *MirrorWorker) Status() (int, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mirrored, w.lastRun
}

// Run mirrors once, then on every event from consumer (if any) and every
// interval until ctx is cancelled. Periodic failures are logged and retried on
// the next tick.
func (w *MirrorWorker) Run(ctx context.Context, consumer Consumer, interval time.Duration) error {
	if err := w.Mirror(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup mirror failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if consumer != nil {
		g.Go(func() error {
			return consumer.ConsumeRecordRegistered(ctx, w.HandleRecordRegistered)
		})
	}

	if interval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					if err := w.Mirror(ctx); err != nil {
						slog.ErrorContext(ctx, "Periodic mirror failed", "error", err)
					}
				}
			}
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
