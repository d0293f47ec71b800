package bot

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Khurshid0109/Dicebear/internal/bot/handlers"
	"github.com/Khurshid0109/Dicebear/internal/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type handlerFunc func(ctx context.Context, msg handlers.InboundMessage) handlers.Outcome

func (f handlerFunc) Dispatch(ctx context.Context, msg handlers.InboundMessage) handlers.Outcome {
	return f(ctx, msg)
}

func TestServeDispatchesEveryUpdate(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := map[int64]bool{}
	done := make(chan struct{}, 10)
	h := handlerFunc(func(_ context.Context, msg handlers.InboundMessage) handlers.Outcome {
		mu.Lock()
		seen[msg.UpdateID] = true
		mu.Unlock()
		done <- struct{}{}
		return handlers.OutcomeSent
	})

	updates := make(chan handlers.InboundMessage)
	ctx, cancel := context.WithCancel(t.Context())
	errc := make(chan error, 1)
	go func() { errc <- NewEventLoop(h, logger.Discard(), 4).Serve(ctx, updates) }()

	for i := range int64(10) {
		updates <- handlers.InboundMessage{UpdateID: i, ChatID: i, Text: "/bottts Ali"}
	}
	for range 10 {
		<-done
	}
	cancel()

	if err := <-errc; err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if len(seen) != 10 {
		t.Errorf("dispatched %d updates, want 10", len(seen))
	}
}

func TestServeBoundsConcurrency(t *testing.T) {
	t.Parallel()

	const workers = 2
	var running, peak atomic.Int32
	release := make(chan struct{})
	h := handlerFunc(func(context.Context, handlers.InboundMessage) handlers.Outcome {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		running.Add(-1)
		return handlers.OutcomeSent
	})

	updates := make(chan handlers.InboundMessage, 6)
	for i := range int64(6) {
		updates <- handlers.InboundMessage{UpdateID: i}
	}
	close(updates)

	errc := make(chan error, 1)
	go func() { errc <- NewEventLoop(h, logger.Discard(), workers).Serve(t.Context(), updates) }()

	time.Sleep(50 * time.Millisecond)
	close(release)

	if err := <-errc; err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if got := peak.Load(); got > workers {
		t.Errorf("peak concurrency = %d, want <= %d", got, workers)
	}
}

func TestServeWaitsForInFlightOnCancel(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	var finished atomic.Bool
	h := handlerFunc(func(ctx context.Context, _ handlers.InboundMessage) handlers.Outcome {
		close(started)
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		finished.Store(true)
		return handlers.OutcomeCanceled
	})

	updates := make(chan handlers.InboundMessage, 1)
	updates <- handlers.InboundMessage{UpdateID: 1}
	ctx, cancel := context.WithCancel(t.Context())
	errc := make(chan error, 1)
	go func() { errc <- NewEventLoop(h, logger.Discard(), 1).Serve(ctx, updates) }()

	<-started
	cancel()
	if err := <-errc; err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if !finished.Load() {
		t.Error("Serve() returned before the in-flight handler finished")
	}
}

func TestServeSurvivesPanickingHandler(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	var handled atomic.Int32
	h := handlerFunc(func(_ context.Context, msg handlers.InboundMessage) handlers.Outcome {
		if msg.UpdateID == 1 {
			panic("boom")
		}
		handled.Add(1)
		return handlers.OutcomeSent
	})

	updates := make(chan handlers.InboundMessage, 3)
	updates <- handlers.InboundMessage{UpdateID: 1}
	updates <- handlers.InboundMessage{UpdateID: 2}
	updates <- handlers.InboundMessage{UpdateID: 3}
	close(updates)

	if err := NewEventLoop(h, logger.New(&buf, "debug", false), 1).Serve(t.Context(), updates); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if got := handled.Load(); got != 2 {
		t.Errorf("handled = %d, want 2", got)
	}
	if !bytes.Contains([]byte(buf.String()), []byte("Update handler panicked")) {
		t.Errorf("panic not logged:\n%s", buf.String())
	}
}

func TestSinkErrorsLogsAndStops(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	loop := NewEventLoop(handlerFunc(nil), logger.New(&buf, "debug", false), 1)

	errs := make(chan error)
	ctx, cancel := context.WithCancel(t.Context())
	stopped := make(chan struct{})
	go func() {
		loop.SinkErrors(ctx, errs)
		close(stopped)
	}()

	errs <- errors.New("connection refused")
	errs <- errors.New("bad gateway")
	cancel()
	<-stopped

	out := buf.String()
	for _, want := range []string{"connection refused", "bad gateway", "Telegram polling failed"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSinkErrorsDrainsBufferedOnCancel(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	loop := NewEventLoop(handlerFunc(nil), logger.New(&buf, "debug", false), 1)

	errs := make(chan error, 3)
	errs <- errors.New("timeout one")
	errs <- errors.New("timeout two")
	errs <- errors.New("timeout three")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	loop.SinkErrors(ctx, errs)

	if n := len(errs); n != 0 {
		t.Errorf("%d errors left in the channel", n)
	}
	out := buf.String()
	for _, want := range []string{"timeout one", "timeout two", "timeout three"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSinkErrorsClosedChannel(t *testing.T) {
	t.Parallel()

	errs := make(chan error)
	close(errs)
	NewEventLoop(handlerFunc(nil), logger.Discard(), 1).SinkErrors(t.Context(), errs)
}
