package bot

import (
	"context"
	"testing"
	"time"

	"github.com/Khurshid0109/Dicebear/internal/bot/handlers"
	"github.com/Khurshid0109/Dicebear/internal/config"
	"github.com/Khurshid0109/Dicebear/internal/logger"
)

type fakeInbox struct {
	updates chan handlers.InboundMessage
	errs    chan error
}

func newFakeInbox() *fakeInbox {
	return &fakeInbox{updates: make(chan handlers.InboundMessage), errs: make(chan error)}
}

func (f *fakeInbox) Updates() <-chan handlers.InboundMessage { return f.updates }
func (f *fakeInbox) Errors() <-chan error                    { return f.errs }

type blockingListener struct{ started chan struct{} }

func (l blockingListener) Start(ctx context.Context) {
	close(l.started)
	<-ctx.Done()
}

type returningListener struct{}

func (returningListener) Start(context.Context) {}

func TestRunStopsCleanlyOnCancel(t *testing.T) {
	t.Parallel()

	inbox := newFakeInbox()
	got := make(chan handlers.InboundMessage, 1)
	loop := NewEventLoop(handlerFunc(func(_ context.Context, msg handlers.InboundMessage) handlers.Outcome {
		got <- msg
		return handlers.OutcomeSent
	}), logger.Discard(), 2)

	sched, err := NewScheduler(logger.Discard(), &config.SchedulerConfig{}, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}

	listener := blockingListener{started: make(chan struct{})}
	b := NewBot(logger.Discard(), listener, inbox, loop, sched)

	ctx, cancel := context.WithCancel(t.Context())
	errc := make(chan error, 1)
	go func() { errc <- b.Run(ctx) }()

	<-listener.started
	inbox.updates <- handlers.InboundMessage{UpdateID: 5, ChatID: 1, Text: "/bottts Ali"}
	if msg := <-got; msg.UpdateID != 5 {
		t.Errorf("dispatched update %d, want 5", msg.UpdateID)
	}
	inbox.errs <- context.DeadlineExceeded // a transport error must not stop the bot

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestRunFailsWhenListenerStopsUnexpectedly(t *testing.T) {
	t.Parallel()

	loop := NewEventLoop(handlerFunc(nil), logger.Discard(), 1)
	b := NewBot(logger.Discard(), returningListener{}, newFakeInbox(), loop, nil)

	if err := b.Run(t.Context()); err == nil {
		t.Fatal("Run() error = nil, want listener failure")
	}
}
