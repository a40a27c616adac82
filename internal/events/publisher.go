package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Emitter is what services emit through. Emission is fire-and-forget: a full
// or failing sink never unwinds the business operation that produced the
// event.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// Sink persists events. Implementations: MemorySink, KafkaSink.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher stamps events and hands them to a background worker over a
// buffered channel, so HTTP handlers never block on the sink. Delivery is
// at-most-once: when the buffer is full the event is dropped and logged.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "event dropped, inbox full",
			"event_type", string(event.Type),
			"event_id", event.ID,
		)
	}
}

// Inbox exposes the channel for the draining worker.
func (p *Publisher) Inbox() <-chan Event { return p.inbox }

// Worker drains a publisher inbox into a sink. Sink failures are logged and
// discarded; the worker keeps running.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to append event",
					"event_type", string(event.Type),
					"event_id", event.ID,
					"error", err,
				)
			}
		}
	}
}

// MemorySink keeps events in memory. Default sink for local runs and the
// assertion point for tests.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything appended so far, in order.
func (s *MemorySink) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}

// Recorder is a synchronous Emitter for service tests: every emitted event
// lands in the sink immediately.
type Recorder struct {
	Sink *MemorySink
}

func NewRecorder() *Recorder {
	return &Recorder{Sink: NewMemorySink()}
}

func (r *Recorder) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = r.Sink.Append(ctx, event)
}

// Events returns the recorded events in emission order.
func (r *Recorder) Events() []Event { return r.Sink.Events() }
