package extensibility

import (
	"context"
	"sync"
	"time"

	"github.com/comalice/headlessx/internal/primitives"
)

// EventSource delivers events from outside the host's own call path.
type EventSource interface {
	Events() <-chan primitives.Event
}

// ChannelEventSource is an EventSource backed by a caller-owned channel.
type ChannelEventSource struct {
	ch chan primitives.Event
}

// NewChannelEventSource creates a ChannelEventSource reading ch.
// The channel should be buffered if backpressure handling is needed.
func NewChannelEventSource(ch chan primitives.Event) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan primitives.Event {
	return s.ch
}

// TimerEventSource emits the same event every interval, e.g. VALUE.INCREMENT
// while a slider's step button is held down. Sends block until the consumer
// takes the event, so no tick is lost.
type TimerEventSource struct {
	ch   chan primitives.Event
	stop chan struct{}
	once sync.Once
}

// NewTimerEventSource starts a TimerEventSource emitting evt every d, count
// times. A count <= 0 repeats until Stop.
func NewTimerEventSource(evt primitives.Event, d time.Duration, count int) *TimerEventSource {
	t := &TimerEventSource{
		ch:   make(chan primitives.Event),
		stop: make(chan struct{}),
	}
	go t.run(evt, d, count)
	return t
}

func (t *TimerEventSource) run(evt primitives.Event, d time.Duration, count int) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	defer close(t.ch)
	for n := 0; count <= 0 || n < count; n++ {
		select {
		case <-ticker.C:
		case <-t.stop:
			return
		}
		select {
		case t.ch <- evt:
		case <-t.stop:
			return
		}
	}
}

// Events returns the event channel. It is closed after the last emission or
// after Stop.
func (t *TimerEventSource) Events() <-chan primitives.Event {
	return t.ch
}

// Stop ends the emissions. It is safe to call more than once.
func (t *TimerEventSource) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// Pump feeds every event from src into dispatch on the calling goroutine,
// which keeps the machine behind dispatch confined to it. It returns nil when
// the source closes, ctx.Err() on cancellation, or the first dispatch error.
func Pump(ctx context.Context, src EventSource, dispatch primitives.Dispatch) error {
	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			if err := dispatch(evt); err != nil {
				return err
			}
		}
	}
}
