package production

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/comalice/headlessx/internal/core"
	"github.com/comalice/headlessx/internal/primitives"
)

// Transition is one committed transition as seen by a publisher.
type Transition struct {
	Event    primitives.Event `json:"event" yaml:"event"`
	Metadata core.Metadata    `json:"metadata" yaml:"metadata"`
}

// String renders the transition as "widget:id from -> to on EVENT".
func (t Transition) String() string {
	md := t.Metadata
	return fmt.Sprintf("%s:%s %s -> %s on %s", md.Widget, md.ID, md.From, md.To, t.Event.Type)
}

// ChannelPublisher feeds transitions into a buffered channel it owns.
// Publish never blocks the machine: when the buffer is full the transition
// is counted as dropped.
type ChannelPublisher struct {
	ch      chan Transition
	dropped atomic.Int64
	once    sync.Once
}

// NewChannelPublisher returns a publisher buffering up to size transitions.
func NewChannelPublisher(size int) *ChannelPublisher {
	return &ChannelPublisher{ch: make(chan Transition, max(size, 0))}
}

// Transitions returns the feed. It is closed by Close.
func (p *ChannelPublisher) Transitions() <-chan Transition {
	return p.ch
}

// Dropped returns how many transitions did not fit the buffer.
func (p *ChannelPublisher) Dropped() int64 {
	return p.dropped.Load()
}

func (p *ChannelPublisher) Publish(ctx context.Context, event primitives.Event, metadata core.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.ch <- Transition{Event: event, Metadata: metadata}:
	default:
		p.dropped.Add(1)
	}
	return nil
}

// Close closes the feed. Publishing after Close panics; calling Close twice
// does not.
func (p *ChannelPublisher) Close() error {
	p.once.Do(func() { close(p.ch) })
	return nil
}

// Collect drains p on its own goroutine. The returned func blocks until p is
// closed and returns the transitions in publish order.
func Collect(p *ChannelPublisher) (wait func() []Transition) {
	var out []Transition
	done := make(chan struct{})
	go func() {
		defer close(done)
		for t := range p.Transitions() {
			out = append(out, t)
		}
	}()
	return func() []Transition {
		<-done
		return out
	}
}
