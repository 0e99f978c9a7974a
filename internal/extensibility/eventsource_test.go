package extensibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/comalice/headlessx/internal/primitives"
)

func TestChannelEventSource(t *testing.T) {
	ch := make(chan primitives.Event, 1)
	s := NewChannelEventSource(ch)
	if s.Events() != ch {
		t.Error("Events() should return ch")
	}
}

func TestPump(t *testing.T) {
	ch := make(chan primitives.Event, 3)
	ch <- primitives.NewEvent("A", nil)
	ch <- primitives.NewEvent("B", nil)
	close(ch)
	var got []string
	err := Pump(context.Background(), NewChannelEventSource(ch), func(evt primitives.Event) error {
		got = append(got, evt.Type)
		return nil
	})
	if err != nil {
		t.Fatalf("Pump = %v", err)
	}
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("dispatched %v", got)
	}
}

func TestPumpStopsOnError(t *testing.T) {
	ch := make(chan primitives.Event, 2)
	ch <- primitives.NewEvent("A", nil)
	ch <- primitives.NewEvent("B", nil)
	boom := errors.New("boom")
	calls := 0
	err := Pump(context.Background(), NewChannelEventSource(ch), func(primitives.Event) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Errorf("Pump = %v after %d calls", err, calls)
	}
}

func TestPumpCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Pump(ctx, NewChannelEventSource(make(chan primitives.Event)), func(primitives.Event) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Pump = %v, want context.Canceled", err)
	}
}

func TestTimerEventSource(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"counted", 3, 3},
		{"single", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTimerEventSource(primitives.NewEvent("VALUE.INCREMENT", map[string]any{"index": 0}), time.Millisecond, tt.count)
			defer s.Stop()
			var got []string
			err := Pump(context.Background(), s, func(evt primitives.Event) error {
				got = append(got, evt.Type)
				return nil
			})
			if err != nil {
				t.Fatalf("Pump = %v", err)
			}
			if len(got) != tt.want || got[0] != "VALUE.INCREMENT" {
				t.Errorf("dispatched %v, want %d events", got, tt.want)
			}
		})
	}
}

func TestTimerEventSourceStop(t *testing.T) {
	s := NewTimerEventSource(primitives.NewEvent("TICK", nil), 10*time.Millisecond, 0)
	select {
	case <-s.Events():
	case <-time.After(time.Second):
		t.Fatal("no tick before Stop")
	}
	s.Stop()
	s.Stop()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-s.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after Stop")
		}
	}
}
