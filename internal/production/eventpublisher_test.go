package production

import (
	"context"
	"testing"
	"time"

	"github.com/comalice/headlessx/internal/core"
	"github.com/comalice/headlessx/internal/primitives"
)

func TestChannelPublisherDelivery(t *testing.T) {
	p := NewChannelPublisher(4)
	meta := core.Metadata{Widget: "select", ID: "country", From: "idle", To: "open", Timestamp: time.Now()}

	if err := p.Publish(context.Background(), primitives.NewEvent("TRIGGER.CLICK", nil), meta); err != nil {
		t.Fatalf("Publish = %v", err)
	}
	select {
	case got := <-p.Transitions():
		if want := "select:country idle -> open on TRIGGER.CLICK"; got.String() != want {
			t.Errorf("transition = %q, want %q", got, want)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("no transition delivered")
	}
}

func TestChannelPublisherCountsDrops(t *testing.T) {
	p := NewChannelPublisher(1)
	for range 3 {
		if err := p.Publish(context.Background(), primitives.NewEvent("OPEN", nil), core.Metadata{}); err != nil {
			t.Errorf("Publish on full feed = %v, want drop", err)
		}
	}
	if got := p.Dropped(); got != 2 {
		t.Errorf("Dropped = %d, want 2", got)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Publish(ctx, primitives.NewEvent("OPEN", nil), core.Metadata{}); err == nil {
		t.Error("Publish with canceled context succeeded")
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestChannelPublisherMachine(t *testing.T) {
	p := NewChannelPublisher(16)
	wait := Collect(p)
	m := startedSelect(t, core.WithPublisher(p))

	for _, evt := range []string{"CONTENT.ARROW_DOWN", "TRIGGER.CLICK", "TRIGGER.CLICK"} {
		if err := m.Send(primitives.NewEvent(evt, nil)); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	got := wait()
	// Ignored events are not published.
	if len(got) != 2 {
		t.Fatalf("published %v, want 2 transitions", got)
	}
	md := got[0].Metadata
	if md.Widget != "select" || md.ID != "country" || md.From != "idle" || md.To != "open" {
		t.Errorf("metadata = %+v", md)
	}
	if got[1].Metadata.To != "focused" {
		t.Errorf("second transition = %s", got[1])
	}
}
