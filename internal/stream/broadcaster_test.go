package stream

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/nvieira/go-asteroid-watch/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	id, ch := b.Subscribe()
	if b.SubscriberCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", b.SubscriberCount())
	}

	b.Unsubscribe(id)
	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", b.SubscriberCount())
	}

	// Channel should be closed
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to be closed")
		}
	default:
		t.Error("channel should be closed and readable")
	}
}

func TestBroadcaster_DeliversToAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	_, ch1 := b.Subscribe()
	_, ch2 := b.Subscribe()

	a := &models.Assessment{ID: "impact_test", Severity: "catastrophic"}
	b.Broadcast(a)

	for i, ch := range []chan *models.Assessment{ch1, ch2} {
		select {
		case got := <-ch:
			if got.ID != "impact_test" {
				t.Errorf("subscriber %d: unexpected id %s", i, got.ID)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: no message received", i)
		}
	}
}

func TestBroadcaster_SkipsSlowSubscribers(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	_, ch := b.Subscribe()

	// Fill the buffer and then some; Broadcast must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 250; i++ {
			b.Broadcast(&models.Assessment{ID: "impact_flood"})
		}
		close(done)
	}()

	select {
	case <-done:
		// Good: broadcaster dropped messages instead of blocking.
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a slow subscriber")
	}

	if len(ch) != cap(ch) {
		t.Errorf("expected full buffer of %d, got %d", cap(ch), len(ch))
	}
}

func TestBroadcaster_ConcurrentBroadcast(t *testing.T) {
	b := NewBroadcaster()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Broadcast(&models.Assessment{ID: "impact_concurrent"})
		}()
	}
	for i := 0; i < 5; i++ {
		id, _ := b.Subscribe()
		defer b.Unsubscribe(id)
	}
	wg.Wait()
	b.Close()

	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after Close, got %d", b.SubscriberCount())
	}
}
